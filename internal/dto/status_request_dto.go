package dto

import "github.com/Giridhar-07/civitrack-app/internal/models"

type CreateStatusRequestRequest struct {
	Status models.IssueStatus `json:"status"`
	Reason string             `json:"reason,omitempty"`
}

const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

type ReviewStatusRequestRequest struct {
	Action  string `json:"action"` // approve | reject
	Comment string `json:"comment,omitempty"`
}

type ListStatusRequestsQuery struct {
	State  string
	Search string // matches requester username or issue title
	Page   int
	Limit  int
}

type StatusRequestListResponse struct {
	Requests   []models.StatusRequest `json:"requests"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}
