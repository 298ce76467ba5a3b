package dto

import "github.com/Giridhar-07/civitrack-app/internal/models"

type LocationInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type CreateIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    models.IssueCategory `json:"category"`
	Location    LocationInput        `json:"location"`
	Photos      []string             `json:"photos,omitempty"`
}

// UpdateIssueRequest is a partial patch; nil means "keep current value".
// A non-nil Status equal to the current one is accepted as a no-op
// rather than rejected.
type UpdateIssueRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Category    *models.IssueCategory `json:"category"`
	Location    *LocationInput        `json:"location"`
	Status      *models.IssueStatus   `json:"status"`
	Comment     string                `json:"comment,omitempty"` // status log comment, if status is set
	AddPhotos   []string              `json:"add_photos,omitempty"`
}

type ChangeStatusRequest struct {
	Status  models.IssueStatus `json:"status"`
	Comment string             `json:"comment,omitempty"`
}

type ListIssuesQuery struct {
	Category string
	Status   string
	Search   string
	Sort     string // newest | oldest
	Page     int
	Limit    int
}

type IssueListResponse struct {
	Issues     []models.Issue `json:"issues"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}
