package dto

import "github.com/Giridhar-07/civitrack-app/internal/models"

type CreateFlagRequest struct {
	Reason string `json:"reason"`
}

type FlagListResponse struct {
	Flags      []models.Flag `json:"flags"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
