package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestState tracks a status request through review. Pending is the only
// state that can change; approved and rejected are terminal.
type RequestState string

const (
	RequestPending  RequestState = "pending"
	RequestApproved RequestState = "approved"
	RequestRejected RequestState = "rejected"
)

// StatusRequest is a citizen's proposed status change awaiting an
// administrator's decision. CurrentStatus snapshots the issue status at
// request time so reviewers see what the requester saw.
type StatusRequest struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	IssueID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"issue_id"`
	RequesterID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"requester_id"`
	CurrentStatus   IssueStatus  `gorm:"size:20;not null" json:"current_status"`
	RequestedStatus IssueStatus  `gorm:"size:20;not null" json:"requested_status"`
	Reason          string       `gorm:"size:500" json:"reason,omitempty"`
	State           RequestState `gorm:"size:20;not null;default:'pending';index" json:"state"`
	ReviewerID      *uuid.UUID   `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	ReviewComment   string       `gorm:"size:500" json:"review_comment,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	Requester User  `gorm:"foreignKey:RequesterID" json:"-"`
	Issue     Issue `gorm:"foreignKey:IssueID" json:"-"`
}

func (r *StatusRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
