package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flag is a user-submitted abuse or inaccuracy report against an issue.
// The composite unique index backs the one-flag-per-user-per-issue rule;
// the service pre-checks it to return a clean conflict error.
type Flag struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	IssueID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_flags_issue_user,priority:1" json:"issue_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_flags_issue_user,priority:2" json:"user_id"`
	Reason       string     `gorm:"size:500;not null" json:"reason"`
	Resolved     bool       `gorm:"default:false;index" json:"resolved"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedByID *uuid.UUID `gorm:"type:uuid" json:"resolved_by_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	Flagger User `gorm:"foreignKey:UserID" json:"-"`
}

func (f *Flag) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
