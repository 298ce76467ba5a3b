package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusLog is one immutable entry of an issue's audit trail. The integer
// primary key preserves write order even when timestamps collide, so
// replaying rows by ID reconstructs the full status history.
type StatusLog struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	IssueID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"issue_id"`
	ActorID   uuid.UUID    `gorm:"type:uuid;not null" json:"actor_id"`
	OldStatus *IssueStatus `gorm:"size:20" json:"old_status"` // nil only on the creation entry
	NewStatus IssueStatus  `gorm:"size:20;not null" json:"new_status"`
	Comment   string       `gorm:"size:500" json:"comment,omitempty"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`

	Actor User `gorm:"foreignKey:ActorID" json:"-"`
}
