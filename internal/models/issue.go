package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IssueCategory classifies the kind of civic problem.
type IssueCategory string

const (
	CategoryRoad        IssueCategory = "road"
	CategoryWater       IssueCategory = "water"
	CategoryElectricity IssueCategory = "electricity"
	CategoryWaste       IssueCategory = "waste"
	CategorySafety      IssueCategory = "safety"
	CategoryOther       IssueCategory = "other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c IssueCategory) bool {
	switch c {
	case CategoryRoad, CategoryWater, CategoryElectricity, CategoryWaste, CategorySafety, CategoryOther:
		return true
	}
	return false
}

// IssueStatus is the lifecycle state of an issue.
type IssueStatus string

const (
	StatusReported    IssueStatus = "reported"
	StatusUnderReview IssueStatus = "under_review"
	StatusInProgress  IssueStatus = "in_progress"
	StatusResolved    IssueStatus = "resolved"
	StatusClosed      IssueStatus = "closed"
)

// ValidStatus reports whether s is one of the five lifecycle states.
func ValidStatus(s IssueStatus) bool {
	switch s {
	case StatusReported, StatusUnderReview, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Issue is a citizen-reported civic problem. Status is never written
// without a StatusLog row in the same transaction.
type Issue struct {
	ID          uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                     `gorm:"size:200;not null" json:"title"`
	Description string                     `gorm:"size:2000;not null" json:"description"`
	Category    IssueCategory              `gorm:"size:20;not null;index" json:"category"`
	Status      IssueStatus                `gorm:"size:20;not null;default:'reported';index" json:"status"`
	Photos      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photos"`
	ReporterID  uuid.UUID                  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	LocationID  uuid.UUID                  `gorm:"type:uuid;not null;index" json:"location_id"`
	CreatedAt   time.Time                  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`

	Reporter   User        `gorm:"foreignKey:ReporterID" json:"-"`
	Location   Location    `gorm:"foreignKey:LocationID" json:"location"`
	StatusLogs []StatusLog `gorm:"foreignKey:IssueID" json:"status_logs,omitempty"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
