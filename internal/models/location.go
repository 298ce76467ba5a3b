package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is the geographic point of exactly one issue. It is created in
// the same transaction as its issue and removed with it.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Latitude  float64   `gorm:"type:decimal(10,8);not null;index:idx_locations_lat_lon,priority:1" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(11,8);not null;index:idx_locations_lat_lon,priority:2" json:"longitude"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
