package services

import (
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/geo"
	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NearbyService answers "what issues are within X km of this point". A
// bounding-box query narrows candidates on the lat/lon index, then the
// exact great-circle distance trims the box corners.
type NearbyService struct {
	db *gorm.DB
}

func NewNearbyService(db *gorm.DB) *NearbyService {
	return &NearbyService{db: db}
}

func (s *NearbyService) FindNear(q *dto.NearbyQuery) ([]models.Issue, error) {
	if q.Latitude < -90 || q.Latitude > 90 {
		return nil, ErrInvalidLatitude
	}
	if q.Longitude < -180 || q.Longitude > 180 {
		return nil, ErrInvalidLongitude
	}
	if q.RadiusKm <= 0 {
		return nil, ErrInvalidRadius
	}

	box := geo.BoxAround(q.Latitude, q.Longitude, q.RadiusKm)

	var candidates []models.Location
	err := s.db.
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	locationIDs := make([]uuid.UUID, 0, len(candidates))
	for _, loc := range candidates {
		d := geo.Haversine(q.Latitude, q.Longitude, loc.Latitude, loc.Longitude)
		if d <= q.RadiusKm {
			locationIDs = append(locationIDs, loc.ID)
		}
	}
	if len(locationIDs) == 0 {
		return []models.Issue{}, nil
	}

	var issues []models.Issue
	err = s.db.Preload("Location").
		Where("location_id IN ?", locationIDs).
		Order("created_at DESC").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}
