package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssueService owns the issue lifecycle: creation, field updates, status
// transitions and deletion. Every status write is paired with a StatusLog
// insert inside one transaction.
type IssueService struct {
	db *gorm.DB
}

func NewIssueService(db *gorm.DB) *IssueService {
	return &IssueService{db: db}
}

// lockForUpdate adds a SELECT ... FOR UPDATE clause where the dialect
// supports it. SQLite (the test store) serializes writers itself and
// rejects the clause, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func loadIssueForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	if err := lockForUpdate(tx).First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// applyStatusChange updates the status of an already-locked issue row and
// appends the audit entry. An explicit same-value request succeeds without
// writing anything. Must run inside the caller's transaction.
func applyStatusChange(tx *gorm.DB, issue *models.Issue, actorID uuid.UUID, newStatus models.IssueStatus, comment string) error {
	if !models.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	if newStatus == issue.Status {
		return nil
	}

	old := issue.Status
	if comment == "" {
		comment = fmt.Sprintf("Status changed from %s to %s", old, newStatus)
	}

	if err := tx.Model(issue).Update("status", newStatus).Error; err != nil {
		return fmt.Errorf("failed to update issue status: %w", err)
	}

	log := models.StatusLog{
		IssueID:   issue.ID,
		ActorID:   actorID,
		OldStatus: &old,
		NewStatus: newStatus,
		Comment:   comment,
	}
	if err := tx.Create(&log).Error; err != nil {
		return fmt.Errorf("failed to write status log: %w", err)
	}

	issue.Status = newStatus
	return nil
}

func validateLocation(loc *dto.LocationInput) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// Create inserts the location, the issue (status=reported) and the initial
// audit entry in one transaction.
func (s *IssueService) Create(reporterID uuid.UUID, req *dto.CreateIssueRequest) (*models.Issue, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if err := validateLocation(&req.Location); err != nil {
		return nil, err
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	var issue models.Issue
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loc := models.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Address:   req.Location.Address,
		}
		if err := tx.Create(&loc).Error; err != nil {
			return fmt.Errorf("failed to create location: %w", err)
		}

		issue = models.Issue{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Category:    req.Category,
			Status:      models.StatusReported,
			Photos:      datatypes.NewJSONSlice(photos),
			ReporterID:  reporterID,
			LocationID:  loc.ID,
		}
		if err := tx.Create(&issue).Error; err != nil {
			return fmt.Errorf("failed to create issue: %w", err)
		}
		issue.Location = loc

		log := models.StatusLog{
			IssueID:   issue.ID,
			ActorID:   reporterID,
			OldStatus: nil,
			NewStatus: models.StatusReported,
			Comment:   "Issue reported",
		}
		if err := tx.Create(&log).Error; err != nil {
			return fmt.Errorf("failed to write status log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// Get returns the issue with its location and audit trail, newest entry first.
func (s *IssueService) Get(id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	err := s.db.Preload("Location").
		Preload("StatusLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		First(&issue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// List returns issues filtered by category/status/text search, paginated.
func (s *IssueService) List(q *dto.ListIssuesQuery) (*dto.IssueListResponse, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	query := s.db.Model(&models.Issue{})
	if q.Category != "" && q.Category != "all" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Status != "" && q.Status != "all" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	order := "created_at DESC"
	if q.Sort == "oldest" {
		order = "created_at ASC"
	}

	var issues []models.Issue
	if err := query.Preload("Location").Order(order).
		Limit(limit).Offset((page - 1) * limit).Find(&issues).Error; err != nil {
		return nil, err
	}

	return &dto.IssueListResponse{
		Issues:     issues,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// ListByReporter returns the issues a user reported, newest first.
func (s *IssueService) ListByReporter(reporterID uuid.UUID, page, limit int) (*dto.IssueListResponse, error) {
	page, limit = normalizePage(page, limit)

	query := s.db.Model(&models.Issue{}).Where("reporter_id = ?", reporterID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var issues []models.Issue
	if err := query.Preload("Location").Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&issues).Error; err != nil {
		return nil, err
	}

	return &dto.IssueListResponse{
		Issues:     issues,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// ChangeStatus applies a status transition with its audit entry, holding
// the issue row lock for the duration of the transaction.
func (s *IssueService) ChangeStatus(id uuid.UUID, p auth.Principal, newStatus models.IssueStatus, comment string) (*models.Issue, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		issue, err := loadIssueForUpdate(tx, id)
		if err != nil {
			return err
		}
		if !CanMutate(issue, p) {
			return ErrForbidden
		}
		return applyStatusChange(tx, issue, p.ID, newStatus, comment)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Update merges a partial patch. Status, when part of the patch, goes
// through the same audit path as ChangeStatus and commits atomically with
// the field updates.
func (s *IssueService) Update(id uuid.UUID, p auth.Principal, req *dto.UpdateIssueRequest) (*models.Issue, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Category != nil && !models.ValidCategory(*req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Location != nil {
		if err := validateLocation(req.Location); err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		issue, err := loadIssueForUpdate(tx, id)
		if err != nil {
			return err
		}
		if !CanMutate(issue, p) {
			return ErrForbidden
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if len(req.AddPhotos) > 0 {
			photos := append([]string(issue.Photos), req.AddPhotos...)
			updates["photos"] = datatypes.NewJSONSlice(photos)
		}
		if len(updates) > 0 {
			if err := tx.Model(issue).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update issue: %w", err)
			}
		}

		if req.Location != nil {
			locUpdates := map[string]interface{}{
				"latitude":  req.Location.Latitude,
				"longitude": req.Location.Longitude,
			}
			if req.Location.Address != "" {
				locUpdates["address"] = req.Location.Address
			}
			if err := tx.Model(&models.Location{}).
				Where("id = ?", issue.LocationID).Updates(locUpdates).Error; err != nil {
				return fmt.Errorf("failed to update location: %w", err)
			}
		}

		if req.Status != nil {
			if err := applyStatusChange(tx, issue, p.ID, *req.Status, req.Comment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the issue and everything it owns as an explicit ordered
// cascade: audit trail, flags, status requests, the issue, its location.
func (s *IssueService) Delete(id uuid.UUID, p auth.Principal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		issue, err := loadIssueForUpdate(tx, id)
		if err != nil {
			return err
		}
		if !CanMutate(issue, p) {
			return ErrForbidden
		}

		if err := tx.Where("issue_id = ?", id).Delete(&models.StatusLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete status logs: %w", err)
		}
		if err := tx.Where("issue_id = ?", id).Delete(&models.Flag{}).Error; err != nil {
			return fmt.Errorf("failed to delete flags: %w", err)
		}
		if err := tx.Where("issue_id = ?", id).Delete(&models.StatusRequest{}).Error; err != nil {
			return fmt.Errorf("failed to delete status requests: %w", err)
		}
		if err := tx.Delete(issue).Error; err != nil {
			return fmt.Errorf("failed to delete issue: %w", err)
		}
		if err := tx.Where("id = ?", issue.LocationID).Delete(&models.Location{}).Error; err != nil {
			return fmt.Errorf("failed to delete location: %w", err)
		}
		return nil
	})
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
