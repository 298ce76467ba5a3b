package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlagService is the abuse-report intake and moderation queue.
type FlagService struct {
	db *gorm.DB
}

func NewFlagService(db *gorm.DB) *FlagService {
	return &FlagService{db: db}
}

// Flag records one abuse report per user per issue. The duplicate check
// runs before insert; the composite unique index backs it up against
// concurrent submissions.
func (s *FlagService) Flag(issueID, userID uuid.UUID, reason string) (*models.Flag, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	var count int64
	if err := s.db.Model(&models.Issue{}).Where("id = ?", issueID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrIssueNotFound
	}

	var existing models.Flag
	err := s.db.Where("issue_id = ? AND user_id = ?", issueID, userID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyFlagged
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	flag := models.Flag{
		IssueID: issueID,
		UserID:  userID,
		Reason:  strings.TrimSpace(reason),
	}
	if err := s.db.Create(&flag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFlagged
		}
		return nil, fmt.Errorf("failed to create flag: %w", err)
	}
	return &flag, nil
}

// Resolve marks a flag handled. It never touches the issue's status; a
// moderator who wants to act on the issue does so separately.
func (s *FlagService) Resolve(flagID uuid.UUID, p auth.Principal) (*models.Flag, error) {
	if !p.IsAdmin() {
		return nil, ErrAdminOnly
	}

	var flag models.Flag
	if err := s.db.First(&flag, "id = ?", flagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlagNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"resolved":       true,
		"resolved_at":    now,
		"resolved_by_id": p.ID,
	}
	if err := s.db.Model(&flag).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve flag: %w", err)
	}
	return &flag, nil
}

// ListUnresolvedForIssue returns open flags in insertion order for stable
// display.
func (s *FlagService) ListUnresolvedForIssue(issueID uuid.UUID) ([]models.Flag, error) {
	var flags []models.Flag
	err := s.db.Where("issue_id = ? AND resolved = ?", issueID, false).
		Order("created_at ASC, id ASC").Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// ListQueue is the admin moderation queue, optionally filtered by resolved
// state.
func (s *FlagService) ListQueue(resolved *bool, page, limit int) (*dto.FlagListResponse, error) {
	page, limit = normalizePage(page, limit)

	query := s.db.Model(&models.Flag{})
	if resolved != nil {
		query = query.Where("resolved = ?", *resolved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var flags []models.Flag
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&flags).Error; err != nil {
		return nil, err
	}

	return &dto.FlagListResponse{
		Flags:      flags,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
