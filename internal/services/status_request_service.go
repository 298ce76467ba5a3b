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

// StatusRequestService is the moderated path for status changes: citizens
// propose, administrators approve or reject.
type StatusRequestService struct {
	db *gorm.DB
}

func NewStatusRequestService(db *gorm.DB) *StatusRequestService {
	return &StatusRequestService{db: db}
}

// RequestChange files a pending request, snapshotting the issue's status
// at request time. Any authenticated user may request, the reporter
// included.
func (s *StatusRequestService) RequestChange(issueID, requesterID uuid.UUID, req *dto.CreateStatusRequestRequest) (*models.StatusRequest, error) {
	if !models.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	var issue models.Issue
	if err := s.db.First(&issue, "id = ?", issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	request := models.StatusRequest{
		IssueID:         issueID,
		RequesterID:     requesterID,
		CurrentStatus:   issue.Status,
		RequestedStatus: req.Status,
		Reason:          req.Reason,
		State:           models.RequestPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}
	return &request, nil
}

// Review settles a pending request exactly once. Approving applies the
// requested status through the lifecycle path inside the same transaction,
// so the request update and the issue's status change commit together or
// not at all. Rejecting leaves the issue untouched.
func (s *StatusRequestService) Review(requestID uuid.UUID, reviewer auth.Principal, action, comment string) (*models.StatusRequest, error) {
	if !reviewer.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if action != dto.ReviewActionApprove && action != dto.ReviewActionReject {
		return nil, ErrInvalidReviewAction
	}

	var request models.StatusRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.State != models.RequestPending {
			return ErrAlreadyReviewed
		}

		state := models.RequestRejected
		if action == dto.ReviewActionApprove {
			state = models.RequestApproved

			issue, err := loadIssueForUpdate(tx, request.IssueID)
			if err != nil {
				return err
			}
			if err := applyStatusChange(tx, issue, reviewer.ID, request.RequestedStatus, comment); err != nil {
				return err
			}
		}

		now := time.Now()
		updates := map[string]interface{}{
			"state":          state,
			"reviewer_id":    reviewer.ID,
			"review_comment": comment,
			"reviewed_at":    now,
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update status request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns requests for the moderation UI, filtered by state and an
// optional text search over requester username or issue title.
func (s *StatusRequestService) List(q *dto.ListStatusRequestsQuery) (*dto.StatusRequestListResponse, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	query := s.db.Model(&models.StatusRequest{})
	if q.State != "" && q.State != "all" {
		query = query.Where("status_requests.state = ?", q.State)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.
			Joins("JOIN issues ON issues.id = status_requests.issue_id").
			Joins("JOIN users ON users.id = status_requests.requester_id").
			Where("(LOWER(users.username) LIKE ? OR LOWER(issues.title) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var requests []models.StatusRequest
	if err := query.Preload("Requester").Preload("Issue").
		Order("status_requests.created_at DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&requests).Error; err != nil {
		return nil, err
	}

	return &dto.StatusRequestListResponse{
		Requests:   requests,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
