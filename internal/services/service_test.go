package services

import (
	"testing"

	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. The pool is pinned to a
// single connection so every query sees the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Location{},
		&models.Issue{},
		&models.StatusLog{},
		&models.Flag{},
		&models.StatusRequest{},
		&models.SystemLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func principalFor(user *models.User) auth.Principal {
	return auth.Principal{ID: user.ID, Role: user.Role}
}

func createTestIssue(t *testing.T, svc *IssueService, reporterID uuid.UUID, lat, lon float64) *models.Issue {
	t.Helper()

	issue, err := svc.Create(reporterID, &dto.CreateIssueRequest{
		Title:       "Pothole on Main Street",
		Description: "Large pothole near the intersection",
		Category:    models.CategoryRoad,
		Location: dto.LocationInput{
			Latitude:  lat,
			Longitude: lon,
			Address:   "Main St",
		},
	})
	require.NoError(t, err)
	return issue
}

// auditTrail returns an issue's status log in write order.
func auditTrail(t *testing.T, db *gorm.DB, issueID uuid.UUID) []models.StatusLog {
	t.Helper()

	var logs []models.StatusLog
	require.NoError(t, db.Where("issue_id = ?", issueID).Order("id ASC").Find(&logs).Error)
	return logs
}
