package logging

import (
	"testing"
	"time"

	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPruneSystemLogsRespectsRetention(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.SystemLog{}))

	stale := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: time.Now().Add(-40 * 24 * time.Hour),
		Level:     "ERROR",
		Message:   "stale",
	}
	fresh := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: time.Now().Add(-time.Hour),
		Level:     "ERROR",
		Message:   "fresh",
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)

	pruneSystemLogs(db, 30*24*time.Hour)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Message)
}
