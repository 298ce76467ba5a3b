package logging

import (
	"log/slog"
	"time"

	"github.com/Giridhar-07/civitrack-app/internal/models"
	"gorm.io/gorm"
)

// StartCleanup prunes system_logs on a daily cadence, deleting entries
// older than the retention window. Closing done stops the loop.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pruneSystemLogs(db, retention)
			case <-done:
				return
			}
		}
	}()
}

func pruneSystemLogs(db *gorm.DB, retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected, "cutoff", cutoff)
	}
}
