package utils

import (
	"lms/config"
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeCleanupScheduler sets up the daily housekeeping job
func InitializeCleanupScheduler() {
	log.Println("[CLEANUP-SCHEDULER] Initializing cleanup scheduler...")

	c := cron.New()

	// Run daily at 4 AM
	c.AddFunc("0 4 * * *", func() {
		log.Println("[CLEANUP-SCHEDULER] Running daily cleanup...")
		PurgeOldLoginRecords()
	})

	c.Start()
	log.Println("[CLEANUP-SCHEDULER] Cleanup scheduler started - runs daily at 4 AM")
}

// PurgeOldLoginRecords removes login-tracking rows past the retention window
func PurgeOldLoginRecords() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.LoginHistoryDays)

	result := db.Unscoped().
		Where("timestamp < ?", cutoff).
		Delete(&models.LoginTracking{})
	if result.Error != nil {
		log.Printf("[CLEANUP-SCHEDULER] Failed to purge login records: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP-SCHEDULER] Purged %d login records older than %d days", result.RowsAffected, config.AppConfig.LoginHistoryDays)
	}
}
