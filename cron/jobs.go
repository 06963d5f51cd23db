package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mikeandholly/wedding-api/services"
	"github.com/mikeandholly/wedding-api/utils"
)

// Start schedules the recurring jobs and returns the running scheduler
// so main can Stop it on shutdown.
func Start(backup *services.BackupService) *cron.Cron {
	c := cron.New()

	// Collection export every 4 hours. No retry; the next run is the
	// retry.
	_, err := c.AddFunc("0 */4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		opName, err := backup.Run(ctx)
		if err != nil {
			utils.Logger.WithError(err).Error("Scheduled backup failed")
			return
		}
		utils.Logger.Infof("Scheduled backup complete: %s", opName)
	})
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to schedule backup job")
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (collection backup every 4h)")
	return c
}
