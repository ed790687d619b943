package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/jobs"
)

// StartCleanupCronJobs runs the cleanup sweep hourly.
func StartCleanupCronJobs(cleaner *jobs.Cleaner) *cron.Cron {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		if err := cleaner.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Cleanup run failed")
		}
	})

	c.Start()
	return c
}
