package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/repository"
)

// Cleaner sweeps documents that only age out: snaps past their expiry and
// stale notifications. Visibility of snaps never depends on this job; feed
// queries filter on expires_at themselves.
type Cleaner struct {
	SnapRepo  *repository.SnapRepository
	NotifRepo *repository.NotificationRepository
}

func NewCleaner(snapRepo *repository.SnapRepository, notifRepo *repository.NotificationRepository) *Cleaner {
	return &Cleaner{
		SnapRepo:  snapRepo,
		NotifRepo: notifRepo,
	}
}

// Run deletes snaps expired more than a day ago and notifications older than
// 30 days.
func (c *Cleaner) Run(ctx context.Context) error {
	if err := c.SnapRepo.DeleteExpiredSnaps(ctx, 24*time.Hour); err != nil {
		logrus.WithError(err).Error("Expired snap sweep failed")
		return err
	}

	if err := c.NotifRepo.DeleteOldNotifications(ctx, 30*24*time.Hour); err != nil {
		logrus.WithError(err).Error("Old notification sweep failed")
		return err
	}

	logrus.Info("Cleanup sweep completed")
	return nil
}
