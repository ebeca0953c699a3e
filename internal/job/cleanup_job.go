package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
)

// CleanupJob prunes activity log entries past the retention window.
// It is scheduled via cron and satisfies cron.Job through Run.
type CleanupJob struct {
	activityRepo  repository.ActivityRepository
	retentionDays int
	logger        *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	activityRepo repository.ActivityRepository,
	retentionDays int,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		activityRepo:  activityRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run deletes all activity entries older than the retention window
func (j *CleanupJob) Run() {
	if j.retentionDays <= 0 {
		j.logger.Debug("Activity retention disabled, skipping cleanup")
		return
	}

	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	j.logger.Info("Starting activity log cleanup",
		zap.Int("retention_days", j.retentionDays),
		zap.Time("cutoff", cutoff),
	)

	deleted, err := j.activityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Activity log cleanup failed", zap.Error(err))
		return
	}

	j.logger.Info("Activity log cleanup completed", zap.Int64("deleted", deleted))
}
