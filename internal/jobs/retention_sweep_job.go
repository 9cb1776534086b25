package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RetentionSweepJob periodically removes expired location samples.
// The most recent sample of every tracking survives a sweep, so a last
// known position stays available even for long-idle trackings.
type RetentionSweepJob struct {
	handler     commands.PurgeLocationHistoryCommandHandler
	schedule    string
	horizonDays int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewRetentionSweepJob creates a job that purges location history on the
// given six-field cron schedule. A non-positive horizonDays applies the
// default retention horizon.
func NewRetentionSweepJob(
	handler commands.PurgeLocationHistoryCommandHandler,
	schedule string,
	horizonDays int,
	logger *slog.Logger,
) *RetentionSweepJob {
	return &RetentionSweepJob{
		handler:     handler,
		schedule:    schedule,
		horizonDays: horizonDays,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "retention_sweep_job"),
	}
}

// Start schedules the sweep. Returns an error for an invalid cron expression.
func (j *RetentionSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewPurgeLocationHistoryCommand(j.horizonDays, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Retention sweep misconfigured", "error", err)
			return
		}

		deleted, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Retention sweep failed", "error", err)
			return
		}

		if deleted > 0 {
			j.logger.InfoContext(ctx, "Retention sweep completed", "deleted", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the retention sweep job.
func (j *RetentionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Retention sweep job stopped")
}
