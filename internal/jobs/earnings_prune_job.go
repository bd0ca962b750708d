package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// EarningsPruneJob deletes earnings records older than the retention
// window. Runs hourly; the retention window keeps the previous day's
// records reachable long enough to tolerate confirmations arriving around
// midnight.
type EarningsPruneJob struct {
	handler   commands.PruneEarningsCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewEarningsPruneJob creates a job pruning records older than retention.
func NewEarningsPruneJob(
	handler commands.PruneEarningsCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *EarningsPruneJob {
	return &EarningsPruneJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "earnings_prune_job"),
	}
}

// Start begins the hourly prune schedule.
func (j *EarningsPruneJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cutoff := kernel.DayFromTime(time.Now().Add(-j.retention))
		cmd, cmdErr := commands.NewPruneEarningsCommand(cutoff)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Building prune command failed", "error", cmdErr)
			return
		}

		pruned, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Earnings prune job failed", "error", handleErr)
			return
		}
		if pruned > 0 {
			j.logger.InfoContext(ctx, "Pruned stale earnings records",
				"pruned", pruned, "cutoff", cutoff.String())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earnings prune job started",
		"retention", j.retention.String())
	return nil
}

// Stop stops the earnings prune job.
func (j *EarningsPruneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earnings prune job stopped")
}
