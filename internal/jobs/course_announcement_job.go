package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourseAnnouncementJob periodically announces the next pending course and
// drives it through the allocation protocol. One allocation runs at a time;
// a tick firing while the previous allocation is still in flight is skipped
// rather than queued, matching the one-course-at-a-time cadence of the
// dispatch floor.
type CourseAnnouncementJob struct {
	handler  commands.AnnounceCourseCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
	running  atomic.Bool
}

// NewCourseAnnouncementJob creates a job announcing a course every interval.
// The interval must be at least one second.
func NewCourseAnnouncementJob(
	handler commands.AnnounceCourseCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *CourseAnnouncementJob {
	return &CourseAnnouncementJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "course_announcement_job"),
	}
}

// Start begins announcing courses on the configured interval.
func (j *CourseAnnouncementJob) Start() error {
	seconds := int(j.interval / time.Second)
	if seconds < 1 {
		return fmt.Errorf("announcement interval %s is below one second", j.interval)
	}

	_, err := j.cron.AddFunc(fmt.Sprintf("*/%d * * * * *", seconds), func() {
		if !j.running.CompareAndSwap(false, true) {
			return
		}
		defer j.running.Store(false)

		ctx := context.Background()
		cmd := commands.NewAnnounceCourseCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An exhausted feed is an expected business scenario.
			if errors.Is(err, commands.ErrNoCourseAvailable) {
				j.logger.InfoContext(ctx, "No pending course to announce")
				return
			}
			j.logger.ErrorContext(ctx, "Course announcement job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Course announcement job started",
		"interval", j.interval.String())
	return nil
}

// Stop stops the course announcement job.
func (j *CourseAnnouncementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Course announcement job stopped")
}
