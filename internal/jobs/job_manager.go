package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courseAnnouncementJob *CourseAnnouncementJob
	earningsPruneJob      *EarningsPruneJob
}

// NewJobManager creates a new job manager over the application's jobs.
func NewJobManager(
	courseAnnouncementJob *CourseAnnouncementJob,
	earningsPruneJob *EarningsPruneJob,
) *JobManager {
	return &JobManager{
		courseAnnouncementJob: courseAnnouncementJob,
		earningsPruneJob:      earningsPruneJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.earningsPruneJob.Start(); err != nil {
		return fmt.Errorf("failed to start earnings prune job: %w", err)
	}

	if err := jm.courseAnnouncementJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.earningsPruneJob.Stop()
		return fmt.Errorf("failed to start course announcement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.courseAnnouncementJob.Stop()
	jm.earningsPruneJob.Stop()
}
