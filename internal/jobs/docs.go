// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the allocation protocol and keep the stats store bounded.
//
// # Available Jobs
//
// 1. CourseAnnouncementJob - Periodically announces the next pending course
// and runs its full allocation (bid window, selection, confirmation).
// 2. EarningsPruneJob - Runs hourly to delete earnings records older than
// the retention window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(announcementJob, pruneJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The announcement job interval is configurable; one allocation runs at a
// time and a tick is skipped while the previous allocation is still in
// flight. The prune job uses a fixed hourly schedule.
//
// # Error Handling
//
// - The announcement job treats an exhausted feed as an expected condition
// - The prune job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
