// Package jobs provides scheduled background tasks for the tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the tracking service.
//
// # Available Jobs
//
// 1. RetentionSweepJob - Removes location samples older than the retention
// horizon while keeping the most recent sample of every tracking.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(purgeHandler, schedule, horizonDays, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression (with seconds) supplied
// through configuration. A run that finds nothing to delete is a no-op, so
// the sweep is safe to schedule as often as needed.
//
// # Error Handling
//
// Sweep failures are logged and retried on the next scheduled run; a failed
// run never stops the scheduler.
package jobs
