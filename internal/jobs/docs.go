// Package jobs provides scheduled background tasks for the shop system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations outside the request path.
//
// # Available Jobs
//
// 1. CarrierSyncJob - Runs every minute to re-drive carrier cancellation for
// cancelled orders whose carrier-side cancellation is still unacknowledged
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncCarrierHandler, logger)
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
// The carrier sync job uses the cron expression "* * * * *" (every minute).
// Internal order state is authoritative the moment the cancellation commits;
// this job only narrows the window in which the carrier lags behind.
//
// # Error Handling
//
// - The sync job ignores the expected empty-backlog scenario
// - Residual carrier failures are logged and retried on the next pass
// - Failed job starts will stop any already running jobs
package jobs
