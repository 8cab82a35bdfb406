// Package jobs provides scheduled background tasks for the food ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. CourierAssignmentJob - Runs every five seconds to hand the oldest paid
// Ready order to a free courier.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchCourierHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty dispatch queue and a lack of free couriers are expected idle
// outcomes, not errors; the assignment job stays quiet about them and logs
// everything else.
package jobs
