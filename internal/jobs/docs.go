// Package jobs provides scheduled background tasks for the transfer
// processing service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. AnalyticsRecomputeJob - Rebuilds the route-performance and demand-pattern
// snapshots of every active organization from the event log, over a trailing
// time window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(recomputeHandler, orgsQuery, windowDays, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Snapshots are derived read models: a failed recompute run leaves the
// previous snapshot in place, so run errors are logged and counted but never
// stop the job or the service.
package jobs
