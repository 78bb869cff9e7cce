package jobs

import (
	"fmt"
	"log/slog"

	"transferops/internal/core/application/usecases/commands"
	"transferops/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	analyticsRecomputeJob *AnalyticsRecomputeJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	recomputeHandler commands.RecomputeAnalyticsCommandHandler,
	orgsQuery queries.GetActiveOrganizationsQueryHandler,
	windowDays int,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		analyticsRecomputeJob: NewAnalyticsRecomputeJob(
			recomputeHandler, orgsQuery, windowDays, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.analyticsRecomputeJob.Start(); err != nil {
		return fmt.Errorf("failed to start analytics recompute job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.analyticsRecomputeJob.Stop()
}

// RecomputeAnalyticsNow triggers one recompute pass outside the schedule.
func (jm *JobManager) RecomputeAnalyticsNow() {
	jm.analyticsRecomputeJob.Run()
}
