package jobs

import (
	"context"
	"log/slog"
	"time"

	"transferops/internal/core/application/usecases/commands"
	"transferops/internal/core/application/usecases/queries"
	"transferops/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// AnalyticsRecomputeJob rebuilds the analytics snapshots of every active
// organization on a schedule. Snapshots are derived data: a failed run leaves
// the previous snapshot in place and the next run catches up, so failures are
// logged, never fatal.
type AnalyticsRecomputeJob struct {
	handler    commands.RecomputeAnalyticsCommandHandler
	orgsQuery  queries.GetActiveOrganizationsQueryHandler
	windowDays int
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAnalyticsRecomputeJob creates a job that recomputes analytics snapshots
// over a trailing window of windowDays, on the given cron schedule
// (with a seconds field, e.g. "0 0 * * * *" for hourly).
func NewAnalyticsRecomputeJob(
	handler commands.RecomputeAnalyticsCommandHandler,
	orgsQuery queries.GetActiveOrganizationsQueryHandler,
	windowDays int,
	schedule string,
	logger *slog.Logger,
) *AnalyticsRecomputeJob {
	return &AnalyticsRecomputeJob{
		handler:    handler,
		orgsQuery:  orgsQuery,
		windowDays: windowDays,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "analytics_recompute_job"),
	}
}

// Start schedules the recompute runs.
func (j *AnalyticsRecomputeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Analytics recompute job started",
		"schedule", j.schedule, "window_days", j.windowDays)
	return nil
}

// Stop stops the recompute job.
func (j *AnalyticsRecomputeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Analytics recompute job stopped")
}

// Run executes one recompute pass immediately, outside the schedule. Used at
// startup so a fresh deployment serves analytics before the first tick.
func (j *AnalyticsRecomputeJob) Run() {
	j.run()
}

func (j *AnalyticsRecomputeJob) run() {
	ctx := context.Background()

	orgs, err := j.orgsQuery.Handle(ctx, queries.NewGetActiveOrganizationsQuery())
	if err != nil {
		metrics.AnalyticsRecomputesTotal.WithLabelValues("failure").Inc()
		j.logger.ErrorContext(ctx, "Failed to list active organizations", "error", err)
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -j.windowDays)

	for _, orgID := range orgs {
		cmd, cmdErr := commands.NewRecomputeAnalyticsCommand(orgID, from, to)
		if cmdErr != nil {
			metrics.AnalyticsRecomputesTotal.WithLabelValues("failure").Inc()
			j.logger.ErrorContext(ctx, "Failed to build recompute command",
				"org", orgID.String(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			metrics.AnalyticsRecomputesTotal.WithLabelValues("failure").Inc()
			j.logger.ErrorContext(ctx, "Analytics recompute failed",
				"org", orgID.String(), "error", handleErr)
			continue
		}

		metrics.AnalyticsRecomputesTotal.WithLabelValues("success").Inc()
	}
}
