package commands

import (
	"context"

	"transferops/internal/core/domain/model/analytics"
	"transferops/internal/core/domain/services"
)

// RecomputeAnalyticsCommandHandler rebuilds the analytics snapshots of an
// organization from the event log. The event log is authoritative, so the
// recompute can run at any time: reads and the snapshot replacement share
// one transaction, and a failure leaves the previous snapshot in place.
type RecomputeAnalyticsCommandHandler struct {
	uowFactory RecomputeUoWFactory
	calculator services.AnalyticsCalculator
}

// NewRecomputeAnalyticsCommandHandler creates a handler for analytics
// recompute operations.
func NewRecomputeAnalyticsCommandHandler(
	uowFactory RecomputeUoWFactory,
	calculator services.AnalyticsCalculator,
) RecomputeAnalyticsCommandHandler {
	return RecomputeAnalyticsCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle rebuilds route-performance and demand-pattern snapshots for the
// command's organization and window.
func (h *RecomputeAnalyticsCommandHandler) Handle(
	ctx context.Context,
	cmd RecomputeAnalyticsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transfers, err := uow.TransferRepository().GetAllByOrg(ctx, cmd.OrgID())
	if err != nil {
		return err
	}

	events, err := uow.EventRepository().GetByOrgBetween(ctx, cmd.OrgID(), cmd.From(), cmd.To())
	if err != nil {
		return err
	}

	window := analytics.Window{From: cmd.From(), To: cmd.To()}
	routes := h.calculator.ComputeRoutePerformance(transfers, events, window)
	demand := h.calculator.ComputeDemandPatterns(transfers, events, window)

	analyticsRepo := uow.AnalyticsRepository()
	if err = analyticsRepo.ReplaceRoutePerformance(ctx, cmd.OrgID(), routes); err != nil {
		return err
	}
	if err = analyticsRepo.ReplaceDemandPatterns(ctx, cmd.OrgID(), demand); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
