package ports

import (
	"context"

	"transferops/internal/core/domain/model/analytics"
	"transferops/internal/core/domain/model/kernel"
)

// AnalyticsRepository defines the persistence contract for derived analytics
// snapshots. Snapshots are rebuildable: replacement happens wholesale per
// organization inside one transaction so readers never observe a half-written
// recompute.
type AnalyticsRepository interface {
	// ReplaceRoutePerformance swaps the stored route-performance snapshot of
	// an organization for the freshly computed one.
	ReplaceRoutePerformance(ctx context.Context, orgID kernel.OrgID, rows []analytics.RoutePerformance) error

	// ReplaceDemandPatterns swaps the stored demand-pattern snapshot of an
	// organization for the freshly computed one.
	ReplaceDemandPatterns(ctx context.Context, orgID kernel.OrgID, rows []analytics.DemandPattern) error
}
