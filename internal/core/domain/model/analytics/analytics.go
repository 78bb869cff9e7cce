// Package analytics contains the derived read models computed from the
// event log: route performance and demand patterns. These are rebuildable
// aggregates, never authoritative; they are safe to drop and recompute.
package analytics

import (
	"time"

	"transferops/internal/core/domain/model/kernel"
)

// Route identifies the (origin, destination) pair of a transfer, the
// grouping key for performance analytics.
type Route struct {
	OriginEntityID      kernel.UUID
	DestinationEntityID kernel.UUID
}

// RoutePerformance aggregates transfer outcomes for one route inside a
// time window.
type RoutePerformance struct {
	Route Route

	// TransferCount is the number of transfers created in the window.
	TransferCount int

	// CompletedCount is the number of transfers that reached EFFECTIVE_STORE.
	CompletedCount int

	// AvgLeadTime is the mean of (effectuation time - creation time) over
	// completed transfers. Zero when no transfer completed in the window.
	AvgLeadTime time.Duration

	// DiscrepancyRate is the share of transfers that recorded at least one
	// quantity mismatch, in [0, 1].
	DiscrepancyRate float64

	// TotalQuantity is the summed order-line quantity across transfers.
	TotalQuantity int
}

// DailyVolume is one bucket of the daily transfer-volume time series.
type DailyVolume struct {
	// Day is the UTC midnight of the bucket.
	Day time.Time

	// TransferCount is the number of transfers created that day.
	TransferCount int

	// Quantity is the summed order-line quantity of those transfers.
	Quantity int
}

// DemandPattern aggregates inbound transfer demand for one destination
// inside a time window.
type DemandPattern struct {
	DestinationEntityID kernel.UUID

	// TransferCount is the number of inbound transfers in the window.
	TransferCount int

	// DailyVolumes is the per-day series, sorted ascending by day.
	DailyVolumes []DailyVolume

	// DiscrepancyRate is the share of inbound transfers with a recorded
	// mismatch, in [0, 1].
	DiscrepancyRate float64

	// DemandScore combines transfer frequency and reliability: transfers per
	// day scaled down by the discrepancy rate. Higher means steadier,
	// cleaner inbound demand.
	DemandScore float64
}

// Window is a half-open time interval [From, To) over event occurrence times.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.From) && ts.Before(w.To)
}

// Days returns the window length in whole days, at least 1.
func (w Window) Days() int {
	days := int(w.To.Sub(w.From).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
