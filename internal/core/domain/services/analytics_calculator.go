package services

import (
	"sort"
	"time"

	"transferops/internal/core/domain/model/analytics"
	"transferops/internal/core/domain/model/event"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
)

// AnalyticsCalculator computes the derived analytics read models from the
// event log. All methods are pure functions of their inputs: same transfers,
// events, and window always produce the same output, which is what makes the
// snapshots rebuildable and the recompute safe to rerun at any time.
//
// A transfer participates in a computation when its CREATED event is part of
// the supplied slice; lead time is measured only for transfers whose
// EFFECTIVE_STORE event is also present.
type AnalyticsCalculator struct{}

// NewAnalyticsCalculator creates a new AnalyticsCalculator instance.
func NewAnalyticsCalculator() AnalyticsCalculator {
	return AnalyticsCalculator{}
}

// transferFacts is the per-transfer digest extracted from the event stream.
type transferFacts struct {
	createdAt   time.Time
	effectiveAt time.Time
	hasCreated  bool
	hasEffect   bool
	discrepancy bool
}

// ComputeRoutePerformance aggregates transfer outcomes per (origin,
// destination) route. Results are sorted by route for deterministic output.
func (c AnalyticsCalculator) ComputeRoutePerformance(
	transfers []*transfer.Transfer,
	events []*event.Event,
	window analytics.Window,
) []analytics.RoutePerformance {
	facts := c.digestEvents(events, window)

	byRoute := make(map[analytics.Route]*analytics.RoutePerformance)
	leadTimeSums := make(map[analytics.Route]time.Duration)
	discrepancyCounts := make(map[analytics.Route]int)

	for _, t := range transfers {
		f, ok := facts[t.ID()]
		if !ok || !f.hasCreated {
			continue
		}

		route := analytics.Route{
			OriginEntityID:      t.OriginEntityID(),
			DestinationEntityID: t.DestinationEntityID(),
		}
		perf, ok := byRoute[route]
		if !ok {
			perf = &analytics.RoutePerformance{Route: route}
			byRoute[route] = perf
		}

		perf.TransferCount++
		perf.TotalQuantity += t.Payload().TotalQuantity()
		if f.discrepancy {
			discrepancyCounts[route]++
		}
		if f.hasEffect {
			perf.CompletedCount++
			leadTimeSums[route] += f.effectiveAt.Sub(f.createdAt)
		}
	}

	result := make([]analytics.RoutePerformance, 0, len(byRoute))
	for route, perf := range byRoute {
		if perf.CompletedCount > 0 {
			perf.AvgLeadTime = leadTimeSums[route] / time.Duration(perf.CompletedCount)
		}
		perf.DiscrepancyRate = float64(discrepancyCounts[route]) / float64(perf.TransferCount)
		result = append(result, *perf)
	}

	sort.Slice(result, func(i, j int) bool {
		ri, rj := result[i].Route, result[j].Route
		if ri.OriginEntityID.String() != rj.OriginEntityID.String() {
			return ri.OriginEntityID.String() < rj.OriginEntityID.String()
		}
		return ri.DestinationEntityID.String() < rj.DestinationEntityID.String()
	})

	return result
}

// ComputeDemandPatterns aggregates inbound transfer demand per destination:
// a daily volume series, the discrepancy rate, and a demand score combining
// transfer frequency with reliability. Results are sorted by destination for
// deterministic output.
func (c AnalyticsCalculator) ComputeDemandPatterns(
	transfers []*transfer.Transfer,
	events []*event.Event,
	window analytics.Window,
) []analytics.DemandPattern {
	facts := c.digestEvents(events, window)

	type destAgg struct {
		pattern     analytics.DemandPattern
		daily       map[time.Time]*analytics.DailyVolume
		discrepancy int
	}
	byDest := make(map[kernel.UUID]*destAgg)

	for _, t := range transfers {
		f, ok := facts[t.ID()]
		if !ok || !f.hasCreated {
			continue
		}

		dest := t.DestinationEntityID()
		agg, ok := byDest[dest]
		if !ok {
			agg = &destAgg{
				pattern: analytics.DemandPattern{DestinationEntityID: dest},
				daily:   make(map[time.Time]*analytics.DailyVolume),
			}
			byDest[dest] = agg
		}

		agg.pattern.TransferCount++
		if f.discrepancy {
			agg.discrepancy++
		}

		day := f.createdAt.UTC().Truncate(24 * time.Hour)
		volume, ok := agg.daily[day]
		if !ok {
			volume = &analytics.DailyVolume{Day: day}
			agg.daily[day] = volume
		}
		volume.TransferCount++
		volume.Quantity += t.Payload().TotalQuantity()
	}

	result := make([]analytics.DemandPattern, 0, len(byDest))
	for _, agg := range byDest {
		pattern := agg.pattern
		pattern.DiscrepancyRate = float64(agg.discrepancy) / float64(pattern.TransferCount)

		pattern.DailyVolumes = make([]analytics.DailyVolume, 0, len(agg.daily))
		for _, volume := range agg.daily {
			pattern.DailyVolumes = append(pattern.DailyVolumes, *volume)
		}
		sort.Slice(pattern.DailyVolumes, func(i, j int) bool {
			return pattern.DailyVolumes[i].Day.Before(pattern.DailyVolumes[j].Day)
		})

		frequency := float64(pattern.TransferCount) / float64(window.Days())
		pattern.DemandScore = frequency * (1.0 - pattern.DiscrepancyRate)

		result = append(result, pattern)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DestinationEntityID.String() < result[j].DestinationEntityID.String()
	})

	return result
}

// digestEvents folds the event stream into per-transfer facts. Only events
// inside the window count; events outside it are ignored so that the
// snapshot reflects exactly the requested interval.
func (c AnalyticsCalculator) digestEvents(
	events []*event.Event,
	window analytics.Window,
) map[kernel.UUID]*transferFacts {
	facts := make(map[kernel.UUID]*transferFacts)

	for _, ev := range events {
		if !window.Contains(ev.OccurredAt()) {
			continue
		}

		f, ok := facts[ev.TransferID()]
		if !ok {
			f = &transferFacts{}
			facts[ev.TransferID()] = f
		}

		if ev.Action().IsCreate() {
			f.hasCreated = true
			f.createdAt = ev.OccurredAt()
		}
		if ev.ToState() == transfer.StateEffectiveStore {
			f.hasEffect = true
			f.effectiveAt = ev.OccurredAt()
		}
		if ev.HasDiscrepancy() {
			f.discrepancy = true
		}
	}

	return facts
}
