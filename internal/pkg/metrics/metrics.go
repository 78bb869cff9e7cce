// Package metrics defines the Prometheus instruments of the service.
// Collectors are registered on the default registry via promauto and exposed
// through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookActionsTotal counts processed webhook deliveries by action and
	// outcome. Outcomes: accepted, duplicate, out_of_order, conflict,
	// not_found, invalid, error.
	WebhookActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transferops",
			Name:      "webhook_actions_total",
			Help:      "Processed webhook deliveries by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	// WebhookProcessingSeconds observes end-to-end processing latency of one
	// webhook delivery, including the database transaction.
	WebhookProcessingSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "transferops",
			Name:      "webhook_processing_seconds",
			Help:      "Webhook processing latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// StockMovementsTotal counts applied physical stock movements by kind.
	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transferops",
			Name:      "stock_movements_total",
			Help:      "Applied stock movements by kind.",
		},
		[]string{"kind"},
	)

	// AnalyticsRecomputesTotal counts analytics recompute runs per outcome.
	AnalyticsRecomputesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transferops",
			Name:      "analytics_recomputes_total",
			Help:      "Analytics snapshot recompute runs by outcome.",
		},
		[]string{"outcome"},
	)
)
