package queries

import (
	"context"
	"time"

	"transferops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRoutePerformanceQueryHandler reads the route-performance snapshot table.
// Uses direct SQL queries for optimal read performance in the CQRS pattern;
// the snapshot is maintained by the analytics recompute job.
type GetRoutePerformanceQueryHandler struct {
	db *gorm.DB
}

// NewGetRoutePerformanceQueryHandler creates a handler for route-performance
// queries. Requires a GORM database connection for query execution.
func NewGetRoutePerformanceQueryHandler(db *gorm.DB) GetRoutePerformanceQueryHandler {
	return GetRoutePerformanceQueryHandler{db: db}
}

// Handle executes the query against the snapshot table.
// Returns rows sorted by origin and destination for consistent output.
func (h GetRoutePerformanceQueryHandler) Handle(
	ctx context.Context,
	query GetRoutePerformanceQuery,
) ([]GetRoutePerformanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			origin_entity_id,
			destination_entity_id,
			transfer_count,
			completed_count,
			avg_lead_time_ms,
			discrepancy_rate,
			total_quantity
		FROM route_performance_snapshots
		WHERE organization_id = ?
	`
	args := []any{query.OrgID().String()}

	if query.RouteFiltered() {
		sql += " AND origin_entity_id = ? AND destination_entity_id = ?"
		args = append(args, query.OriginEntityID().String(), query.DestinationEntityID().String())
	}
	sql += " ORDER BY origin_entity_id, destination_entity_id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]GetRoutePerformanceQueryResponse, 0)
	for rows.Next() {
		var route GetRoutePerformanceQueryResponse
		var originID, destinationID uuid.UUID
		var avgLeadTimeMs int64

		err = rows.Scan(
			&originID,
			&destinationID,
			&route.TransferCount,
			&route.CompletedCount,
			&avgLeadTimeMs,
			&route.DiscrepancyRate,
			&route.TotalQuantity,
		)
		if err != nil {
			return nil, err
		}

		origin, idErr := kernel.UUIDFromBytes(originID[:])
		if idErr != nil {
			return nil, idErr
		}
		destination, idErr := kernel.UUIDFromBytes(destinationID[:])
		if idErr != nil {
			return nil, idErr
		}

		route.OriginEntityID = origin
		route.DestinationEntityID = destination
		route.AvgLeadTime = time.Duration(avgLeadTimeMs) * time.Millisecond
		routes = append(routes, route)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}
