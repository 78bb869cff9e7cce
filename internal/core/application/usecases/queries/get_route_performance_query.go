// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the analytics snapshot tables, never the event log itself.
package queries

import (
	"errors"
	"time"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/guard"
)

var ErrGetRoutePerformanceQueryIsNotConstructed = errors.New(
	"GetRoutePerformanceQuery must be created via NewGetRoutePerformanceQuery constructor",
)

// GetRoutePerformanceQuery retrieves the route-performance snapshot of one
// organization, optionally narrowed to a single route.
//
// Example:
//
//	query, err := NewGetRoutePerformanceQuery(orgID)
//	handler := NewGetRoutePerformanceQueryHandler(db)
//
//	routes, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve route performance: %w", err)
//	}
type GetRoutePerformanceQuery struct {
	orgID               kernel.OrgID
	originEntityID      kernel.UUID
	destinationEntityID kernel.UUID
	routeFiltered       bool

	guard guard.ConstructorGuard
}

// NewGetRoutePerformanceQuery creates a query for all routes of an organization.
func NewGetRoutePerformanceQuery(orgID kernel.OrgID) (GetRoutePerformanceQuery, error) {
	if err := orgID.Validate(); err != nil {
		return GetRoutePerformanceQuery{}, err
	}

	return GetRoutePerformanceQuery{
		orgID: orgID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetRoutePerformanceQueryForRoute creates a query narrowed to one
// (origin, destination) route.
func NewGetRoutePerformanceQueryForRoute(
	orgID kernel.OrgID,
	originEntityID, destinationEntityID kernel.UUID,
) (GetRoutePerformanceQuery, error) {
	query, err := NewGetRoutePerformanceQuery(orgID)
	if err != nil {
		return GetRoutePerformanceQuery{}, err
	}

	if err = originEntityID.Validate(); err != nil {
		return GetRoutePerformanceQuery{}, err
	}
	if err = destinationEntityID.Validate(); err != nil {
		return GetRoutePerformanceQuery{}, err
	}

	query.originEntityID = originEntityID
	query.destinationEntityID = destinationEntityID
	query.routeFiltered = true
	return query, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetRoutePerformanceQueryIsNotConstructed if validation fails.
func (q GetRoutePerformanceQuery) Validate() error {
	return q.guard.Validate(ErrGetRoutePerformanceQueryIsNotConstructed)
}

// OrgID returns the organization whose snapshot is read.
func (q GetRoutePerformanceQuery) OrgID() kernel.OrgID {
	return q.orgID
}

// OriginEntityID returns the origin filter. Meaningful only when RouteFiltered.
func (q GetRoutePerformanceQuery) OriginEntityID() kernel.UUID {
	return q.originEntityID
}

// DestinationEntityID returns the destination filter. Meaningful only when
// RouteFiltered.
func (q GetRoutePerformanceQuery) DestinationEntityID() kernel.UUID {
	return q.destinationEntityID
}

// RouteFiltered reports whether the query is narrowed to one route.
func (q GetRoutePerformanceQuery) RouteFiltered() bool {
	return q.routeFiltered
}

// GetRoutePerformanceQueryResponse is one route's aggregated performance in
// the read model.
type GetRoutePerformanceQueryResponse struct {
	OriginEntityID      kernel.UUID
	DestinationEntityID kernel.UUID
	TransferCount       int
	CompletedCount      int
	AvgLeadTime         time.Duration
	DiscrepancyRate     float64
	TotalQuantity       int
}
