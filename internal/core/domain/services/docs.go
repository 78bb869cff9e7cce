// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the transfer-operations system.
//
// The package includes:
//   - StockMovementService: adjusts stock snapshots when a transition crosses
//     a physical-movement boundary, inside the caller's unit of work
//   - AnalyticsCalculator: pure recomputation of route performance and demand
//     patterns from the event log
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
