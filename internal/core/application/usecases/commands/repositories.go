// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"transferops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EntityRepoFactory provides access to the entity repository within a transaction.
	EntityRepoFactory interface {
		EntityRepository() ports.EntityRepository
	}

	// TransferRepoFactory provides access to the transfer repository within a transaction.
	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	// EventRepoFactory provides access to the event repository within a transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// StockRepoFactory provides access to the stock repository within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// AnalyticsRepoFactory provides access to the analytics repository within a transaction.
	AnalyticsRepoFactory interface {
		AnalyticsRepository() ports.AnalyticsRepository
	}

	// ProcessUoW manages the transaction of one webhook action: entity
	// upserts, the transfer state update, the event append, and the stock
	// snapshot adjustment all commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   transferRepo := uow.TransferRepository()
	//   eventRepo := uow.EventRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ProcessUoW interface {
		TxManager
		EntityRepoFactory
		TransferRepoFactory
		EventRepoFactory
		StockRepoFactory
	}

	// ProcessUoWFactory creates new unit of work instances for webhook processing.
	ProcessUoWFactory interface {
		Create() ProcessUoW
	}

	// RecomputeUoW manages the transaction of one analytics recompute: the
	// event-log read and the snapshot replacement share one transaction so
	// readers never observe a half-written snapshot.
	RecomputeUoW interface {
		TxManager
		TransferRepoFactory
		EventRepoFactory
		AnalyticsRepoFactory
	}

	// RecomputeUoWFactory creates new unit of work instances for analytics recompute.
	RecomputeUoWFactory interface {
		Create() RecomputeUoW
	}
)
