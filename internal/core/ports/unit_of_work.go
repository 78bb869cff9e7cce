package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to the
// current transaction. Client code must explicitly manage the transaction
// lifecycle.
//
// The transition engine relies on this contract for its atomicity guarantee:
// the state update, the event append, and the stock snapshot adjustment all
// go through repositories of one unit of work, so they commit or roll back
// together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// EntityRepository returns an EntityRepository bound to the current transaction.
	EntityRepository() EntityRepository

	// TransferRepository returns a TransferRepository bound to the current transaction.
	TransferRepository() TransferRepository

	// EventRepository returns an EventRepository bound to the current transaction.
	EventRepository() EventRepository

	// StockRepository returns a StockRepository bound to the current transaction.
	StockRepository() StockRepository

	// AnalyticsRepository returns an AnalyticsRepository bound to the current transaction.
	AnalyticsRepository() AnalyticsRepository
}
