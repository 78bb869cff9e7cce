package ports

import (
	"context"
	"time"

	"transferops/internal/core/domain/model/event"
	"transferops/internal/core/domain/model/kernel"
)

// EventRepository defines the persistence contract for the append-only event
// log. Events are write-once: the interface deliberately has no update or
// delete operations.
type EventRepository interface {
	// Add appends an event to the log.
	Add(ctx context.Context, aggregate *event.Event) error

	// GetByTransfer retrieves all events for one transfer, ordered by
	// occurrence time ascending.
	GetByTransfer(ctx context.Context, transferID kernel.UUID) ([]*event.Event, error)

	// GetByOrgBetween retrieves all events for an organization whose
	// occurrence time falls in [from, to), ordered ascending. This is the
	// read path of the analytics aggregator.
	GetByOrgBetween(ctx context.Context, orgID kernel.OrgID, from, to time.Time) ([]*event.Event, error)
}
