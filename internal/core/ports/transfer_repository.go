package ports

import (
	"context"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
)

// TransferRepository defines the persistence contract for transfer orders.
// The external id is the idempotency key: it is unique per organization, and
// every webhook after the first CREATE addresses the existing row.
type TransferRepository interface {
	// Add persists a new transfer order.
	// Returns ObjectAlreadyExistsError if the (organization, external id)
	// natural key is already taken.
	Add(ctx context.Context, aggregate *transfer.Transfer) error

	// Update persists changes to an existing transfer order.
	Update(ctx context.Context, aggregate *transfer.Transfer) error

	// GetByExternalID retrieves a transfer by (organization, external id)
	// without locking. Returns ObjectNotFoundError if absent.
	GetByExternalID(ctx context.Context, orgID kernel.OrgID, externalID string) (*transfer.Transfer, error)

	// GetAllByOrg retrieves all transfers of an organization. This is the
	// read path of the analytics aggregator.
	GetAllByOrg(ctx context.Context, orgID kernel.OrgID) ([]*transfer.Transfer, error)

	// GetByExternalIDForUpdate retrieves a transfer by (organization,
	// external id) under a row-level lock held until the surrounding
	// transaction ends. The lock acquisition is bounded: if another writer
	// holds the row, the call fails fast with ConcurrencyConflictError
	// instead of blocking, and the caller retries with backoff.
	GetByExternalIDForUpdate(ctx context.Context, orgID kernel.OrgID, externalID string) (*transfer.Transfer, error)
}
