package ports

import (
	"context"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for per-location,
// per-SKU stock levels. All mutation happens inside the unit of work that
// carries the state transition, so a snapshot adjustment and its transition
// commit or roll back together.
type StockRepository interface {
	// GetForUpdate retrieves the stock level for (organization, location,
	// sku) under a row-level lock. Returns ObjectNotFoundError if no level
	// exists yet.
	GetForUpdate(ctx context.Context, orgID kernel.OrgID, locationEntityID kernel.UUID, sku string) (*stock.Level, error)

	// Save upserts a stock level keyed by (organization, location, sku).
	Save(ctx context.Context, aggregate *stock.Level) error
}
