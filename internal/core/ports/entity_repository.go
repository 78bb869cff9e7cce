package ports

import (
	"context"

	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/kernel"
)

// EntityRepository defines the persistence contract for business entities.
// Entities are keyed by the natural key (organization, type, external id)
// and written exclusively through upserts so that concurrent auto-provisioning
// of the same entity never creates duplicates.
type EntityRepository interface {
	// Upsert creates the entity if the natural key is unseen, or updates name
	// and attributes of the existing record. The implementation must rely on
	// a unique constraint plus upsert semantics, not read-then-write.
	// Returns the stored entity including its generated id.
	Upsert(ctx context.Context, aggregate *entity.Entity) (*entity.Entity, error)

	// GetByNaturalKey retrieves an entity by (organization, type, external id).
	// Returns ObjectNotFoundError if the key is unseen.
	GetByNaturalKey(ctx context.Context, orgID kernel.OrgID, entityType entity.Type, externalID string) (*entity.Entity, error)

	// Get retrieves an entity by its generated identifier.
	Get(ctx context.Context, id kernel.UUID) (*entity.Entity, error)
}
