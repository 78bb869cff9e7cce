package entityrepo

import (
	"context"
	"errors"

	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEntityRepository implements EntityRepository using GORM.
type GormEntityRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEntityRepository creates a new GORM entity repository.
func NewGormEntityRepository(db *gorm.DB, tracker aggregateTracker) *GormEntityRepository {
	return &GormEntityRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert creates or enriches an entity through a single INSERT ... ON
// CONFLICT statement on the natural-key unique index, so concurrent
// auto-provisioning of the same entity never races a read-then-write.
// Attributes merge: keys absent from the new delivery keep their stored
// values. Returns the stored entity including its original generated id.
func (r *GormEntityRepository) Upsert(ctx context.Context, aggregate *entity.Entity) (*entity.Entity, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "organization_id"},
			{Name: "type"},
			{Name: "external_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":       gorm.Expr("excluded.name"),
			"attributes": gorm.Expr("entities.attributes || excluded.attributes"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&dto).Error
	if err != nil {
		return nil, err
	}

	// The conflict path keeps the existing row's id, so read the stored
	// record back instead of trusting the candidate's generated id.
	stored, err := r.GetByNaturalKey(ctx, aggregate.OrgID(), aggregate.Type(), aggregate.ExternalID())
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(stored.ID(), stored)
	return stored, nil
}

// GetByNaturalKey retrieves an entity by (organization, type, external id).
func (r *GormEntityRepository) GetByNaturalKey(
	ctx context.Context,
	orgID kernel.OrgID,
	entityType entity.Type,
	externalID string,
) (*entity.Entity, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if err := entityType.Validate(); err != nil {
		return nil, err
	}
	if externalID == "" {
		return nil, errs.NewValueIsRequiredError("external id")
	}

	var dto EntityDTO
	err := r.db.WithContext(ctx).
		First(&dto, "organization_id = ? AND type = ? AND external_id = ?",
			orgID.String(), int(entityType), externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("entity", externalID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Get retrieves an entity by its generated identifier.
func (r *GormEntityRepository) Get(ctx context.Context, id kernel.UUID) (*entity.Entity, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("entity", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
