package eventrepo

import (
	"context"
	"time"

	"transferops/internal/core/domain/model/event"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM.
type GormEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEventRepository creates a new GORM event repository.
func NewGormEventRepository(db *gorm.DB, tracker aggregateTracker) *GormEventRepository {
	return &GormEventRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends an event to the log.
func (r *GormEventRepository) Add(ctx context.Context, aggregate *event.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByTransfer retrieves all events for one transfer, ordered by occurrence
// time ascending.
func (r *GormEventRepository) GetByTransfer(
	ctx context.Context,
	transferID kernel.UUID,
) ([]*event.Event, error) {
	if err := transferID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at ASC").
		Find(&dtos, "transfer_id = ?", transferID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByOrgBetween retrieves all events of an organization occurring in
// [from, to), ordered ascending.
func (r *GormEventRepository) GetByOrgBetween(
	ctx context.Context,
	orgID kernel.OrgID,
	from, to time.Time,
) ([]*event.Event, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if from.IsZero() || to.IsZero() {
		return nil, errs.NewValueIsRequiredError("window")
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at ASC").
		Find(&dtos, "organization_id = ? AND occurred_at >= ? AND occurred_at < ?",
			orgID.String(), from, to).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []EventDTO) ([]*event.Event, error) {
	events := make([]*event.Event, 0, len(dtos))
	for _, dto := range dtos {
		ev, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
