package transferrepo

import (
	"context"
	"errors"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres error codes the repository translates into the domain error
// taxonomy. The gorm postgres driver is pgx-based, so server errors surface
// as *pgconn.PgError.
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// GormTransferRepository implements TransferRepository using GORM.
type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransferRepository creates a new GORM transfer repository.
func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transfer order to the database. A unique-constraint
// violation on (organization, external id) maps to ObjectAlreadyExistsError:
// two concurrent CREATE deliveries for the same external id resolve here.
func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isPgError(err, pgUniqueViolation) {
			return errs.NewObjectAlreadyExistsErrorWithCause(
				"transfer", aggregate.ExternalID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing transfer order to the database.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TransferDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]interface{}{
			"state":       dto.State,
			"discrepancy": dto.Discrepancy,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByExternalID retrieves a transfer by (organization, external id)
// without locking.
func (r *GormTransferRepository) GetByExternalID(
	ctx context.Context,
	orgID kernel.OrgID,
	externalID string,
) (*transfer.Transfer, error) {
	return r.getByExternalID(ctx, orgID, externalID, false)
}

// GetByExternalIDForUpdate retrieves a transfer by (organization, external
// id) under SELECT ... FOR UPDATE NOWAIT. If another delivery holds the row,
// Postgres fails immediately with lock_not_available, which maps to a
// retryable ConcurrencyConflictError instead of queueing the request on the
// lock.
func (r *GormTransferRepository) GetByExternalIDForUpdate(
	ctx context.Context,
	orgID kernel.OrgID,
	externalID string,
) (*transfer.Transfer, error) {
	return r.getByExternalID(ctx, orgID, externalID, true)
}

func (r *GormTransferRepository) getByExternalID(
	ctx context.Context,
	orgID kernel.OrgID,
	externalID string,
	locked bool,
) (*transfer.Transfer, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if externalID == "" {
		return nil, errs.NewValueIsRequiredError("external id")
	}

	query := r.db.WithContext(ctx)
	if locked {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"})
	}

	var dto TransferDTO
	err := query.First(&dto, "organization_id = ? AND external_id = ?",
		orgID.String(), externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", externalID)
		}
		if isPgError(err, pgLockNotAvailable) {
			return nil, errs.NewConcurrencyConflictErrorWithCause("transfer", externalID, err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrg retrieves all transfers of an organization.
func (r *GormTransferRepository) GetAllByOrg(
	ctx context.Context,
	orgID kernel.OrgID,
) ([]*transfer.Transfer, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransferDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "organization_id = ?", orgID.String()).Error
	if err != nil {
		return nil, err
	}

	transfers := make([]*transfer.Transfer, 0, len(dtos))
	for _, dto := range dtos {
		t, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		transfers = append(transfers, t)
	}

	return transfers, nil
}
