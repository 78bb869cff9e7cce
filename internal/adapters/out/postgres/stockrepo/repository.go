package stockrepo

import (
	"context"
	"errors"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/stock"
	"transferops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// GetForUpdate retrieves the stock level for (organization, location, sku)
// under SELECT ... FOR UPDATE. Unlike the transfer row lock this one waits:
// stock rows are shared across transfers, and the holder releases quickly.
func (r *GormStockRepository) GetForUpdate(
	ctx context.Context,
	orgID kernel.OrgID,
	locationEntityID kernel.UUID,
	sku string,
) (*stock.Level, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if err := locationEntityID.Validate(); err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	var dto StockLevelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "organization_id = ? AND location_entity_id = ? AND sku = ?",
			orgID.String(), locationEntityID.Bytes(), sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock level", sku)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts a stock level on the composite key.
func (r *GormStockRepository) Save(ctx context.Context, aggregate *stock.Level) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "organization_id"},
			{Name: "location_entity_id"},
			{Name: "sku"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"on_hand", "in_transit", "effective", "updated_at"}),
	}).Create(&dto).Error
}
