// Package stockrepo provides data transfer objects and mapping functions for
// stock-level persistence. Levels are the derived per-location inventory
// snapshot; rows are keyed by (organization, location, sku) and mutated only
// inside the unit of work carrying the state transition.
package stockrepo

import (
	"time"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// StockLevelDTO represents the database structure for persisting stock
// levels. The composite primary key doubles as the upsert conflict target.
type StockLevelDTO struct {
	OrganizationID   string    `gorm:"type:text;primaryKey"`
	LocationEntityID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU              string    `gorm:"type:text;primaryKey;column:sku"`
	OnHand           int
	InTransit        int
	Effective        int
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for stock levels.
func (StockLevelDTO) TableName() string {
	return "stock_levels"
}

// fromDomain converts a stock level domain aggregate to its database representation.
func fromDomain(aggregate *stock.Level) StockLevelDTO {
	return StockLevelDTO{
		OrganizationID:   aggregate.OrgID().String(),
		LocationEntityID: aggregate.LocationEntityID().Bytes(),
		SKU:              aggregate.SKU(),
		OnHand:           aggregate.OnHand(),
		InTransit:        aggregate.InTransit(),
		Effective:        aggregate.Effective(),
	}
}

// toDomain converts a database DTO to a stock level domain aggregate using
// RestoreLevel.
func toDomain(dto StockLevelDTO) (*stock.Level, error) {
	orgID, err := kernel.NewOrgID(dto.OrganizationID)
	if err != nil {
		return nil, err
	}

	locationID, err := kernel.UUIDFromBytes(dto.LocationEntityID[:])
	if err != nil {
		return nil, err
	}

	return stock.RestoreLevel(
		orgID,
		locationID,
		dto.SKU,
		dto.OnHand,
		dto.InTransit,
		dto.Effective,
	)
}
