// Package entityrepo provides data transfer objects and mapping functions for
// business-entity persistence. This package implements the repository pattern
// for the entity domain aggregate, handling the conversion between domain
// entities and database representations.
package entityrepo

import (
	"encoding/json"
	"time"

	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntityDTO represents the database structure for persisting entity
// aggregates. The natural key (organization, type, external id) carries a
// unique index so that concurrent auto-provisioning resolves through the
// upsert instead of creating duplicates.
type EntityDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID string    `gorm:"type:text;uniqueIndex:idx_entities_natural_key,priority:1"`
	Type           int       `gorm:"uniqueIndex:idx_entities_natural_key,priority:2"`
	ExternalID     string    `gorm:"type:text;uniqueIndex:idx_entities_natural_key,priority:3"`
	Name           string    `gorm:"type:text"`
	Attributes     []byte    `gorm:"type:jsonb"`
	Status         int
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for business entities.
func (EntityDTO) TableName() string {
	return "entities"
}

// fromDomain converts an entity domain aggregate to its database representation.
func fromDomain(aggregate *entity.Entity) (EntityDTO, error) {
	attributes, err := json.Marshal(aggregate.Attributes())
	if err != nil {
		return EntityDTO{}, err
	}

	return EntityDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrgID().String(),
		Type:           int(aggregate.Type()),
		ExternalID:     aggregate.ExternalID(),
		Name:           aggregate.Name(),
		Attributes:     attributes,
		Status:         int(aggregate.Status()),
	}, nil
}

// toDomain converts a database DTO to an entity domain aggregate using
// RestoreEntity.
func toDomain(dto EntityDTO) (*entity.Entity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orgID, err := kernel.NewOrgID(dto.OrganizationID)
	if err != nil {
		return nil, err
	}

	attributes := make(map[string]string)
	if len(dto.Attributes) > 0 {
		if err = json.Unmarshal(dto.Attributes, &attributes); err != nil {
			return nil, err
		}
	}

	return entity.RestoreEntity(
		id,
		orgID,
		entity.Type(dto.Type),
		dto.ExternalID,
		dto.Name,
		attributes,
		entity.Status(dto.Status),
	)
}
