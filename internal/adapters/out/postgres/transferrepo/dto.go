// Package transferrepo provides data transfer objects and mapping functions
// for transfer-order persistence. This package implements the repository
// pattern for the transfer domain aggregate, handling the conversion between
// domain entities and database representations.
package transferrepo

import (
	"encoding/json"
	"time"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"

	"github.com/google/uuid"
)

// TransferDTO represents the database structure for persisting transfer
// aggregates. The (organization, external id) pair carries a unique index:
// it is the idempotency key of the webhook stream, and the row lock taken on
// it serializes concurrent deliveries for the same transfer.
type TransferDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID      string    `gorm:"type:text;uniqueIndex:idx_transfers_org_external,priority:1"`
	ExternalID          string    `gorm:"type:text;uniqueIndex:idx_transfers_org_external,priority:2"`
	OriginEntityID      uuid.UUID `gorm:"type:uuid;index"`
	DestinationEntityID uuid.UUID `gorm:"type:uuid;index"`
	State               int       `gorm:"index"`
	Discrepancy         bool
	Payload             []byte    `gorm:"type:jsonb"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for transfer orders.
func (TransferDTO) TableName() string {
	return "transfers"
}

// lineDoc is the JSON shape of one order line in the payload column.
type lineDoc struct {
	SKU         string `json:"sku"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

// fromDomain converts a transfer domain aggregate to its database representation.
func fromDomain(aggregate *transfer.Transfer) (TransferDTO, error) {
	lines := aggregate.Payload().Lines()
	docs := make([]lineDoc, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, lineDoc{
			SKU:         line.SKU(),
			Description: line.Description(),
			Quantity:    line.Quantity(),
		})
	}

	payload, err := json.Marshal(docs)
	if err != nil {
		return TransferDTO{}, err
	}

	return TransferDTO{
		ID:                  aggregate.ID().Bytes(),
		OrganizationID:      aggregate.OrgID().String(),
		ExternalID:          aggregate.ExternalID(),
		OriginEntityID:      aggregate.OriginEntityID().Bytes(),
		DestinationEntityID: aggregate.DestinationEntityID().Bytes(),
		State:               int(aggregate.State()),
		Discrepancy:         aggregate.HasDiscrepancy(),
		Payload:             payload,
	}, nil
}

// toDomain converts a database DTO to a transfer domain aggregate using
// RestoreTransfer.
func toDomain(dto TransferDTO) (*transfer.Transfer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orgID, err := kernel.NewOrgID(dto.OrganizationID)
	if err != nil {
		return nil, err
	}

	originID, err := kernel.UUIDFromBytes(dto.OriginEntityID[:])
	if err != nil {
		return nil, err
	}

	destinationID, err := kernel.UUIDFromBytes(dto.DestinationEntityID[:])
	if err != nil {
		return nil, err
	}

	var docs []lineDoc
	if err = json.Unmarshal(dto.Payload, &docs); err != nil {
		return nil, err
	}

	lines := make([]transfer.Line, 0, len(docs))
	for _, doc := range docs {
		line, lineErr := transfer.NewLine(doc.SKU, doc.Description, doc.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	payload, err := transfer.NewPayload(lines)
	if err != nil {
		return nil, err
	}

	return transfer.RestoreTransfer(
		id,
		orgID,
		dto.ExternalID,
		originID,
		destinationID,
		payload,
		transfer.State(dto.State),
		dto.Discrepancy,
	)
}
