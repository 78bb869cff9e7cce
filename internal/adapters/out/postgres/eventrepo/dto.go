// Package eventrepo provides data transfer objects and mapping functions for
// the append-only event log. Events are write-once: the repository exposes no
// update or delete operations, and the table is the authoritative history the
// analytics snapshots are rebuilt from.
package eventrepo

import (
	"encoding/json"
	"time"

	"transferops/internal/core/domain/model/event"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting business events.
type EventDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID     uuid.UUID `gorm:"type:uuid;index"`
	OrganizationID string    `gorm:"type:text;index:idx_events_org_occurred,priority:1"`
	Action         int
	FromState      int
	ToState        int
	Discrepancy    bool
	OccurredAt     time.Time `gorm:"index:idx_events_org_occurred,priority:2"`
	RawPayload     []byte    `gorm:"type:jsonb"`
	Metadata       []byte    `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for business events.
func (EventDTO) TableName() string {
	return "events"
}

// fromDomain converts an event domain aggregate to its database representation.
func fromDomain(aggregate *event.Event) (EventDTO, error) {
	metadata, err := json.Marshal(aggregate.Metadata())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:             aggregate.ID().Bytes(),
		TransferID:     aggregate.TransferID().Bytes(),
		OrganizationID: aggregate.OrgID().String(),
		Action:         int(aggregate.Action()),
		FromState:      int(aggregate.FromState()),
		ToState:        int(aggregate.ToState()),
		Discrepancy:    aggregate.HasDiscrepancy(),
		OccurredAt:     aggregate.OccurredAt(),
		RawPayload:     aggregate.RawPayload(),
		Metadata:       metadata,
	}, nil
}

// toDomain converts a database DTO to an event domain aggregate using
// RestoreEvent.
func toDomain(dto EventDTO) (*event.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	transferID, err := kernel.UUIDFromBytes(dto.TransferID[:])
	if err != nil {
		return nil, err
	}

	orgID, err := kernel.NewOrgID(dto.OrganizationID)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]string)
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return event.RestoreEvent(
		id,
		transferID,
		orgID,
		transfer.Action(dto.Action),
		transfer.State(dto.FromState),
		transfer.State(dto.ToState),
		dto.Discrepancy,
		dto.OccurredAt,
		dto.RawPayload,
		metadata,
	)
}
