package commands

import (
	"encoding/json"
	"errors"
	"time"

	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/pkg/errs"
	"transferops/internal/pkg/guard"
)

var (
	ErrProcessActionCommandIsNotConstructed = errors.New(
		"ProcessActionCommand must be created via NewProcessActionCommand constructor",
	)
	ErrEntityRefIsNotConstructed = errors.New(
		"EntityRef must be created via NewEntityRef constructor",
	)
)

// EntityRef is one entity reference carried by a webhook delivery. Every
// referenced entity is upserted when the action is processed, which is how
// unseen entities get auto-provisioned and known ones enriched.
type EntityRef struct {
	entityType entity.Type
	externalID string
	name       string
	attributes map[string]string
}

// NewEntityRef creates a validated entity reference.
func NewEntityRef(
	entityType entity.Type,
	externalID string,
	name string,
	attributes map[string]string,
) (EntityRef, error) {
	if err := entityType.Validate(); err != nil {
		return EntityRef{}, err
	}
	if externalID == "" {
		return EntityRef{}, errs.NewValueIsRequiredError("entity external id")
	}
	if name == "" {
		return EntityRef{}, errs.NewValueIsRequiredError("entity name")
	}
	if err := entityType.ValidateAttributes(attributes); err != nil {
		return EntityRef{}, err
	}

	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}

	return EntityRef{
		entityType: entityType,
		externalID: externalID,
		name:       name,
		attributes: attrs,
	}, nil
}

// Validate ensures the reference was created through the constructor.
func (r EntityRef) Validate() error {
	if r.externalID == "" {
		return ErrEntityRefIsNotConstructed
	}
	return nil
}

// Type returns the entity type discriminator.
func (r EntityRef) Type() entity.Type {
	return r.entityType
}

// ExternalID returns the source-system identifier.
func (r EntityRef) ExternalID() string {
	return r.externalID
}

// Name returns the display name.
func (r EntityRef) Name() string {
	return r.name
}

// Attributes returns the per-type attribute map.
func (r EntityRef) Attributes() map[string]string {
	return r.attributes
}

// ProcessActionCommand represents one webhook delivery: an action requested
// on a transfer order, together with the entity references and order lines
// the delivery carries.
//
// For the CREATE action the command must name the origin and destination
// location entities and carry at least one order line. For every other
// action only the organization, the action, and the transaction external id
// matter; entity references are optional enrichment.
//
// Example:
//
//	cmd, err := NewProcessActionCommand(
//	    orgID, transfer.ActionShipFromCD, "TX-001",
//	    nil, "", "", transfer.Payload{},
//	    time.Now(), rawBody, nil,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid webhook data: %w", err)
//	}
//
//	handler := NewProcessActionCommandHandler(uowFactory, stockMovement)
//	result, err := handler.Handle(ctx, cmd)
type ProcessActionCommand struct { //nolint:recvcheck //using for validation
	orgID                 kernel.OrgID
	action                transfer.Action
	externalID            string
	entities              []EntityRef
	originExternalID      string
	destinationExternalID string
	payload               transfer.Payload
	occurredAt            time.Time
	rawPayload            json.RawMessage
	metadata              map[string]string

	guard guard.ConstructorGuard
}

// NewProcessActionCommand creates a command for one webhook action.
// A zero occurredAt defaults to the current time. Returns a validation error
// when required parts for the requested action are missing.
func NewProcessActionCommand(
	orgID kernel.OrgID,
	action transfer.Action,
	externalID string,
	entities []EntityRef,
	originExternalID string,
	destinationExternalID string,
	payload transfer.Payload,
	occurredAt time.Time,
	rawPayload json.RawMessage,
	metadata map[string]string,
) (ProcessActionCommand, error) {
	cmd := ProcessActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setAction(action),
		cmd.setExternalID(externalID),
		cmd.setEntities(entities),
	); err != nil {
		return ProcessActionCommand{}, err
	}

	if action.IsCreate() {
		if err := errors.Join(
			cmd.setRoute(originExternalID, destinationExternalID),
			cmd.setPayload(payload),
		); err != nil {
			return ProcessActionCommand{}, err
		}
	}

	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	cmd.occurredAt = occurredAt.UTC()
	cmd.rawPayload = rawPayload

	cmd.metadata = make(map[string]string, len(metadata))
	for k, v := range metadata {
		cmd.metadata[k] = v
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessActionCommandIsNotConstructed if validation fails.
func (c ProcessActionCommand) Validate() error {
	return c.guard.Validate(ErrProcessActionCommandIsNotConstructed)
}

// OrgID returns the organization the delivery belongs to.
func (c ProcessActionCommand) OrgID() kernel.OrgID {
	return c.orgID
}

// Action returns the requested action.
func (c ProcessActionCommand) Action() transfer.Action {
	return c.action
}

// ExternalID returns the transaction external id, the idempotency key.
func (c ProcessActionCommand) ExternalID() string {
	return c.externalID
}

// Entities returns the entity references carried by the delivery.
func (c ProcessActionCommand) Entities() []EntityRef {
	return c.entities
}

// OriginExternalID returns the origin location's external id. Set only for
// the CREATE action.
func (c ProcessActionCommand) OriginExternalID() string {
	return c.originExternalID
}

// DestinationExternalID returns the destination location's external id. Set
// only for the CREATE action.
func (c ProcessActionCommand) DestinationExternalID() string {
	return c.destinationExternalID
}

// Payload returns the order lines. Set only for the CREATE action.
func (c ProcessActionCommand) Payload() transfer.Payload {
	return c.payload
}

// OccurredAt returns when the action happened in the source system, in UTC.
func (c ProcessActionCommand) OccurredAt() time.Time {
	return c.occurredAt
}

// RawPayload returns the webhook body as delivered, kept for the event log.
func (c ProcessActionCommand) RawPayload() json.RawMessage {
	return c.rawPayload
}

// Metadata returns the delivery metadata (source system, trace ids).
func (c ProcessActionCommand) Metadata() map[string]string {
	return c.metadata
}

func (c *ProcessActionCommand) setOrgID(orgID kernel.OrgID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	c.orgID = orgID
	return nil
}

func (c *ProcessActionCommand) setAction(action transfer.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *ProcessActionCommand) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("transaction external id")
	}

	c.externalID = externalID
	return nil
}

func (c *ProcessActionCommand) setEntities(entities []EntityRef) error {
	for _, ref := range entities {
		if err := ref.Validate(); err != nil {
			return err
		}
	}

	c.entities = entities
	return nil
}

func (c *ProcessActionCommand) setRoute(originExternalID, destinationExternalID string) error {
	if originExternalID == "" {
		return errs.NewValueIsRequiredError("origin external id")
	}
	if destinationExternalID == "" {
		return errs.NewValueIsRequiredError("destination external id")
	}
	if originExternalID == destinationExternalID {
		return errs.NewValueIsInvalidErrorWithCause(
			"route",
			errors.New("origin and destination must differ"),
		)
	}

	c.originExternalID = originExternalID
	c.destinationExternalID = destinationExternalID
	return nil
}

func (c *ProcessActionCommand) setPayload(payload transfer.Payload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	c.payload = payload
	return nil
}
