package entity

import (
	"errors"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/errs"
)

// ErrEntityIsNotConstructed is returned when an Entity instance was not
// created through the NewEntity or RestoreEntity factory methods.
var ErrEntityIsNotConstructed = errors.New("Entity must be created via NewEntity or RestoreEntity")

// Entity represents a real-world actor or object referenced by transfer
// orders: a supplier, a stock-holding location, or a product. It is an
// aggregate root identified internally by UUID and externally by the natural
// key (organization, type, external id).
//
// Entity follows these invariants:
//   - (organization, type, external id) is unique per organization
//   - Attributes conform to the per-type schema
//   - Entities are upserted on first reference and never hard-deleted once
//     a transfer references them
//
// Entities are auto-provisioned: the first webhook that mentions an unseen
// external id creates the record with whatever attributes the payload
// carries, and later webhooks enrich it through the upsert path.
type Entity struct {
	// id is the generated unique identifier
	id kernel.UUID

	// orgID is the owning tenant organization
	orgID kernel.OrgID

	// entityType discriminates supplier, location, and product
	entityType Type

	// externalID is the source-system identifier, unique per org and type
	externalID string

	// name is the display name
	name string

	// attributes is the per-type attribute map validated against the type schema
	attributes map[string]string

	// status is the administrative state
	status Status

	// isConstructed ensures the entity was created via a factory method
	isConstructed bool
}

// NewEntity creates a new Entity with validation. The entity starts in
// Active status. Attributes are validated against the type schema and
// defensively copied.
func NewEntity(
	id kernel.UUID,
	orgID kernel.OrgID,
	entityType Type,
	externalID string,
	name string,
	attributes map[string]string,
) (*Entity, error) {
	e := &Entity{
		status:        StatusActive,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrgID(orgID),
		e.setType(entityType),
		e.setExternalID(externalID),
		e.setName(name),
	); err != nil {
		return nil, err
	}

	if err := e.setAttributes(attributes); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntity reconstructs an Entity from persistence without re-running
// creation defaults. The stored status is applied as-is.
func RestoreEntity(
	id kernel.UUID,
	orgID kernel.OrgID,
	entityType Type,
	externalID string,
	name string,
	attributes map[string]string,
	status Status,
) (*Entity, error) {
	e, err := NewEntity(id, orgID, entityType, externalID, name, attributes)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	e.status = status

	return e, nil
}

// Validate ensures the Entity was properly constructed through a factory method.
func (e *Entity) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntityIsNotConstructed
	}
	return nil
}

// IsEqual compares two entities by their unique identifiers.
func (e *Entity) IsEqual(other *Entity) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the entity's generated identifier.
func (e *Entity) ID() kernel.UUID {
	return e.id
}

// OrgID returns the owning organization.
func (e *Entity) OrgID() kernel.OrgID {
	return e.orgID
}

// Type returns the entity type discriminator.
func (e *Entity) Type() Type {
	return e.entityType
}

// ExternalID returns the source-system identifier.
func (e *Entity) ExternalID() string {
	return e.externalID
}

// Name returns the display name.
func (e *Entity) Name() string {
	return e.name
}

// Attributes returns a copy of the attribute map.
func (e *Entity) Attributes() map[string]string {
	attrs := make(map[string]string, len(e.attributes))
	for k, v := range e.attributes {
		attrs[k] = v
	}
	return attrs
}

// Status returns the administrative status.
func (e *Entity) Status() Status {
	return e.status
}

// Rename updates the display name. Used by the upsert path when a later
// webhook carries a fresher name for an already-provisioned entity.
func (e *Entity) Rename(name string) error {
	return e.setName(name)
}

// MergeAttributes folds new attribute values into the existing map after
// validating them against the type schema. Existing keys are overwritten;
// keys absent from the update are kept.
func (e *Entity) MergeAttributes(attributes map[string]string) error {
	if err := e.entityType.ValidateAttributes(attributes); err != nil {
		return err
	}

	for k, v := range attributes {
		e.attributes[k] = v
	}
	return nil
}

// Deactivate moves the entity to Inactive status.
func (e *Entity) Deactivate() {
	e.status = StatusInactive
}

// Archive retires the entity for good. The record stays readable because
// historical transfers reference it.
func (e *Entity) Archive() {
	e.status = StatusArchived
}

func (e *Entity) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entity) setOrgID(orgID kernel.OrgID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	e.orgID = orgID
	return nil
}

func (e *Entity) setType(entityType Type) error {
	if err := entityType.Validate(); err != nil {
		return err
	}
	e.entityType = entityType
	return nil
}

func (e *Entity) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("external id")
	}
	e.externalID = externalID
	return nil
}

func (e *Entity) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	e.name = name
	return nil
}

func (e *Entity) setAttributes(attributes map[string]string) error {
	if err := e.entityType.ValidateAttributes(attributes); err != nil {
		return err
	}

	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	e.attributes = attrs
	return nil
}
