package transfer

import (
	"errors"
	"fmt"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/errs"
)

var (
	// ErrTransferIsNotConstructed is returned when a Transfer instance was not
	// created through the NewTransfer or RestoreTransfer factory methods.
	ErrTransferIsNotConstructed = errors.New("Transfer must be created via NewTransfer or RestoreTransfer")

	// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
	// Callers classify out-of-order or illegal actions with errors.Is.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// InvalidTransitionError reports an action whose target state is not the
// immediate successor of the transfer's current state. It carries enough
// structure for the caller to decide between replaying later (prerequisite
// events have not arrived yet) and operator triage.
type InvalidTransitionError struct {
	From   State
	Action Action
	Target State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: action %s targets %s but current state is %s",
		ErrInvalidTransition, e.Action, e.Target, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AdvanceOutcome describes the effect of one Advance call.
type AdvanceOutcome struct {
	// From is the state before the call.
	From State

	// To is the state after the call. Equal to From for duplicates.
	To State

	// Duplicate is true when the requested state was already reached and the
	// call changed nothing. Duplicates are success, not failure: they are the
	// expected shape of webhook retries.
	Duplicate bool

	// Movement is the physical stock movement the transition triggers, or
	// MovementNone. Always MovementNone for duplicates.
	Movement MovementKind
}

// Transfer is the aggregate root for a transfer order: inventory moving from
// a distribution center to a store. It owns the lifecycle state machine.
//
// Transfer follows these invariants:
//   - The external id is the idempotency key, unique per organization
//   - The state only ever moves forward along the graph in State, exactly
//     one step per accepted action
//   - A discrepancy outcome sets a flag but never forks the flow
//   - Transfers are never deleted; terminal states are retained for audit
type Transfer struct {
	// id is the generated unique identifier
	id kernel.UUID

	// orgID is the owning tenant organization
	orgID kernel.OrgID

	// externalID is the source-system idempotency key, unique per org
	externalID string

	// originEntityID references the distribution-center location entity
	originEntityID kernel.UUID

	// destinationEntityID references the store location entity
	destinationEntityID kernel.UUID

	// state is the current lifecycle state
	state State

	// discrepancy records whether any step reported a quantity mismatch
	discrepancy bool

	// payload holds the validated order lines
	payload Payload

	// isConstructed ensures the transfer was created via a factory method
	isConstructed bool
}

// NewTransfer creates a new transfer order in Created state.
//
// Parameters:
//   - id: generated unique identifier
//   - orgID: owning organization
//   - externalID: source-system idempotency key
//   - originEntityID: distribution-center location entity
//   - destinationEntityID: store location entity
//   - payload: validated order lines
//
// Returns a validation error if any parameter is invalid or if origin and
// destination reference the same entity.
func NewTransfer(
	id kernel.UUID,
	orgID kernel.OrgID,
	externalID string,
	originEntityID kernel.UUID,
	destinationEntityID kernel.UUID,
	payload Payload,
) (*Transfer, error) {
	t := &Transfer{
		state:         StateCreated,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrgID(orgID),
		t.setExternalID(externalID),
		t.setRoute(originEntityID, destinationEntityID),
		t.setPayload(payload),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTransfer reconstructs a Transfer from persistence with its stored
// state and discrepancy flag.
func RestoreTransfer(
	id kernel.UUID,
	orgID kernel.OrgID,
	externalID string,
	originEntityID kernel.UUID,
	destinationEntityID kernel.UUID,
	payload Payload,
	state State,
	discrepancy bool,
) (*Transfer, error) {
	t, err := NewTransfer(id, orgID, externalID, originEntityID, destinationEntityID, payload)
	if err != nil {
		return nil, err
	}

	if err = state.Validate(); err != nil {
		return nil, err
	}
	t.state = state
	t.discrepancy = discrepancy

	return t, nil
}

// Validate ensures the Transfer was properly constructed through a factory method.
func (t *Transfer) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransferIsNotConstructed
	}
	return nil
}

// IsEqual compares two transfers by their unique identifiers.
func (t *Transfer) IsEqual(other *Transfer) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the transfer's generated identifier.
func (t *Transfer) ID() kernel.UUID {
	return t.id
}

// OrgID returns the owning organization.
func (t *Transfer) OrgID() kernel.OrgID {
	return t.orgID
}

// ExternalID returns the source-system idempotency key.
func (t *Transfer) ExternalID() string {
	return t.externalID
}

// OriginEntityID returns the origin location entity reference.
func (t *Transfer) OriginEntityID() kernel.UUID {
	return t.originEntityID
}

// DestinationEntityID returns the destination location entity reference.
func (t *Transfer) DestinationEntityID() kernel.UUID {
	return t.destinationEntityID
}

// State returns the current lifecycle state.
func (t *Transfer) State() State {
	return t.state
}

// HasDiscrepancy reports whether any step recorded a quantity mismatch.
func (t *Transfer) HasDiscrepancy() bool {
	return t.discrepancy
}

// Payload returns the order lines.
func (t *Transfer) Payload() Payload {
	return t.payload
}

// Advance applies an action to the transfer's state machine.
//
// Behavior per outcome:
//   - Duplicate delivery (the action's target state is already the current
//     state): no mutation, AdvanceOutcome.Duplicate is true, nil error.
//   - Valid transition (target is the immediate successor of the current
//     state): the state moves exactly one step forward; a discrepancy target
//     additionally sets the discrepancy flag.
//   - Anything else: no mutation, *InvalidTransitionError.
//
// ActionCreate is never a valid argument here: creation goes through
// NewTransfer, and StateCreated has no predecessors in the graph, so the
// ordering check rejects it.
func (t *Transfer) Advance(action Action) (AdvanceOutcome, error) {
	if err := t.Validate(); err != nil {
		return AdvanceOutcome{}, err
	}

	target, err := action.TargetState()
	if err != nil {
		return AdvanceOutcome{}, err
	}

	if t.state == target {
		return AdvanceOutcome{
			From:      t.state,
			To:        t.state,
			Duplicate: true,
			Movement:  MovementNone,
		}, nil
	}

	if !t.state.CanAdvanceTo(target) {
		return AdvanceOutcome{}, &InvalidTransitionError{
			From:   t.state,
			Action: action,
			Target: target,
		}
	}

	from := t.state
	t.state = target
	if target.HasDiscrepancy() {
		t.discrepancy = true
	}

	return AdvanceOutcome{
		From:     from,
		To:       target,
		Movement: MovementForState(target),
	}, nil
}

func (t *Transfer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transfer) setOrgID(orgID kernel.OrgID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	t.orgID = orgID
	return nil
}

func (t *Transfer) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("external id")
	}
	t.externalID = externalID
	return nil
}

func (t *Transfer) setRoute(originEntityID, destinationEntityID kernel.UUID) error {
	if err := originEntityID.Validate(); err != nil {
		return err
	}
	if err := destinationEntityID.Validate(); err != nil {
		return err
	}
	if originEntityID.IsEqual(destinationEntityID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"route",
			errors.New("origin and destination must differ"),
		)
	}

	t.originEntityID = originEntityID
	t.destinationEntityID = destinationEntityID
	return nil
}

func (t *Transfer) setPayload(payload Payload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	t.payload = payload
	return nil
}
