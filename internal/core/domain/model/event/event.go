// Package event contains the business-event record: the immutable,
// append-only fact written for every accepted, non-duplicate action.
//
// The event log is the authoritative history of the system. Transfer state
// and every analytics aggregate can be rebuilt from it; events are therefore
// write-once and carry the raw webhook payload alongside the structured
// transition data.
package event

import (
	"encoding/json"
	"errors"
	"time"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through the NewEvent or RestoreEvent factory methods.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one accepted action on a transfer order. Events are write-once:
// the type exposes no mutators, and the repository only appends.
type Event struct {
	// id is the generated unique identifier
	id kernel.UUID

	// transferID references the transfer the action applied to
	transferID kernel.UUID

	// orgID is the owning tenant organization
	orgID kernel.OrgID

	// action is the ECA action that was requested
	action transfer.Action

	// fromState is the state before the transition
	fromState transfer.State

	// toState is the state after the transition
	toState transfer.State

	// discrepancy records whether this step reported a quantity mismatch
	discrepancy bool

	// occurredAt is when the action was accepted
	occurredAt time.Time

	// rawPayload is the webhook payload as delivered, kept for audit/replay
	rawPayload json.RawMessage

	// metadata carries free-form delivery metadata (source system, trace ids)
	metadata map[string]string
}

// NewEvent creates a validated event for an accepted action.
// For the CREATE action, fromState and toState are both StateCreated.
func NewEvent(
	id kernel.UUID,
	transferID kernel.UUID,
	orgID kernel.OrgID,
	action transfer.Action,
	fromState transfer.State,
	toState transfer.State,
	discrepancy bool,
	occurredAt time.Time,
	rawPayload json.RawMessage,
	metadata map[string]string,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		transferID.Validate(),
		orgID.Validate(),
		action.Validate(),
		fromState.Validate(),
		toState.Validate(),
	); err != nil {
		return nil, err
	}

	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("occurred at")
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	return &Event{
		id:          id,
		transferID:  transferID,
		orgID:       orgID,
		action:      action,
		fromState:   fromState,
		toState:     toState,
		discrepancy: discrepancy,
		occurredAt:  occurredAt.UTC(),
		rawPayload:  rawPayload,
		metadata:    meta,
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
// It applies the same validation as NewEvent.
func RestoreEvent(
	id kernel.UUID,
	transferID kernel.UUID,
	orgID kernel.OrgID,
	action transfer.Action,
	fromState transfer.State,
	toState transfer.State,
	discrepancy bool,
	occurredAt time.Time,
	rawPayload json.RawMessage,
	metadata map[string]string,
) (*Event, error) {
	return NewEvent(id, transferID, orgID, action, fromState, toState,
		discrepancy, occurredAt, rawPayload, metadata)
}

// Validate ensures the Event was properly constructed through a factory method.
func (e *Event) Validate() error {
	if e == nil || e.id.Validate() != nil {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's generated identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// TransferID returns the transfer this event belongs to.
func (e *Event) TransferID() kernel.UUID {
	return e.transferID
}

// OrgID returns the owning organization.
func (e *Event) OrgID() kernel.OrgID {
	return e.orgID
}

// Action returns the requested ECA action.
func (e *Event) Action() transfer.Action {
	return e.action
}

// FromState returns the state before the transition.
func (e *Event) FromState() transfer.State {
	return e.fromState
}

// ToState returns the state after the transition.
func (e *Event) ToState() transfer.State {
	return e.toState
}

// HasDiscrepancy reports whether this step recorded a quantity mismatch.
func (e *Event) HasDiscrepancy() bool {
	return e.discrepancy
}

// OccurredAt returns when the action was accepted, in UTC.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// RawPayload returns the webhook payload as delivered.
func (e *Event) RawPayload() json.RawMessage {
	return e.rawPayload
}

// Metadata returns a copy of the delivery metadata.
func (e *Event) Metadata() map[string]string {
	meta := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		meta[k] = v
	}
	return meta
}
