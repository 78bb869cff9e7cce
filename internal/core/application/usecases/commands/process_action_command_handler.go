package commands

import (
	"context"
	"errors"

	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/event"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/core/domain/services"
	"transferops/internal/core/ports"
	"transferops/internal/pkg/errs"
	"transferops/internal/pkg/metrics"
)

// ProcessResult describes the outcome of one processed webhook action.
type ProcessResult struct {
	// TransferID is the generated id of the affected transfer.
	TransferID kernel.UUID

	// PreviousState is the state before the action was applied.
	PreviousState transfer.State

	// CurrentState is the state after the action was applied. Equal to
	// PreviousState for duplicate deliveries.
	CurrentState transfer.State

	// Duplicate is true when the delivery was a retry of an already-applied
	// action. Duplicates change nothing and append no event.
	Duplicate bool

	// EventID is the id of the appended event. Zero for duplicates.
	EventID kernel.UUID
}

// ProcessActionCommandHandler is the transition engine: it applies one
// webhook action to the system inside a single transaction.
//
// The processing order per delivery:
//  1. Upsert every entity reference the delivery carries (auto-provisioning).
//  2. Load the transfer by (organization, external id) under a bounded row
//     lock, or create it for the CREATE action.
//  3. Let the aggregate decide: duplicate no-op, one-step advance, or
//     rejection of an out-of-order action.
//  4. For an accepted advance, persist the new state, append the event, and
//     apply the stock movement when the target state crosses a
//     physical-movement boundary.
//
// All writes share one unit of work; a failure anywhere rolls back
// everything, so a stored event always matches a stored state change.
type ProcessActionCommandHandler struct {
	uowFactory    ProcessUoWFactory
	stockMovement services.StockMovementService
}

// NewProcessActionCommandHandler creates a handler for webhook processing.
// Requires a ProcessUoWFactory for transactional persistence and the stock
// movement service for snapshot updates.
func NewProcessActionCommandHandler(
	uowFactory ProcessUoWFactory,
	stockMovement services.StockMovementService,
) ProcessActionCommandHandler {
	return ProcessActionCommandHandler{
		uowFactory:    uowFactory,
		stockMovement: stockMovement,
	}
}

// Handle processes one webhook action command.
//
// Error classification for callers:
//   - errs.ErrObjectNotFound: the transaction external id is unknown
//   - transfer.ErrInvalidTransition: the action is out of order
//   - errs.ErrConcurrencyConflict: another delivery holds the row lock,
//     retry with backoff
//
// A duplicate delivery is not an error: the result carries Duplicate=true.
func (h *ProcessActionCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessActionCommand,
) (ProcessResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	resolved, err := h.upsertEntities(ctx, uow.EntityRepository(), cmd)
	if err != nil {
		return ProcessResult{}, err
	}

	var result ProcessResult
	if cmd.Action().IsCreate() {
		result, err = h.handleCreate(ctx, uow, cmd, resolved)
	} else {
		result, err = h.handleAdvance(ctx, uow, cmd)
	}
	if err != nil {
		return ProcessResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProcessResult{}, err
	}

	return result, nil
}

type naturalKey struct {
	entityType entity.Type
	externalID string
}

// upsertEntities auto-provisions every entity reference of the delivery and
// returns the stored entities keyed by (type, external id).
func (h *ProcessActionCommandHandler) upsertEntities(
	ctx context.Context,
	entityRepo ports.EntityRepository,
	cmd ProcessActionCommand,
) (map[naturalKey]*entity.Entity, error) {
	resolved := make(map[naturalKey]*entity.Entity, len(cmd.Entities()))

	for _, ref := range cmd.Entities() {
		candidate, err := entity.NewEntity(
			kernel.NewUUID(),
			cmd.OrgID(),
			ref.Type(),
			ref.ExternalID(),
			ref.Name(),
			ref.Attributes(),
		)
		if err != nil {
			return nil, err
		}

		stored, err := entityRepo.Upsert(ctx, candidate)
		if err != nil {
			return nil, err
		}

		resolved[naturalKey{ref.Type(), ref.ExternalID()}] = stored
	}

	return resolved, nil
}

// handleCreate registers a new transfer order. A retried CREATE for an
// external id still in the initial state is a duplicate no-op; a CREATE for
// a transfer that already advanced is an out-of-order action.
func (h *ProcessActionCommandHandler) handleCreate(
	ctx context.Context,
	uow ProcessUoW,
	cmd ProcessActionCommand,
	resolved map[naturalKey]*entity.Entity,
) (ProcessResult, error) {
	transferRepo := uow.TransferRepository()

	existing, err := transferRepo.GetByExternalIDForUpdate(ctx, cmd.OrgID(), cmd.ExternalID())
	if err == nil {
		if existing.State() == transfer.StateCreated {
			return ProcessResult{
				TransferID:    existing.ID(),
				PreviousState: transfer.StateCreated,
				CurrentState:  transfer.StateCreated,
				Duplicate:     true,
			}, nil
		}
		return ProcessResult{}, &transfer.InvalidTransitionError{
			From:   existing.State(),
			Action: transfer.ActionCreate,
			Target: transfer.StateCreated,
		}
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return ProcessResult{}, err
	}

	originID, err := h.resolveLocation(ctx, uow.EntityRepository(), cmd, resolved, cmd.OriginExternalID())
	if err != nil {
		return ProcessResult{}, err
	}
	destinationID, err := h.resolveLocation(ctx, uow.EntityRepository(), cmd, resolved, cmd.DestinationExternalID())
	if err != nil {
		return ProcessResult{}, err
	}

	created, err := transfer.NewTransfer(
		kernel.NewUUID(),
		cmd.OrgID(),
		cmd.ExternalID(),
		originID,
		destinationID,
		cmd.Payload(),
	)
	if err != nil {
		return ProcessResult{}, err
	}

	if err = transferRepo.Add(ctx, created); err != nil {
		return ProcessResult{}, err
	}

	eventID, err := h.appendEvent(ctx, uow.EventRepository(), cmd, created,
		transfer.StateCreated, transfer.StateCreated)
	if err != nil {
		return ProcessResult{}, err
	}

	return ProcessResult{
		TransferID:    created.ID(),
		PreviousState: transfer.StateCreated,
		CurrentState:  transfer.StateCreated,
		EventID:       eventID,
	}, nil
}

// handleAdvance applies a non-create action to an existing transfer.
func (h *ProcessActionCommandHandler) handleAdvance(
	ctx context.Context,
	uow ProcessUoW,
	cmd ProcessActionCommand,
) (ProcessResult, error) {
	transferRepo := uow.TransferRepository()

	loaded, err := transferRepo.GetByExternalIDForUpdate(ctx, cmd.OrgID(), cmd.ExternalID())
	if err != nil {
		return ProcessResult{}, err
	}

	outcome, err := loaded.Advance(cmd.Action())
	if err != nil {
		return ProcessResult{}, err
	}

	if outcome.Duplicate {
		return ProcessResult{
			TransferID:    loaded.ID(),
			PreviousState: outcome.From,
			CurrentState:  outcome.To,
			Duplicate:     true,
		}, nil
	}

	if err = transferRepo.Update(ctx, loaded); err != nil {
		return ProcessResult{}, err
	}

	eventID, err := h.appendEvent(ctx, uow.EventRepository(), cmd, loaded,
		outcome.From, outcome.To)
	if err != nil {
		return ProcessResult{}, err
	}

	if outcome.Movement != transfer.MovementNone {
		if err = h.stockMovement.ApplyMovement(ctx, uow.StockRepository(), loaded, outcome.Movement); err != nil {
			return ProcessResult{}, err
		}
		metrics.StockMovementsTotal.WithLabelValues(outcome.Movement.String()).Inc()
	}

	return ProcessResult{
		TransferID:    loaded.ID(),
		PreviousState: outcome.From,
		CurrentState:  outcome.To,
		EventID:       eventID,
	}, nil
}

func (h *ProcessActionCommandHandler) appendEvent(
	ctx context.Context,
	eventRepo ports.EventRepository,
	cmd ProcessActionCommand,
	t *transfer.Transfer,
	fromState, toState transfer.State,
) (kernel.UUID, error) {
	ev, err := event.NewEvent(
		kernel.NewUUID(),
		t.ID(),
		cmd.OrgID(),
		cmd.Action(),
		fromState,
		toState,
		toState.HasDiscrepancy(),
		cmd.OccurredAt(),
		cmd.RawPayload(),
		cmd.Metadata(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = eventRepo.Add(ctx, ev); err != nil {
		return kernel.UUID{}, err
	}

	return ev.ID(), nil
}

// resolveLocation maps a location external id to the stored entity id,
// preferring the entities upserted from this delivery.
func (h *ProcessActionCommandHandler) resolveLocation(
	ctx context.Context,
	entityRepo ports.EntityRepository,
	cmd ProcessActionCommand,
	resolved map[naturalKey]*entity.Entity,
	externalID string,
) (kernel.UUID, error) {
	if stored, ok := resolved[naturalKey{entity.TypeLocation, externalID}]; ok {
		return stored.ID(), nil
	}

	stored, err := entityRepo.GetByNaturalKey(ctx, cmd.OrgID(), entity.TypeLocation, externalID)
	if err != nil {
		return kernel.UUID{}, err
	}

	return stored.ID(), nil
}
