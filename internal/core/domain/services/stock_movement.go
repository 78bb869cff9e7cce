package services

import (
	"context"
	"errors"
	"fmt"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/stock"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/core/ports"
	"transferops/internal/pkg/errs"
)

// StockMovementService is the snapshot updater: it adjusts per-location,
// per-SKU stock levels when a transition crosses a physical-movement
// boundary.
//
// The service runs against repositories handed in by the caller, which binds
// it to the caller's unit of work: a snapshot adjustment never commits
// without its state transition, and vice versa. Duplicate deliveries never
// reach this service because the transition engine filters them first, so
// every invocation applies exactly once per event.
//
// Movement semantics per kind:
//   - Ship: origin on-hand decreases, destination in-transit increases
//   - Receive: destination in-transit settles into on-hand
//   - Effectuate: destination effective (sellable) quantity increases
type StockMovementService struct{}

// NewStockMovementService creates a new StockMovementService instance.
func NewStockMovementService() StockMovementService {
	return StockMovementService{}
}

// ApplyMovement applies the stock adjustment for one movement kind across
// all order lines of the transfer. Missing stock levels are created on the
// fly; the repository rows are locked for the duration of the surrounding
// transaction.
func (s StockMovementService) ApplyMovement(
	ctx context.Context,
	stockRepo ports.StockRepository,
	t *transfer.Transfer,
	kind transfer.MovementKind,
) error {
	if err := t.Validate(); err != nil {
		return err
	}

	for _, line := range t.Payload().Lines() {
		if err := s.applyLine(ctx, stockRepo, t, kind, line); err != nil {
			return fmt.Errorf("apply %s for sku %s: %w", kind, line.SKU(), err)
		}
	}

	return nil
}

func (s StockMovementService) applyLine(
	ctx context.Context,
	stockRepo ports.StockRepository,
	t *transfer.Transfer,
	kind transfer.MovementKind,
	line transfer.Line,
) error {
	switch kind {
	case transfer.MovementShip:
		origin, err := s.levelFor(ctx, stockRepo, t.OrgID(), t.OriginEntityID(), line.SKU())
		if err != nil {
			return err
		}
		if err = origin.RemoveOnHand(line.Quantity()); err != nil {
			return err
		}
		if err = stockRepo.Save(ctx, origin); err != nil {
			return err
		}

		destination, err := s.levelFor(ctx, stockRepo, t.OrgID(), t.DestinationEntityID(), line.SKU())
		if err != nil {
			return err
		}
		if err = destination.AddInTransit(line.Quantity()); err != nil {
			return err
		}
		return stockRepo.Save(ctx, destination)

	case transfer.MovementReceive:
		destination, err := s.levelFor(ctx, stockRepo, t.OrgID(), t.DestinationEntityID(), line.SKU())
		if err != nil {
			return err
		}
		if err = destination.SettleInTransit(line.Quantity()); err != nil {
			return err
		}
		return stockRepo.Save(ctx, destination)

	case transfer.MovementEffectuate:
		destination, err := s.levelFor(ctx, stockRepo, t.OrgID(), t.DestinationEntityID(), line.SKU())
		if err != nil {
			return err
		}
		if err = destination.MarkEffective(line.Quantity()); err != nil {
			return err
		}
		return stockRepo.Save(ctx, destination)

	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"movement kind",
			fmt.Errorf("%d is not an applicable movement", kind),
		)
	}
}

// levelFor loads the stock level under lock, creating an empty level for
// unseen (location, sku) pairs.
func (s StockMovementService) levelFor(
	ctx context.Context,
	stockRepo ports.StockRepository,
	orgID kernel.OrgID,
	locationEntityID kernel.UUID,
	sku string,
) (*stock.Level, error) {
	level, err := stockRepo.GetForUpdate(ctx, orgID, locationEntityID, sku)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	return stock.NewLevel(orgID, locationEntityID, sku)
}
