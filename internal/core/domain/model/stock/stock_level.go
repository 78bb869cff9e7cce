// Package stock contains the inventory snapshot for one SKU at one
// stock-holding location. Levels are derived bookkeeping: the event log is
// authoritative, and the snapshot updater mutates levels as a side effect of
// transitions that cross a physical-movement boundary.
package stock

import (
	"errors"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/errs"
)

// ErrLevelIsNotConstructed is returned when a Level instance was not created
// through the NewLevel or RestoreLevel factory methods.
var ErrLevelIsNotConstructed = errors.New("Level must be created via NewLevel or RestoreLevel")

// Level tracks quantities of one SKU at one location entity, keyed by
// (organization, location, sku).
//
// Three buckets make up the snapshot:
//   - OnHand: physically present at the location
//   - InTransit: shipped toward the location but not yet checked in
//   - Effective: checked in and marked sellable
//
// Balances may go negative: the external event stream is authoritative, and
// the snapshot mirrors it even when deliveries arrive before the opening
// balance was recorded.
type Level struct {
	// orgID is the owning tenant organization
	orgID kernel.OrgID

	// locationEntityID references the stock-holding location entity
	locationEntityID kernel.UUID

	// sku identifies the product
	sku string

	// onHand is the quantity physically present
	onHand int

	// inTransit is the quantity shipped toward this location
	inTransit int

	// effective is the quantity checked in and sellable
	effective int

	// isConstructed ensures the level was created via a factory method
	isConstructed bool
}

// NewLevel creates an empty stock level for a SKU at a location.
func NewLevel(orgID kernel.OrgID, locationEntityID kernel.UUID, sku string) (*Level, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if err := locationEntityID.Validate(); err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	return &Level{
		orgID:            orgID,
		locationEntityID: locationEntityID,
		sku:              sku,
		isConstructed:    true,
	}, nil
}

// RestoreLevel reconstructs a stock level from persistence.
func RestoreLevel(
	orgID kernel.OrgID,
	locationEntityID kernel.UUID,
	sku string,
	onHand, inTransit, effective int,
) (*Level, error) {
	level, err := NewLevel(orgID, locationEntityID, sku)
	if err != nil {
		return nil, err
	}

	level.onHand = onHand
	level.inTransit = inTransit
	level.effective = effective
	return level, nil
}

// Validate ensures the Level was properly constructed through a factory method.
func (l *Level) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLevelIsNotConstructed
	}
	return nil
}

// OrgID returns the owning organization.
func (l *Level) OrgID() kernel.OrgID {
	return l.orgID
}

// LocationEntityID returns the stock-holding location entity.
func (l *Level) LocationEntityID() kernel.UUID {
	return l.locationEntityID
}

// SKU returns the product identifier.
func (l *Level) SKU() string {
	return l.sku
}

// OnHand returns the quantity physically present.
func (l *Level) OnHand() int {
	return l.onHand
}

// InTransit returns the quantity shipped toward this location.
func (l *Level) InTransit() int {
	return l.inTransit
}

// Effective returns the quantity checked in and sellable.
func (l *Level) Effective() int {
	return l.effective
}

// RemoveOnHand decrements the on-hand quantity. Applied at the origin when a
// shipment leaves the distribution center.
func (l *Level) RemoveOnHand(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	l.onHand -= quantity
	return nil
}

// AddInTransit raises the in-transit quantity. Applied at the destination
// when a shipment leaves the distribution center.
func (l *Level) AddInTransit(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	l.inTransit += quantity
	return nil
}

// SettleInTransit moves quantity from in-transit into on-hand. Applied at the
// destination when the shipment arrives for verification.
func (l *Level) SettleInTransit(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	l.inTransit -= quantity
	l.onHand += quantity
	return nil
}

// MarkEffective raises the sellable quantity. Applied at the destination when
// the transfer becomes effective.
func (l *Level) MarkEffective(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	l.effective += quantity
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}
	return nil
}
