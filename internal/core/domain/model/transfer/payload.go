package transfer

import (
	"errors"
	"fmt"

	"transferops/internal/pkg/errs"
)

const maxLineQuantity = 1_000_000

// Line is one order line of a transfer: a quantity of a product moving from
// the origin to the destination.
type Line struct {
	sku         string
	description string
	quantity    int
}

// NewLine creates a validated order line.
func NewLine(sku, description string, quantity int) (Line, error) {
	if sku == "" {
		return Line{}, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 || quantity > maxLineQuantity {
		return Line{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
	}

	return Line{
		sku:         sku,
		description: description,
		quantity:    quantity,
	}, nil
}

// SKU returns the product identifier of the line.
func (l Line) SKU() string {
	return l.sku
}

// Description returns the free-text description of the line.
func (l Line) Description() string {
	return l.description
}

// Quantity returns the number of units on the line.
func (l Line) Quantity() int {
	return l.quantity
}

// Payload is the structured order-line content of a transfer. It replaces
// the untyped pass-through blob with validated lines: a payload has at least
// one line and no repeated SKUs.
type Payload struct {
	lines []Line
}

// NewPayload creates a validated payload from order lines.
func NewPayload(lines []Line) (Payload, error) {
	if len(lines) == 0 {
		return Payload{}, errs.NewValueIsRequiredError("order lines")
	}

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.sku == "" {
			return Payload{}, errors.Join(
				errs.NewValueIsInvalidError("order lines"),
				errors.New("line must be created via NewLine"),
			)
		}
		if seen[line.sku] {
			return Payload{}, errs.NewValueIsInvalidErrorWithCause(
				"order lines",
				fmt.Errorf("duplicate sku %q", line.sku),
			)
		}
		seen[line.sku] = true
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)
	return Payload{lines: copied}, nil
}

// Lines returns a copy of the order lines.
func (p Payload) Lines() []Line {
	lines := make([]Line, len(p.lines))
	copy(lines, p.lines)
	return lines
}

// TotalQuantity returns the summed quantity across all lines.
func (p Payload) TotalQuantity() int {
	total := 0
	for _, line := range p.lines {
		total += line.quantity
	}
	return total
}

// Validate checks that the payload was created via NewPayload.
func (p Payload) Validate() error {
	if len(p.lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	return nil
}
