package entity

import (
	"fmt"

	"transferops/internal/pkg/errs"
)

// Status represents the administrative state of a business entity.
// Entities are never hard-deleted once referenced by a transfer; instead they
// move to Inactive or Archived.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusActive is the default state for entities in use.
	StatusActive

	// StatusInactive marks an entity temporarily out of use.
	StatusInactive

	// StatusArchived marks an entity retired for good. Archived entities are
	// retained for audit because historical transfers reference them.
	StatusArchived
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "UNKNOWN",
		StatusActive:   "ACTIVE",
		StatusInactive: "INACTIVE",
		StatusArchived: "ARCHIVED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusActive:   "ACTIVE",
		StatusInactive: "INACTIVE",
		StatusArchived: "ARCHIVED",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid entity status", s),
		)
	}
	return nil
}

// String returns the canonical name of the status.
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
