package entity

import (
	"fmt"

	"transferops/internal/pkg/errs"
)

// Type is the closed discriminator for the kinds of business entities the
// system tracks. It replaces ad-hoc string tags with a validated enum: values
// arriving from external systems must parse through TypeFromString before
// they reach the domain.
type Type int

const (
	// TypeUnknown represents an invalid or undefined entity type.
	TypeUnknown Type = iota

	// TypeSupplier is an upstream party that sources goods.
	TypeSupplier

	// TypeLocation is a physical stock-holding site: a distribution center
	// or a store. Transfer orders move inventory between two locations.
	TypeLocation

	// TypeProduct is a sellable item identified by SKU in order lines.
	TypeProduct
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "UNKNOWN",
		TypeSupplier: "SUPPLIER",
		TypeLocation: "LOCATION",
		TypeProduct:  "PRODUCT",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeSupplier: "SUPPLIER",
		TypeLocation: "LOCATION",
		TypeProduct:  "PRODUCT",
	}
}

// getTypeAttributeSchemas returns the allowed attribute keys per entity type.
// Attributes outside the schema are rejected at the boundary so that each
// type carries only its own shape instead of one open map for every kind.
func getTypeAttributeSchemas() map[Type]map[string]bool {
	return map[Type]map[string]bool{
		TypeSupplier: {
			"document": true,
			"contact":  true,
			"email":    true,
		},
		TypeLocation: {
			"kind":    true, // "cd" or "store"
			"address": true,
			"city":    true,
			"region":  true,
		},
		TypeProduct: {
			"sku":         true,
			"description": true,
			"unit":        true,
			"category":    true,
		},
	}
}

// TypeFromString parses an entity type from its wire representation.
// Returns an error for anything outside the closed set.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"entity type",
		fmt.Errorf("%q is not a valid entity type", s),
	)
}

// Validate checks if the Type value is one of the closed set.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"entity type",
			fmt.Errorf("%d is not a valid entity type", t),
		)
	}
	return nil
}

// String returns the canonical wire name of the type.
// Implements fmt.Stringer; safe to call on invalid values.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateAttributes checks an attribute map against the type's schema.
// Unknown keys are rejected; all values must be non-empty.
func (t Type) ValidateAttributes(attrs map[string]string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	schema := getTypeAttributeSchemas()[t]
	for key, value := range attrs {
		if !schema[key] {
			return errs.NewValueIsInvalidErrorWithCause(
				"attributes",
				fmt.Errorf("%q is not a valid attribute for entity type %s", key, t),
			)
		}
		if value == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("attribute %q", key))
		}
	}

	return nil
}
