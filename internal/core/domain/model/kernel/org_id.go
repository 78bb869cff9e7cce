package kernel

import (
	"strings"

	"transferops/internal/pkg/errs"
)

// ErrOrgIDIsNotConstructed indicates that an OrgID was not created through NewOrgID.
var ErrOrgIDIsNotConstructed = errs.NewValueIsRequiredError("OrgID must be created via NewOrgID")

// OrgID is a value object identifying the tenant organization that owns a
// record. Every aggregate in the system is partitioned by organization:
// natural keys are unique per organization, and no operation ever reads or
// mutates data across organizations.
//
// The zero value is invalid; construct via NewOrgID.
type OrgID struct {
	value string
}

// NewOrgID creates an OrgID from the identifier issued by the tenancy system.
// Surrounding whitespace is trimmed; a blank identifier is rejected so a
// whitespace-only header can never register as its own tenant.
func NewOrgID(value string) (OrgID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OrgID{}, errs.NewValueIsRequiredError("organization id")
	}
	return OrgID{value: trimmed}, nil
}

// String returns the raw organization identifier.
func (o OrgID) String() string {
	return o.value
}

// IsEqual compares two organization identifiers.
func (o OrgID) IsEqual(other OrgID) bool {
	return o.value == other.value
}

// Validate checks that the OrgID was properly constructed.
func (o OrgID) Validate() error {
	if o.value == "" {
		return ErrOrgIDIsNotConstructed
	}
	return nil
}
