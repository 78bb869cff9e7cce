// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides the building blocks that all aggregates depend on:
//
//   - UUID: validated identifier value object wrapping github.com/google/uuid
//   - OrgID: tenant partition key; every natural key is scoped by it
//
// Value objects in this package are immutable and validated at construction.
// Zero values are deliberately invalid and fail Validate, which repositories
// rely on when reconstructing aggregates from persistence.
package kernel
