// Package entity contains the business-entity aggregate: the polymorphic
// record for suppliers, stock-holding locations, and products referenced by
// transfer orders.
//
// Entities are identified by the natural key (organization, type, external
// id) and are auto-provisioned on first reference through idempotent upserts.
// The entity type is a closed enum with a per-type attribute schema instead
// of a single open attribute map.
package entity
