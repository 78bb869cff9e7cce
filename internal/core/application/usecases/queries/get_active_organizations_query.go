package queries

// GetActiveOrganizationsQuery lists every organization that owns at least one
// transfer order. The analytics recompute job uses it to discover which
// tenants need a fresh snapshot; there is no separate organization registry.
type GetActiveOrganizationsQuery struct{}

// NewGetActiveOrganizationsQuery creates a query for active organizations.
func NewGetActiveOrganizationsQuery() GetActiveOrganizationsQuery {
	return GetActiveOrganizationsQuery{}
}
