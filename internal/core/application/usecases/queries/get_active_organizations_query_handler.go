package queries

import (
	"context"

	"transferops/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetActiveOrganizationsQueryHandler reads the distinct organization ids from
// the transfers table.
type GetActiveOrganizationsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrganizationsQueryHandler creates a handler for organization
// discovery. Requires a GORM database connection for query execution.
func NewGetActiveOrganizationsQueryHandler(db *gorm.DB) GetActiveOrganizationsQueryHandler {
	return GetActiveOrganizationsQueryHandler{db: db}
}

// Handle returns every organization with at least one transfer, sorted for
// deterministic job iteration order.
func (h GetActiveOrganizationsQueryHandler) Handle(
	ctx context.Context,
	_ GetActiveOrganizationsQuery,
) ([]kernel.OrgID, error) {
	rows, err := h.db.WithContext(ctx).
		Raw("SELECT DISTINCT organization_id FROM transfers ORDER BY organization_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := make([]kernel.OrgID, 0)
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		orgID, orgErr := kernel.NewOrgID(raw)
		if orgErr != nil {
			return nil, orgErr
		}
		orgs = append(orgs, orgID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orgs, nil
}
