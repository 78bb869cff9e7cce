package queries

import (
	"errors"
	"time"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/guard"
)

var ErrGetDemandPatternsQueryIsNotConstructed = errors.New(
	"GetDemandPatternsQuery must be created via NewGetDemandPatternsQuery constructor",
)

// GetDemandPatternsQuery retrieves the demand-pattern snapshot of one
// organization: per-destination transfer volume, reliability, and demand
// score.
type GetDemandPatternsQuery struct {
	orgID kernel.OrgID

	guard guard.ConstructorGuard
}

// NewGetDemandPatternsQuery creates a query for all destinations of an
// organization.
func NewGetDemandPatternsQuery(orgID kernel.OrgID) (GetDemandPatternsQuery, error) {
	if err := orgID.Validate(); err != nil {
		return GetDemandPatternsQuery{}, err
	}

	return GetDemandPatternsQuery{
		orgID: orgID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDemandPatternsQueryIsNotConstructed if validation fails.
func (q GetDemandPatternsQuery) Validate() error {
	return q.guard.Validate(ErrGetDemandPatternsQueryIsNotConstructed)
}

// OrgID returns the organization whose snapshot is read.
func (q GetDemandPatternsQuery) OrgID() kernel.OrgID {
	return q.orgID
}

// DailyVolumeResponse is one bucket of a destination's daily volume series.
type DailyVolumeResponse struct {
	Day           time.Time
	TransferCount int
	Quantity      int
}

// GetDemandPatternsQueryResponse is one destination's demand pattern in the
// read model.
type GetDemandPatternsQueryResponse struct {
	DestinationEntityID kernel.UUID
	TransferCount       int
	DiscrepancyRate     float64
	DemandScore         float64
	DailyVolumes        []DailyVolumeResponse
}
