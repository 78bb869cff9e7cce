package queries

import (
	"context"
	"encoding/json"
	"time"

	"transferops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDemandPatternsQueryHandler reads the demand-pattern snapshot table.
// Uses direct SQL queries for optimal read performance in the CQRS pattern;
// the snapshot is maintained by the analytics recompute job.
type GetDemandPatternsQueryHandler struct {
	db *gorm.DB
}

// NewGetDemandPatternsQueryHandler creates a handler for demand-pattern
// queries. Requires a GORM database connection for query execution.
func NewGetDemandPatternsQueryHandler(db *gorm.DB) GetDemandPatternsQueryHandler {
	return GetDemandPatternsQueryHandler{db: db}
}

// dailyVolumeDoc mirrors the JSON shape the analytics repository stores in
// the daily_volumes column.
type dailyVolumeDoc struct {
	Day           time.Time `json:"day"`
	TransferCount int       `json:"transfer_count"`
	Quantity      int       `json:"quantity"`
}

// Handle executes the query against the snapshot table.
// Returns rows sorted by destination for consistent output.
func (h GetDemandPatternsQueryHandler) Handle(
	ctx context.Context,
	query GetDemandPatternsQuery,
) ([]GetDemandPatternsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			destination_entity_id,
			transfer_count,
			discrepancy_rate,
			demand_score,
			daily_volumes
		FROM demand_pattern_snapshots
		WHERE organization_id = ?
		ORDER BY destination_entity_id
	`, query.OrgID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patterns := make([]GetDemandPatternsQueryResponse, 0)
	for rows.Next() {
		var pattern GetDemandPatternsQueryResponse
		var destinationID uuid.UUID
		var volumesRaw []byte

		err = rows.Scan(
			&destinationID,
			&pattern.TransferCount,
			&pattern.DiscrepancyRate,
			&pattern.DemandScore,
			&volumesRaw,
		)
		if err != nil {
			return nil, err
		}

		destination, idErr := kernel.UUIDFromBytes(destinationID[:])
		if idErr != nil {
			return nil, idErr
		}
		pattern.DestinationEntityID = destination

		var docs []dailyVolumeDoc
		if len(volumesRaw) > 0 {
			if err = json.Unmarshal(volumesRaw, &docs); err != nil {
				return nil, err
			}
		}
		pattern.DailyVolumes = make([]DailyVolumeResponse, 0, len(docs))
		for _, doc := range docs {
			pattern.DailyVolumes = append(pattern.DailyVolumes, DailyVolumeResponse{
				Day:           doc.Day,
				TransferCount: doc.TransferCount,
				Quantity:      doc.Quantity,
			})
		}

		patterns = append(patterns, pattern)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}
