// Package analyticsrepo provides data transfer objects and mapping functions
// for the analytics snapshot tables. Snapshots are derived read models: they
// are replaced wholesale per organization on every recompute and can always
// be rebuilt from the event log.
package analyticsrepo

import (
	"encoding/json"
	"time"

	"transferops/internal/core/domain/model/analytics"

	"github.com/google/uuid"
)

// RoutePerformanceDTO represents one route's aggregated performance row.
type RoutePerformanceDTO struct {
	OrganizationID      string    `gorm:"type:text;primaryKey"`
	OriginEntityID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	DestinationEntityID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferCount       int
	CompletedCount      int
	AvgLeadTimeMs       int64 `gorm:"column:avg_lead_time_ms"`
	DiscrepancyRate     float64
	TotalQuantity       int
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for route-performance snapshots.
func (RoutePerformanceDTO) TableName() string {
	return "route_performance_snapshots"
}

// DemandPatternDTO represents one destination's demand-pattern row.
type DemandPatternDTO struct {
	OrganizationID      string    `gorm:"type:text;primaryKey"`
	DestinationEntityID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferCount       int
	DiscrepancyRate     float64
	DemandScore         float64
	DailyVolumes        []byte    `gorm:"type:jsonb"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for demand-pattern snapshots.
func (DemandPatternDTO) TableName() string {
	return "demand_pattern_snapshots"
}

// dailyVolumeDoc is the JSON shape of one bucket in the daily_volumes column.
// The query handlers parse the same shape.
type dailyVolumeDoc struct {
	Day           time.Time `json:"day"`
	TransferCount int       `json:"transfer_count"`
	Quantity      int       `json:"quantity"`
}

func routePerformanceFromDomain(orgID string, row analytics.RoutePerformance) RoutePerformanceDTO {
	return RoutePerformanceDTO{
		OrganizationID:      orgID,
		OriginEntityID:      row.Route.OriginEntityID.Bytes(),
		DestinationEntityID: row.Route.DestinationEntityID.Bytes(),
		TransferCount:       row.TransferCount,
		CompletedCount:      row.CompletedCount,
		AvgLeadTimeMs:       row.AvgLeadTime.Milliseconds(),
		DiscrepancyRate:     row.DiscrepancyRate,
		TotalQuantity:       row.TotalQuantity,
	}
}

func demandPatternFromDomain(orgID string, row analytics.DemandPattern) (DemandPatternDTO, error) {
	docs := make([]dailyVolumeDoc, 0, len(row.DailyVolumes))
	for _, volume := range row.DailyVolumes {
		docs = append(docs, dailyVolumeDoc{
			Day:           volume.Day,
			TransferCount: volume.TransferCount,
			Quantity:      volume.Quantity,
		})
	}

	volumes, err := json.Marshal(docs)
	if err != nil {
		return DemandPatternDTO{}, err
	}

	return DemandPatternDTO{
		OrganizationID:      orgID,
		DestinationEntityID: row.DestinationEntityID.Bytes(),
		TransferCount:       row.TransferCount,
		DiscrepancyRate:     row.DiscrepancyRate,
		DemandScore:         row.DemandScore,
		DailyVolumes:        volumes,
	}, nil
}
