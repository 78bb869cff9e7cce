package analyticsrepo

import (
	"context"

	"transferops/internal/core/domain/model/analytics"
	"transferops/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAnalyticsRepository implements AnalyticsRepository using GORM.
// Both replace operations run as delete-and-insert and expect to be called
// inside a transaction, so readers see either the old snapshot or the new
// one, never a mix.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GORM analytics repository.
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// ReplaceRoutePerformance swaps the stored route-performance snapshot of an
// organization for the freshly computed one.
func (r *GormAnalyticsRepository) ReplaceRoutePerformance(
	ctx context.Context,
	orgID kernel.OrgID,
	rows []analytics.RoutePerformance,
) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID.String()).
		Delete(&RoutePerformanceDTO{}).Error
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	dtos := make([]RoutePerformanceDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, routePerformanceFromDomain(orgID.String(), row))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ReplaceDemandPatterns swaps the stored demand-pattern snapshot of an
// organization for the freshly computed one.
func (r *GormAnalyticsRepository) ReplaceDemandPatterns(
	ctx context.Context,
	orgID kernel.OrgID,
	rows []analytics.DemandPattern,
) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID.String()).
		Delete(&DemandPatternDTO{}).Error
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	dtos := make([]DemandPatternDTO, 0, len(rows))
	for _, row := range rows {
		dto, domainErr := demandPatternFromDomain(orgID.String(), row)
		if domainErr != nil {
			return domainErr
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
