package cmd

import (
	"log/slog"
	"os"

	"transferops/internal/adapters/out/postgres"
	"transferops/internal/core/application/usecases/commands"
	"transferops/internal/core/application/usecases/queries"
	"transferops/internal/core/domain/services"
	"transferops/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) CreateProcessActionCommandHandler() commands.ProcessActionCommandHandler {
	var f commands.ProcessUoWFactory = FuncProcessUoWFactory(func() commands.ProcessUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessActionCommandHandler(f, services.NewStockMovementService())
}

func (c *CompositionRoot) CreateRecomputeAnalyticsCommandHandler() commands.RecomputeAnalyticsCommandHandler {
	var f commands.RecomputeUoWFactory = FuncRecomputeUoWFactory(func() commands.RecomputeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecomputeAnalyticsCommandHandler(f, services.NewAnalyticsCalculator())
}

func (c *CompositionRoot) CreateGetRoutePerformanceQueryHandler() queries.GetRoutePerformanceQueryHandler {
	return queries.NewGetRoutePerformanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDemandPatternsQueryHandler() queries.GetDemandPatternsQueryHandler {
	return queries.NewGetDemandPatternsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrganizationsQueryHandler() queries.GetActiveOrganizationsQueryHandler {
	return queries.NewGetActiveOrganizationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRecomputeAnalyticsCommandHandler(),
		c.CreateGetActiveOrganizationsQueryHandler(),
		c.config.AnalyticsWindowDays,
		c.config.AnalyticsRecomputeCron,
		c.logger,
	)
}

type FuncProcessUoWFactory func() commands.ProcessUoW

func (f FuncProcessUoWFactory) Create() commands.ProcessUoW {
	return f()
}

type FuncRecomputeUoWFactory func() commands.RecomputeUoW

func (f FuncRecomputeUoWFactory) Create() commands.RecomputeUoW {
	return f()
}
