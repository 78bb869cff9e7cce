package main

import (
	"fmt"
	"os"
	"strconv"

	"transferops/cmd"
	httpadapter "transferops/internal/adapters/in/http"
	"transferops/internal/adapters/out/postgres/analyticsrepo"
	"transferops/internal/adapters/out/postgres/entityrepo"
	"transferops/internal/adapters/out/postgres/eventrepo"
	"transferops/internal/adapters/out/postgres/stockrepo"
	"transferops/internal/adapters/out/postgres/transferrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	if configs.RecomputeAnalyticsOnStart {
		jobManager.RecomputeAnalyticsNow()
	}

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                  goDotEnvVariable("HTTP_PORT"),
		DBHost:                    goDotEnvVariable("DB_HOST"),
		DBPort:                    goDotEnvVariable("DB_PORT"),
		DBUser:                    goDotEnvVariable("DB_USER"),
		DBPassword:                goDotEnvVariable("DB_PASSWORD"),
		DBName:                    goDotEnvVariable("DB_NAME"),
		DBSslMode:                 goDotEnvVariable("DB_SSLMODE"),
		AnalyticsWindowDays:       goDotEnvIntVariable("ANALYTICS_WINDOW_DAYS", 30),
		AnalyticsRecomputeCron:    goDotEnvVariableDefault("ANALYTICS_RECOMPUTE_CRON", "0 0 * * * *"),
		RecomputeAnalyticsOnStart: goDotEnvVariable("ANALYTICS_RECOMPUTE_ON_START") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvVariableDefault(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func goDotEnvIntVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %v", key, err)
	}
	return value
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&entityrepo.EntityDTO{},
		&transferrepo.TransferDTO{},
		&eventrepo.EventDTO{},
		&stockrepo.StockLevelDTO{},
		&analyticsrepo.RoutePerformanceDTO{},
		&analyticsrepo.DemandPatternDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		app.CreateProcessActionCommandHandler(),
		app.CreateRecomputeAnalyticsCommandHandler(),
		app.CreateGetRoutePerformanceQueryHandler(),
		app.CreateGetDemandPatternsQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
