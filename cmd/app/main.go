package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"bakehouse/cmd"
	apphttp "bakehouse/internal/adapters/in/http"
	"bakehouse/internal/adapters/out/postgres/billcounterrepo"
	"bakehouse/internal/adapters/out/postgres/branchdir"
	"bakehouse/internal/adapters/out/postgres/inventoryrepo"
	"bakehouse/internal/adapters/out/postgres/orderrepo"
	"bakehouse/internal/adapters/out/postgres/tablerepo"
	"bakehouse/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultSweepSchedule  = "0 */15 * * * *"
	defaultOrderStaleness = 3 * time.Hour
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateEscalateOverdueOrdersCommandHandler(),
		configs.SweepSchedule,
		configs.OrderStaleness,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		SweepSchedule:  goDotEnvVariable("SWEEP_SCHEDULE"),
		OrderStaleness: defaultOrderStaleness,
		UnitOfWorkMode: goDotEnvVariable("UOW_MODE"),
	}

	if config.SweepSchedule == "" {
		config.SweepSchedule = defaultSweepSchedule
	}
	if raw := goDotEnvVariable("ORDER_STALENESS"); raw != "" {
		staleness, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid ORDER_STALENESS value %q: %v", raw, err)
		}
		config.OrderStaleness = staleness
	}
	if config.UnitOfWorkMode == "" {
		config.UnitOfWorkMode = cmd.UnitOfWorkModeTransactional
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&inventoryrepo.RecordDTO{},
		&inventoryrepo.MovementDTO{},
		&billcounterrepo.CounterDTO{},
		&tablerepo.TableDTO{},
		&branchdir.BranchDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	server := apphttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateAdjustStockCommandHandler(),
		app.CreateTransferStockCommandHandler(),
		app.CreateSetStockThresholdCommandHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateGetStockQueryHandler(),
		app.CreateGetTablesQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
