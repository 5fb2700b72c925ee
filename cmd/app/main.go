package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"provenance/cmd"
	httpin "provenance/internal/adapters/in/http"
	"provenance/internal/adapters/out/postgres/blockrepo"
	"provenance/internal/adapters/out/postgres/historyrepo"
	"provenance/internal/adapters/out/postgres/identityrepo"
	"provenance/internal/adapters/out/postgres/orderrepo"
	"provenance/internal/adapters/out/postgres/productrepo"
	"provenance/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	ctx := context.Background()
	if err := app.SeedParticipants(ctx); err != nil {
		log.Fatalf("Failed to seed participants: %v", err)
	}
	if err := app.InitializeAuditLedger(ctx); err != nil {
		log.Fatalf("Failed to initialize audit ledger: %v", err)
	}

	jobManager := jobs.NewJobManager(app.AuditLedger(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&historyrepo.HistoryDTO{},
		&blockrepo.BlockDTO{},
		&identityrepo.UserDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateProductCommandHandler(),
		app.CreateTransitionCustodyCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateDeleteProductCommandHandler(),
		app.CreateDeleteUserCommandHandler(),
		app.CreateGetChainQueryHandler(),
		app.CreateGetProductQueryHandler(),
		app.CreateGetProductTimelineQueryHandler(),
		app.CreateListProductsQueryHandler(),
		app.CreateListOrderableProductsQueryHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListUsersByRoleQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
