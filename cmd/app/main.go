package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"tracking/cmd"
	"tracking/internal/adapters/out/postgres/locationrepo"
	"tracking/internal/adapters/out/postgres/trackingrepo"

	"github.com/labstack/echo/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startOrderEventConsumer(&app, logger)
	startWebServer(&app, configs.HTTPPort)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(
		&trackingrepo.TrackingDTO{},
		&locationrepo.LocationSampleDTO{},
	); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startOrderEventConsumer(app *cmd.CompositionRoot, logger *slog.Logger) {
	consumer := app.CreateOrderEventConsumer()
	if consumer == nil {
		logger.Info("Kafka host not configured, order event consumer disabled")
		return
	}

	handler := app.CreateOrderEventHandler(logger)

	go func() {
		defer consumer.Close()

		ctx := context.Background()
		if err := consumer.Consume(ctx, handler.Handle(ctx)); err != nil {
			logger.Error("Order event consumer stopped", "error", err)
		}
	}()
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
