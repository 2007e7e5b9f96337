package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/goldvault/goldvault/internal/core/services"
	"github.com/goldvault/goldvault/internal/device"
	deviceserial "github.com/goldvault/goldvault/internal/device/serial"
	"github.com/goldvault/goldvault/internal/handlers"
	"github.com/goldvault/goldvault/internal/middleware"
	"github.com/goldvault/goldvault/internal/platform/config"
	"github.com/goldvault/goldvault/internal/repositories/database/pgsql"
	"github.com/goldvault/goldvault/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos)

	readers := buildDeviceReaders(cfg, logger)
	defer func() {
		if readers.Scale != nil {
			readers.Scale.Disconnect()
		}
		if readers.RFID != nil {
			readers.RFID.Disconnect()
		}
	}()

	handlers.RegisterRoutes(r, cfg, serviceContainer, readers)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildDeviceReaders constructs a reader per configured serial port. A device
// with no configured port is left nil and its endpoints report as such.
func buildDeviceReaders(cfg *config.Config, logger *slog.Logger) handlers.DeviceReaders {
	var readers handlers.DeviceReaders

	if cfg.ScalePort != "" {
		readers.Scale = device.NewReader(
			deviceserial.Transport{PortName: cfg.ScalePort},
			device.Config{
				Mode:        device.ModeScale,
				BaudRate:    cfg.ScaleBaud,
				IdleTimeout: cfg.DeviceIdleTimer,
			},
			logger,
		)
		logger.Info("Scale reader configured", slog.String("port", cfg.ScalePort))
	}

	if cfg.RFIDPort != "" {
		readers.RFID = device.NewReader(
			deviceserial.Transport{PortName: cfg.RFIDPort},
			device.Config{
				Mode:         device.ModeRFID,
				BaudRate:     cfg.RFIDBaud,
				MinTagLength: cfg.MinTagLength,
				IdleTimeout:  cfg.DeviceIdleTimer,
			},
			logger,
		)
		logger.Info("RFID reader configured", slog.String("port", cfg.RFIDPort))
	}

	return readers
}
