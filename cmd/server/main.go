// Package main implements the entry point for the wtwr-api server, the
// REST backend of the wardrobe catalog application.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wtwr-app/wtwr-api/internal/api"
	"github.com/wtwr-app/wtwr-api/internal/config"
	"github.com/wtwr-app/wtwr-api/internal/platform/logger"
	"github.com/wtwr-app/wtwr-api/internal/platform/metrics"
	"github.com/wtwr-app/wtwr-api/internal/platform/postgres"
	"github.com/wtwr-app/wtwr-api/internal/service/auth"
)

// application bundles the wired dependencies of the running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	userHandler  *api.UserHandler
	itemHandler  *api.ItemHandler
	tokenService auth.TokenService
	metrics      *metrics.Collector
	registry     *prometheus.Registry
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and wires all application
// components: logging, database, migrations, stores, services, handlers.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := postgres.NewPostgresUserStore(db)
	itemStore := postgres.NewPostgresItemStore(db)

	registry := prometheus.NewRegistry()

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		userHandler:  api.NewUserHandler(userStore, tokenService, passwordHasher, appLogger),
		itemHandler:  api.NewItemHandler(itemStore, appLogger),
		tokenService: tokenService,
		metrics:      metrics.NewCollector(registry),
		registry:     registry,
	}, nil
}

// setupDatabase establishes the database connection and configures the
// connection pool.
func setupDatabase(cfg *config.Config, appLogger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLogger.Info("Database connection established")
	return db, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
