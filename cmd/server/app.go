package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/platform/rediscache"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// application holds the wired dependencies of the server process.
// Everything is explicitly constructed and injected here; there are no
// package-level singletons, so tests can assemble the same graph with
// doubles.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	redisCloser func() error

	userStore      store.UserStore
	taskService    *service.TaskService
	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
}

// newApplication wires the full dependency graph from configuration:
// database, migrations, optional cache, stores, and services.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// The cache is optional: with no URL configured the service runs on
	// a no-op cache and every listing read goes to the database.
	var listingCache service.ListingCache = service.NewNoopListingCache()
	var redisCloser func() error
	if cfg.Cache.URL != "" {
		client, err := rediscache.NewClient(cfg.Cache.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to cache: %w", err)
		}
		ttl := time.Duration(cfg.Cache.ListingTTLMinutes) * time.Minute
		listingCache = rediscache.NewListingCache(client, ttl, logger)
		redisCloser = client.Close
		logger.Info("Listing cache enabled", "ttl", ttl)
	} else {
		logger.Info("No cache configured, listing reads always hit the store")
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	taskService, err := service.NewTaskService(taskStore, listingCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redisCloser:    redisCloser,
		userStore:      userStore,
		taskService:    taskService,
		jwtService:     jwtService,
		passwordHasher: passwordHasher,
	}, nil
}

// cleanup releases process-wide resources on shutdown.
func (app *application) cleanup() {
	if app.redisCloser != nil {
		if err := app.redisCloser(); err != nil {
			app.logger.Warn("Failed to close cache connection", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("Failed to close database connection", "error", err)
		}
	}
}
