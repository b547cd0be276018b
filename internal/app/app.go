// Package app defines the App struct that composes the tool's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - PostgreSQL pool (opened on first use)
//   - MongoDB client (opened on first use)
//
// Commands only pay for the stores they touch: `taskdb cats` never dials
// PostgreSQL and `taskdb query` never needs MONGODB_URI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/database"
	"github.com/taskdb/taskdb/internal/docstore"
)

// App is the container that holds shared resources for one command.
type App struct {
	// Config holds all environment/config values.
	Config *config.Config

	// Logger is the main structured logger (stderr).
	Logger *zerolog.Logger

	db    *database.Database
	mongo *docstore.Store
}

func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger,
	}
}

// DB returns the PostgreSQL pool, connecting on the first call.
func (a *App) DB(ctx context.Context) (*database.Database, error) {
	if a.db != nil {
		return a.db, nil
	}

	db, err := database.New(ctx, a.Config, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.db = db
	return db, nil
}

// Mongo returns the MongoDB store, connecting on the first call.
// It fails early when MONGODB_URI is not configured.
func (a *App) Mongo(ctx context.Context) (*docstore.Store, error) {
	if a.mongo != nil {
		return a.mongo, nil
	}

	if err := a.Config.RequireMongo(); err != nil {
		return nil, err
	}

	store, err := docstore.New(ctx, a.Config.Mongo, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mongodb: %w", err)
	}
	a.mongo = store
	return store, nil
}

// Close releases whatever was opened.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.mongo != nil {
		if err := a.mongo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close mongodb client: %w", err))
		}
		a.mongo = nil
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
		a.db = nil
	}

	return errors.Join(errs...)
}
