package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/sqlerr"
)

// SchemaSQL drops and recreates users, status and tasks plus their
// secondary indexes.
//
//go:embed schema/schema.sql
var SchemaSQL string

// BootstrapResult reports what Bootstrap did.
type BootstrapResult struct {
	Database        string
	DatabaseCreated bool
}

// Bootstrap ensures the target database exists and (re)applies the schema.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*BootstrapResult, error) {
	created, err := CreateDatabaseIfAbsent(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := ApplySchema(ctx, cfg, logger); err != nil {
		return nil, err
	}

	return &BootstrapResult{
		Database:        cfg.Database.Name,
		DatabaseCreated: created,
	}, nil
}

// CreateDatabaseIfAbsent connects to the maintenance database and creates
// cfg.Database.Name when pg_database has no row for it.
//
// CREATE DATABASE cannot run inside a transaction block; a plain pgx
// connection is in autocommit mode, which is what this needs.
func CreateDatabaseIfAbsent(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (bool, error) {
	conn, err := connect(ctx, cfg, logger, cfg.Database.MaintenanceName)
	if err != nil {
		return false, err
	}
	defer conn.Close(ctx)

	var one int
	err = conn.QueryRow(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", cfg.Database.Name).Scan(&one)
	switch {
	case err == nil:
		logger.Info().Str("database", cfg.Database.Name).Msg("database already exists")
		return false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return false, sqlerr.HandleError(fmt.Errorf("checking pg_database: %w", err))
	}

	stmt := fmt.Sprintf("CREATE DATABASE %s ENCODING 'UTF8'", pgx.Identifier{cfg.Database.Name}.Sanitize())
	if _, err := conn.Exec(ctx, stmt); err != nil {
		return false, sqlerr.HandleError(fmt.Errorf("creating database %s: %w", cfg.Database.Name, err))
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("database created")
	return true, nil
}

// ApplySchema runs SchemaSQL against the target database in one
// transaction; a failure leaves the previous schema untouched.
func ApplySchema(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
	conn, err := connect(ctx, cfg, logger, cfg.Database.Name)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, SchemaSQL)
		return err
	})
	if err != nil {
		return sqlerr.HandleError(fmt.Errorf("applying schema: %w", err))
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("schema applied")
	return nil
}
