package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/config"
)

// Embed all SQL files under migrations/ at compile time.
//
//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable records the applied migration version.
const VersionTable = "schema_version"

// MigrateResult reports the version range Migrate moved through.
type MigrateResult struct {
	From int32 `json:"from"`
	To   int32 `json:"to"`
}

// Migrate applies the embedded migrations with jackc/tern.
//
// Unlike Bootstrap it never drops data: tables are created if missing and
// the fixed statuses are inserted with conflict-skip. targetVersion < 0
// means "latest".
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, targetVersion int32) (*MigrateResult, error) {
	conn, err := connect(ctx, cfg, logger, cfg.Database.Name)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return nil, fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieving current database migration version: %w", err)
	}

	to := int32(len(m.Migrations))
	if targetVersion >= 0 {
		if targetVersion > to {
			return nil, fmt.Errorf("target version %d exceeds latest migration %d", targetVersion, to)
		}
		to = targetVersion
	}

	if err := m.MigrateTo(ctx, to); err != nil {
		return nil, fmt.Errorf("migrating database schema: %w", err)
	}

	if from == to {
		logger.Info().Msgf("database schema up to date, version %d", to)
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	}
	return &MigrateResult{From: from, To: to}, nil
}

// MigrationNames lists the embedded migration files in order.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
