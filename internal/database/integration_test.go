//go:build integration

package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdb/taskdb/internal/database"
	"github.com/taskdb/taskdb/internal/testdb"
)

func TestBootstrapIsRepeatable(t *testing.T) {
	ctx := context.Background()
	cfg := testdb.Config(t)

	_, err := database.Bootstrap(ctx, cfg, testdb.Logger())
	require.NoError(t, err)

	res, err := database.Bootstrap(ctx, cfg, testdb.Logger())
	require.NoError(t, err)
	assert.False(t, res.DatabaseCreated)
	assert.Equal(t, cfg.Database.Name, res.Database)

	db, err := database.New(ctx, cfg, testdb.Logger())
	require.NoError(t, err)
	defer db.Close()

	var tables int
	err = db.Pool.QueryRow(ctx, `SELECT count(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('users', 'status', 'tasks')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
}

func TestMigrateAfterBootstrap(t *testing.T) {
	ctx := context.Background()
	cfg := testdb.Config(t)
	testdb.Bootstrap(t, cfg)

	res, err := database.Migrate(ctx, testdb.Logger(), cfg, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), res.To)

	db, err := database.New(ctx, cfg, testdb.Logger())
	require.NoError(t, err)
	defer db.Close()

	var statuses int
	require.NoError(t, db.Pool.QueryRow(ctx, `SELECT count(*) FROM status`).Scan(&statuses))
	assert.Equal(t, 3, statuses)
}
