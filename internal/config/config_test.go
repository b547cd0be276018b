package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes variables a developer machine might carry so the
// defaults are observable, restoring them when the test ends.
func unsetEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if old, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		}
	}
}

var overridable = []string{
	"TASKDB_DATABASE_HOST",
	"TASKDB_DATABASE_PORT",
	"TASKDB_DATABASE_SSL_MODE",
	"TASKDB_LOGGING_LEVEL",
	"TASKDB_LOGGING_SLOW_QUERY_THRESHOLD",
	"TASKDB_SEED_USERS",
	"TASKDB_SEED_TASKS_MIN",
	"TASKDB_SEED_TASKS_MAX",
	"TASKDB_SEED_STATUSES",
	"TASKDB_HEALTH_CHECKS",
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, overridable...)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "task_manager", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.MaintenanceName)
	assert.Equal(t, "cats_db", cfg.Mongo.Database)
	assert.Equal(t, "cats", cfg.Mongo.Collection)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ServerSelectionTimeout)
	assert.Equal(t, 20, cfg.Seed.Users)
	assert.Equal(t, 2, cfg.Seed.TasksMin)
	assert.Equal(t, 6, cfg.Seed.TasksMax)
	assert.Equal(t, []string{"new", "in progress", "completed"}, cfg.Seed.Statuses)
}

func TestLoadFromEnv(t *testing.T) {
	unsetEnv(t, overridable...)
	t.Setenv("TASKDB_DATABASE_HOST", "db.internal")
	t.Setenv("TASKDB_DATABASE_PORT", "6543")
	t.Setenv("TASKDB_DATABASE_SSL_MODE", "require")
	t.Setenv("TASKDB_LOGGING_LEVEL", "debug")
	t.Setenv("TASKDB_LOGGING_SLOW_QUERY_THRESHOLD", "250ms")
	t.Setenv("TASKDB_SEED_USERS", "5")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Logging.SlowQueryThreshold)
	assert.Equal(t, 5, cfg.Seed.Users)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.NoError(t, cfg.RequireMongo())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown log level",
			env:  map[string]string{"TASKDB_LOGGING_LEVEL": "verbose"},
		},
		{
			name: "unknown ssl mode",
			env:  map[string]string{"TASKDB_DATABASE_SSL_MODE": "sometimes"},
		},
		{
			name: "tasks max below min",
			env: map[string]string{
				"TASKDB_SEED_TASKS_MIN": "5",
				"TASKDB_SEED_TASKS_MAX": "2",
			},
		},
		{
			name: "port out of range",
			env:  map[string]string{"TASKDB_DATABASE_PORT": "70000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, overridable...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.ssl_mode", envKey("TASKDB_DATABASE_SSL_MODE"))
	assert.Equal(t, "logging.level", envKey("TASKDB_LOGGING_LEVEL"))
	assert.Equal(t, "mongo.server_selection_timeout", envKey("TASKDB_MONGO_SERVER_SELECTION_TIMEOUT"))
	assert.Equal(t, "debug", envKey("TASKDB_DEBUG"))
}

func TestRequireMongo(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.RequireMongo())

	cfg.Mongo.URI = "  "
	assert.Error(t, cfg.RequireMongo())

	cfg.Mongo.URI = "mongodb://localhost"
	assert.NoError(t, cfg.RequireMongo())
}

func TestLoggingValidate(t *testing.T) {
	c := DefaultLoggingConfig()
	assert.NoError(t, c.Validate())

	c.Level = "trace"
	assert.Error(t, c.Validate())

	c = DefaultLoggingConfig()
	c.SlowQueryThreshold = -time.Second
	assert.Error(t, c.Validate())
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.False(t, Default().IsLocal())
}

func TestLoadListsFromEnv(t *testing.T) {
	unsetEnv(t, overridable...)
	t.Setenv("TASKDB_HEALTH_CHECKS", "mongo")
	t.Setenv("TASKDB_SEED_STATUSES", "new, blocked ,,done")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"mongo"}, cfg.Health.Checks)
	assert.Equal(t, []string{"new", "blocked", "done"}, cfg.Seed.Statuses)
}

func TestEnvValue(t *testing.T) {
	key, value := envValue("TASKDB_HEALTH_CHECKS", "postgres,mongo")
	assert.Equal(t, "health.checks", key)
	assert.Equal(t, []string{"postgres", "mongo"}, value)

	key, value = envValue("TASKDB_DATABASE_HOST", "a,b")
	assert.Equal(t, "database.host", key)
	assert.Equal(t, "a,b", value)
}
