package config

import (
	"fmt"
	"time"
)

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects "console" (human readable) or "json".
	Format string `koanf:"format" validate:"required,oneof=console json"`

	// SlowQueryThreshold marks statements that should be logged as slow.
	// Zero disables the slow query tracer. Values are duration strings
	// such as "100ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// DefaultLoggingConfig keeps interactive menus quiet: only warnings and
// errors reach stderr unless the level is raised.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:              "warn",
		Format:             "console",
		SlowQueryThreshold: 500 * time.Millisecond,
	}
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate applies the rules struct tags cannot express.
func (c LoggingConfig) Validate() error {
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	if c.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}
