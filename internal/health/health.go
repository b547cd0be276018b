// Package health checks that the stores taskdb talks to are reachable.
//
// Each check runs with its own timeout and records how long the store
// took to answer. A failing check never aborts the others.
package health

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// PingFunc reports whether one store answers.
type PingFunc func(ctx context.Context) error

// Check is the outcome of one PingFunc.
type Check struct {
	Name         string        `json:"name"`
	Status       Status        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
}

// Report is the outcome of all checks.
type Report struct {
	Status      Status    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Checks      []Check   `json:"checks"`
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type target struct {
	name string
	ping PingFunc
}

type Checker struct {
	timeout time.Duration
	env     string
	log     *zerolog.Logger
	targets []target
	now     func() time.Time
}

func NewChecker(timeout time.Duration, env string, logger *zerolog.Logger) *Checker {
	return &Checker{
		timeout: timeout,
		env:     env,
		log:     logger,
		now:     time.Now,
	}
}

// Add registers a check; checks run in the order they were added.
func (c *Checker) Add(name string, ping PingFunc) {
	c.targets = append(c.targets, target{name: name, ping: ping})
}

// Run executes every registered check.
func (c *Checker) Run(ctx context.Context) Report {
	start := c.now()
	logger := c.log.With().Str("operation", "health_check").Logger()

	report := Report{
		Status:      StatusHealthy,
		Timestamp:   start.UTC(),
		Environment: c.env,
		Checks:      make([]Check, 0, len(c.targets)),
	}

	for _, t := range c.targets {
		check := c.run(ctx, t)
		if check.Status == StatusUnhealthy {
			report.Status = StatusUnhealthy
			logger.Error().
				Str("check", t.name).
				Str("error", check.Error).
				Dur("response_time", check.ResponseTime).
				Msg("health check failed")
		} else {
			logger.Info().
				Str("check", t.name).
				Dur("response_time", check.ResponseTime).
				Msg("health check passed")
		}
		report.Checks = append(report.Checks, check)
	}

	logger.Debug().
		Dur("total_duration", c.now().Sub(start)).
		Str("status", string(report.Status)).
		Msg("health checks finished")
	return report
}

func (c *Checker) run(ctx context.Context, t target) Check {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := c.now()
	err := t.ping(ctx)
	check := Check{
		Name:         t.name,
		Status:       StatusHealthy,
		ResponseTime: c.now().Sub(started),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Error = err.Error()
	}
	return check
}
