package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChecker(timeout time.Duration) *Checker {
	log := zerolog.Nop()
	return NewChecker(timeout, "test", &log)
}

func TestRunAllHealthy(t *testing.T) {
	c := newChecker(time.Second)
	c.Add("postgres", func(context.Context) error { return nil })
	c.Add("mongo", func(context.Context) error { return nil })

	report := c.Run(context.Background())

	assert.True(t, report.Healthy())
	assert.Equal(t, "test", report.Environment)
	require.Len(t, report.Checks, 2)
	assert.Equal(t, "postgres", report.Checks[0].Name)
	assert.Equal(t, "mongo", report.Checks[1].Name)
}

func TestRunFailureDoesNotStopOtherChecks(t *testing.T) {
	c := newChecker(time.Second)
	mongoRan := false
	c.Add("postgres", func(context.Context) error { return errors.New("connection refused") })
	c.Add("mongo", func(context.Context) error {
		mongoRan = true
		return nil
	})

	report := c.Run(context.Background())

	assert.False(t, report.Healthy())
	assert.True(t, mongoRan)
	assert.Equal(t, StatusUnhealthy, report.Checks[0].Status)
	assert.Equal(t, "connection refused", report.Checks[0].Error)
	assert.Equal(t, StatusHealthy, report.Checks[1].Status)
}

func TestRunAppliesTimeout(t *testing.T) {
	c := newChecker(10 * time.Millisecond)
	c.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	report := c.Run(context.Background())

	require.Len(t, report.Checks, 1)
	assert.Equal(t, StatusUnhealthy, report.Checks[0].Status)
	assert.Contains(t, report.Checks[0].Error, "deadline exceeded")
}

func TestResponseTimeUsesClock(t *testing.T) {
	c := newChecker(time.Second)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := 0
	c.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * 100 * time.Millisecond)
	}
	c.Add("postgres", func(context.Context) error { return nil })

	report := c.Run(context.Background())

	assert.Equal(t, 100*time.Millisecond, report.Checks[0].ResponseTime)
}
