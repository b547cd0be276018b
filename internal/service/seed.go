package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/seed"
)

// SeedStore persists one seeding run atomically.
type SeedStore interface {
	Seed(ctx context.Context, statuses []string, users []model.User, makeTasks repository.TaskFactory) (*repository.SeedCounts, error)
}

type SeedService struct {
	store SeedStore
	gen   *seed.Generator
	cfg   config.SeedConfig
	log   *zerolog.Logger
}

func NewSeedService(store SeedStore, gen *seed.Generator, cfg config.SeedConfig, logger *zerolog.Logger) *SeedService {
	return &SeedService{store: store, gen: gen, cfg: cfg, log: logger}
}

// Run inserts the fixed statuses, the given number of fake users (the
// configured amount when users <= 0) and a random number of tasks for
// every user in the table, including users from earlier runs.
func (s *SeedService) Run(ctx context.Context, users int) (*repository.SeedCounts, error) {
	if users <= 0 {
		users = s.cfg.Users
	}

	counts, err := s.store.Seed(ctx, s.cfg.Statuses, s.gen.Users(users), s.gen.Tasks)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("statuses", counts.Statuses).
		Int64("users", counts.Users).
		Int64("tasks", counts.Tasks).
		Msg("database seeded")
	return counts, nil
}
