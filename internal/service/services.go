package service

import (
	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/seed"
)

// Services groups the PostgreSQL backed services. The cat service is
// built on its own with NewCatService once MongoDB is connected.
type Services struct {
	Query *QueryService
	Seed  *SeedService
}

func NewServices(cfg *config.Config, logger *zerolog.Logger, repos *repository.Repositories) *Services {
	gen := seed.NewGenerator(0, cfg.Seed.Statuses, cfg.Seed.TasksMin, cfg.Seed.TasksMax)

	return &Services{
		Query: NewQueryService(repos.Query, logger),
		Seed:  NewSeedService(repos.Seed, gen, cfg.Seed, logger),
	}
}
