package repository

import (
	"github.com/taskdb/taskdb/internal/database"
)

// Repositories is a container for the PostgreSQL repositories.
//
// The cats repository is built separately (NewCatRepository) because it
// needs a MongoDB collection, which only the cats commands open.
type Repositories struct {
	Query *QueryRepository
	Seed  *SeedRepository
}

// NewRepositories constructs the repository container on top of the pool.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Query: NewQueryRepository(db.Pool),
		Seed:  NewSeedRepository(db.Pool),
	}
}
