package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/seed"
)

// recordingSeedStore runs the task factory with fixed ids, like the
// repository does after reading them back.
type recordingSeedStore struct {
	statuses []string
	users    []model.User
	tasks    []model.Task
	err      error
}

func (r *recordingSeedStore) Seed(_ context.Context, statuses []string, users []model.User, makeTasks repository.TaskFactory) (*repository.SeedCounts, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.statuses = statuses
	r.users = users

	userIDs := make([]int, len(users))
	for i := range users {
		userIDs[i] = i + 1
	}
	tasks, err := makeTasks(userIDs, map[string]int{"new": 1, "in progress": 2, "completed": 3})
	if err != nil {
		return nil, err
	}
	r.tasks = tasks

	return &repository.SeedCounts{
		Statuses: int64(len(statuses)),
		Users:    int64(len(users)),
		Tasks:    int64(len(tasks)),
	}, nil
}

func newSeedService(store SeedStore) *SeedService {
	cfg := config.Default().Seed
	log := zerolog.Nop()
	gen := seed.NewGenerator(42, cfg.Statuses, cfg.TasksMin, cfg.TasksMax)
	return NewSeedService(store, gen, cfg, &log)
}

func TestSeedRunDefaults(t *testing.T) {
	store := &recordingSeedStore{}

	counts, err := newSeedService(store).Run(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"new", "in progress", "completed"}, store.statuses)
	assert.Len(t, store.users, 20)
	assert.Equal(t, int64(20), counts.Users)
	assert.Equal(t, int64(len(store.tasks)), counts.Tasks)

	perUser := map[int]int{}
	for _, task := range store.tasks {
		perUser[task.UserID]++
		assert.Contains(t, []int{1, 2, 3}, task.StatusID)
	}
	for uid := 1; uid <= 20; uid++ {
		assert.GreaterOrEqual(t, perUser[uid], 2, "user %d", uid)
		assert.LessOrEqual(t, perUser[uid], 6, "user %d", uid)
	}
}

func TestSeedRunUserOverride(t *testing.T) {
	store := &recordingSeedStore{}

	counts, err := newSeedService(store).Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Users)
}

func TestSeedRunStoreError(t *testing.T) {
	boom := errors.New("boom")

	_, err := newSeedService(&recordingSeedStore{err: boom}).Run(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
}
