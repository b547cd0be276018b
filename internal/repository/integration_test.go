//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdb/taskdb/internal/catalog"
	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/seed"
	"github.com/taskdb/taskdb/internal/testdb"
)

var statuses = []string{"new", "in progress", "completed"}

func TestSeedThenUsersWithoutTasks(t *testing.T) {
	ctx := context.Background()
	cfg := testdb.Config(t)
	db := testdb.Bootstrap(t, cfg)
	repos := repository.NewRepositories(db)

	gen := seed.NewGenerator(7, statuses, 2, 6)
	users := gen.Users(5)

	noTasks := func([]int, map[string]int) ([]model.Task, error) { return nil, nil }
	counts, err := repos.Seed.Seed(ctx, statuses, users, noTasks)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Statuses)
	assert.Equal(t, int64(5), counts.Users)

	res, err := repos.Query.Run(ctx, catalog.UsersWithoutTasks())
	require.NoError(t, err)
	assert.Len(t, res.Rows, 5)
	assert.Equal(t, []string{"id", "fullname", "email"}, res.Columns)

	counts, err = repos.Seed.Seed(ctx, statuses, users, gen.Tasks)
	require.NoError(t, err)
	assert.Zero(t, counts.Statuses, "statuses are conflict-skipped")
	assert.Zero(t, counts.Users, "same emails are conflict-skipped")
	assert.GreaterOrEqual(t, counts.Tasks, int64(10))

	res, err = repos.Query.Run(ctx, catalog.UsersWithoutTasks())
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestInsertTaskAndUnknownStatus(t *testing.T) {
	ctx := context.Background()
	db := testdb.Bootstrap(t, testdb.Config(t))
	repos := repository.NewRepositories(db)

	_, err := repos.Seed.Seed(ctx, statuses, []model.User{{FullName: "Ann Lee", Email: "ann@example.com"}},
		func([]int, map[string]int) ([]model.Task, error) { return nil, nil })
	require.NoError(t, err)

	res, err := repos.Query.Run(ctx, catalog.InsertTaskForUser(1, "Write report", nil, ""))
	require.NoError(t, err)
	require.NotNil(t, res.ReturnedID)

	res, err = repos.Query.Run(ctx, catalog.TasksWithoutDescription())
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1)

	_, err = repos.Query.Run(ctx, catalog.UpdateTaskStatus(int(res.Rows[0][0].(int32)), "bogus"))
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, "The referenced Status does not exist", err.Error())
}

func TestDeleteUserCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	db := testdb.Bootstrap(t, testdb.Config(t))
	repos := repository.NewRepositories(db)

	gen := seed.NewGenerator(11, statuses, 2, 2)
	_, err := repos.Seed.Seed(ctx, statuses, gen.Users(2), gen.Tasks)
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `DELETE FROM users WHERE id = 1`)
	require.NoError(t, err)

	res, err := repos.Query.Run(ctx, catalog.TasksByUser(1))
	require.NoError(t, err)
	assert.Empty(t, res.Rows)

	res, err = repos.Query.Run(ctx, catalog.TasksByUser(2))
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestStatusInsertSkipsConflicts(t *testing.T) {
	ctx := context.Background()
	db := testdb.Bootstrap(t, testdb.Config(t))

	n, err := repository.InsertStatuses(ctx, db.Pool, statuses)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repository.InsertStatuses(ctx, db.Pool, []string{"new", "blocked"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ids, err := repository.StatusIDs(ctx, db.Pool)
	require.NoError(t, err)
	assert.Len(t, ids, 4)
}

func TestCatsAddFeatureTwice(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCatRepository(testdb.MongoCollection(t))

	_, err := repo.Insert(ctx, model.Cat{Name: "barsik", Age: 3, Features: []string{"ginger"}})
	require.NoError(t, err)

	counts, err := repo.AddFeature(ctx, "barsik", "sleepy")
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateCounts{Matched: 1, Modified: 1}, counts)

	counts, err = repo.AddFeature(ctx, "barsik", "sleepy")
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateCounts{Matched: 1, Modified: 0}, counts)

	cat, err := repo.FindByName(ctx, "barsik")
	require.NoError(t, err)
	assert.Equal(t, []string{"ginger", "sleepy"}, cat.Features)

	_, err = repo.Insert(ctx, model.Cat{Name: "barsik"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	counts, err = repo.SetAge(ctx, "ghost", 4)
	require.NoError(t, err)
	assert.Zero(t, counts.Matched)
}
