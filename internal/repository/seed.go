package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/sqlerr"
)

// SeedCounts reports how many rows a seeding run inserted. Conflicting
// statuses and users are skipped and not counted.
type SeedCounts struct {
	Statuses int64 `json:"statuses"`
	Users    int64 `json:"users"`
	Tasks    int64 `json:"tasks"`
}

// TaskFactory builds the tasks to insert once user and status ids are known.
type TaskFactory func(userIDs []int, statusIDs map[string]int) ([]model.Task, error)

type SeedRepository struct {
	db TxStarter
}

func NewSeedRepository(db TxStarter) *SeedRepository {
	return &SeedRepository{db: db}
}

// Seed inserts statuses, users and the tasks produced by makeTasks in a
// single transaction.
func (r *SeedRepository) Seed(ctx context.Context, statuses []string, users []model.User, makeTasks TaskFactory) (*SeedCounts, error) {
	counts := &SeedCounts{}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		if counts.Statuses, err = InsertStatuses(ctx, tx, statuses); err != nil {
			return err
		}
		if counts.Users, err = InsertUsers(ctx, tx, users); err != nil {
			return err
		}

		userIDs, err := UserIDs(ctx, tx)
		if err != nil {
			return err
		}
		statusIDs, err := StatusIDs(ctx, tx)
		if err != nil {
			return err
		}

		tasks, err := makeTasks(userIDs, statusIDs)
		if err != nil {
			return err
		}
		counts.Tasks, err = InsertTasks(ctx, tx, tasks)
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return counts, nil
}

// InsertStatuses adds the named statuses, skipping names already present.
func InsertStatuses(ctx context.Context, db DBTX, names []string) (int64, error) {
	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue(`INSERT INTO status (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	}
	return execBatch(ctx, db, batch)
}

// InsertUsers adds users, skipping emails already present.
func InsertUsers(ctx context.Context, db DBTX, users []model.User) (int64, error) {
	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(`INSERT INTO users (fullname, email) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`, u.FullName, u.Email)
	}
	return execBatch(ctx, db, batch)
}

func execBatch(ctx context.Context, db DBTX, batch *pgx.Batch) (int64, error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	br := db.SendBatch(ctx, batch)
	var inserted int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("batch statement %d: %w", i, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, br.Close()
}

// UserIDs returns every user id in ascending order.
func UserIDs(ctx context.Context, db DBTX) ([]int, error) {
	rows, err := db.Query(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// StatusIDs maps status name to id.
func StatusIDs(ctx context.Context, db DBTX) (map[string]int, error) {
	rows, err := db.Query(ctx, `SELECT id, name FROM status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]int)
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// InsertTasks bulk loads tasks with COPY.
func InsertTasks(ctx context.Context, db DBTX, tasks []model.Task) (int64, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	return db.CopyFrom(
		ctx,
		pgx.Identifier{"tasks"},
		[]string{"title", "description", "status_id", "user_id"},
		pgx.CopyFromSlice(len(tasks), func(i int) ([]any, error) {
			t := tasks[i]
			return []any{t.Title, t.Description, t.StatusID, t.UserID}, nil
		}),
	)
}
