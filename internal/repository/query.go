package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taskdb/taskdb/internal/catalog"
	"github.com/taskdb/taskdb/internal/sqlerr"
)

// Result is what running one catalog statement produced.
//
// Reads fill Columns and Rows. Writes fill RowsAffected, and
// WriteReturning statements also set ReturnedID.
type Result struct {
	Statement    string   `json:"statement"`
	Kind         string   `json:"kind"`
	Columns      []string `json:"columns,omitempty"`
	Rows         [][]any  `json:"rows,omitempty"`
	RowsAffected int64    `json:"rows_affected"`
	ReturnedID   *int64   `json:"returned_id,omitempty"`
}

type QueryRepository struct {
	db TxStarter
}

func NewQueryRepository(db TxStarter) *QueryRepository {
	return &QueryRepository{db: db}
}

// Run executes stmt. Writes are committed in their own transaction and
// rolled back when they fail.
func (r *QueryRepository) Run(ctx context.Context, stmt catalog.Statement) (*Result, error) {
	result := &Result{Statement: stmt.Name, Kind: stmt.Kind.String()}

	if !stmt.IsWrite() {
		if err := r.read(ctx, stmt, result); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		return result, nil
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if stmt.Kind == catalog.WriteReturning {
			var id int64
			if err := tx.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&id); err != nil {
				return err
			}
			result.ReturnedID = &id
			result.RowsAffected = 1
			return nil
		}

		tag, err := tx.Exec(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return err
		}
		result.RowsAffected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return result, nil
}

func (r *QueryRepository) read(ctx context.Context, stmt catalog.Statement, result *Result) error {
	rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		result.Rows = append(result.Rows, values)
	}
	return rows.Err()
}
