package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/catalog"
	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/repository"
)

// StatementRunner executes one catalog statement.
type StatementRunner interface {
	Run(ctx context.Context, stmt catalog.Statement) (*repository.Result, error)
}

type QueryService struct {
	runner StatementRunner
	log    *zerolog.Logger
}

func NewQueryService(runner StatementRunner, logger *zerolog.Logger) *QueryService {
	return &QueryService{runner: runner, log: logger}
}

// Actions lists the menu entries in display order.
func (s *QueryService) Actions() []catalog.Action {
	return catalog.Actions()
}

// Build collects the action's arguments from in. Errors from in (a
// malformed number, end of input) are returned as-is so the caller can
// tell them apart from store errors.
func (s *QueryService) Build(action catalog.Action, in catalog.Input) (catalog.Statement, error) {
	return action.Build(in)
}

// Run executes a statement built by Build.
func (s *QueryService) Run(ctx context.Context, stmt catalog.Statement) (*repository.Result, error) {
	s.log.Debug().
		Str("statement", stmt.Name).
		Str("kind", stmt.Kind.String()).
		Interface("args", stmt.Args).
		Msg("running statement")

	result, err := s.runner.Run(ctx, stmt)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("statement", stmt.Name).
		Int("rows", len(result.Rows)).
		Int64("rows_affected", result.RowsAffected).
		Msg("statement finished")
	return result, nil
}

// Execute is Build followed by Run.
func (s *QueryService) Execute(ctx context.Context, action catalog.Action, in catalog.Input) (*repository.Result, error) {
	stmt, err := s.Build(action, in)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, stmt)
}

// ExecuteKey looks the action up by its menu key first.
func (s *QueryService) ExecuteKey(ctx context.Context, key string, in catalog.Input) (*repository.Result, error) {
	action, ok := catalog.Lookup(key)
	if !ok {
		code := "UNKNOWN_QUERY"
		return nil, errs.NewInvalidInputError(fmt.Sprintf("Unknown query %q", key), true, &code, nil, nil)
	}
	return s.Execute(ctx, action, in)
}
