package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/taskdb/taskdb/internal/errs"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitError},
		{newUsageError("bad flag"), ExitUsage},
		{errs.NewNotFoundError("x", true, nil), ExitNotFound},
		{errs.NewConflictError("x", true, nil, nil), ExitConflict},
		{errs.NewInvalidInputError("x", true, nil, nil, nil), ExitValidation},
		{fmt.Errorf("wrapped: %w", errs.NewUnavailableError("x", nil)), ExitUnavailable},
		{errs.NewInternalError(errors.New("x")), ExitError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestReportErrorTranslatesDriverErrors(t *testing.T) {
	var out, logs bytes.Buffer
	log := zerolog.New(&logs)

	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}
	err := fmt.Errorf("insert: %w", pgErr)
	ReportError(&out, &log, err)

	assert.Equal(t, "Error: A User with this Email already exists\n", out.String())
	assert.Contains(t, logs.String(), "USER_ALREADY_EXISTS")
}

func TestReportErrorFieldErrors(t *testing.T) {
	var out bytes.Buffer
	log := zerolog.Nop()

	ReportError(&out, &log, errs.NewInvalidInputError("Validation failed", true, nil, []errs.FieldError{
		{Field: "age", Error: "must be at least 0"},
	}, nil))

	assert.Equal(t, "Error: Validation failed\n  age must be at least 0\n", out.String())
}

func TestReportErrorPlain(t *testing.T) {
	var out, logs bytes.Buffer
	log := zerolog.New(&logs)

	ReportError(&out, &log, errors.New("MONGODB_URI is not set"))

	assert.Equal(t, "Error: MONGODB_URI is not set\n", out.String())
	assert.Contains(t, logs.String(), `"level":"error"`)
}
