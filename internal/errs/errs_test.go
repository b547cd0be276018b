package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{
			name:     "not found matches sentinel",
			err:      NewNotFoundError("cat not found", true, nil),
			target:   ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped conflict matches sentinel",
			err:      fmt.Errorf("create: %w", NewConflictError("exists", true, nil, nil)),
			target:   ErrConflict,
			expected: true,
		},
		{
			name:     "kind mismatch",
			err:      NewNotFoundError("missing", true, nil),
			target:   ErrConflict,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			target:   ErrNotFound,
			expected: false,
		},
		{
			name:     "kindless target matches any app error",
			err:      NewInternalError(errors.New("boom")),
			target:   &AppError{},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.err, tt.target))
		})
	}
}

func TestCodes(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)
	assert.Equal(t, "CONFLICT", NewConflictError("x", false, nil, nil).Code)
	assert.Equal(t, "INVALID_INPUT", NewInvalidInputError("x", false, nil, nil, nil).Code)
	assert.Equal(t, "INTERNAL", NewInternalError(nil).Code)

	code := "CAT_NOT_FOUND"
	assert.Equal(t, code, NewNotFoundError("x", false, &code).Code)
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrap: %w", NewNotFoundError("x", true, nil))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestWithMessage(t *testing.T) {
	base := NewConflictError("old", true, nil, nil)
	changed := base.WithMessage("new")

	assert.Equal(t, "old", base.Message)
	assert.Equal(t, "new", changed.Message)
	assert.Equal(t, base.Kind, changed.Kind)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
}
