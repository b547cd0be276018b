package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdb/taskdb/internal/errs"
)

type petInput struct {
	Name     string   `validate:"required,max=10"`
	Age      int      `validate:"gte=0,lte=40"`
	Features []string `validate:"dive,required"`
}

func (p petInput) Validate() error { return Struct(p) }

type customInput struct{}

func (customInput) Validate() error {
	return CustomValidationErrors{{Field: "name", Message: "is reserved"}}
}

type opaqueInput struct{}

func (opaqueInput) Validate() error { return errors.New("nope") }

func TestCheckValid(t *testing.T) {
	assert.NoError(t, Check(petInput{Name: "barsik", Age: 3, Features: []string{"ginger"}}))
}

func TestCheckFieldErrors(t *testing.T) {
	err := Check(petInput{Name: "", Age: -1})
	require.Error(t, err)

	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errs.KindInvalidInput, appErr.Kind)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "age", Error: "must be at least 0"},
	}, appErr.Errors)
	assert.Equal(t, "name is required; age must be at least 0", Describe(appErr.Errors))
}

func TestCheckStringLimits(t *testing.T) {
	err := Check(petInput{Name: "abcdefghijklmnop", Age: 1})
	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "must not exceed 10 characters", appErr.Errors[0].Error)
}

func TestCheckCustomErrors(t *testing.T) {
	err := Check(customInput{})
	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "is reserved", appErr.Errors[0].Error)
}

func TestCheckOpaqueError(t *testing.T) {
	err := Check(opaqueInput{})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, "Validation failed: nope", err.Error())
}
