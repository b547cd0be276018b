package errs

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an AppError.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInvalidInput Kind = "invalid_input"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "age", "error": "must be at least 0" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// AppError is the error type every layer hands back to the CLI.
//
// Fields:
//   - Code: machine-friendly code (e.g. "CAT_ALREADY_EXISTS").
//   - Kind: category used for control flow.
//   - Message: human-friendly text the menus print.
//   - Override: the message is safe to show verbatim.
//   - Errors: per-field validation failures.
type AppError struct {
	Code     string       `json:"code"`
	Kind     Kind         `json:"kind"`
	Message  string       `json:"message"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`

	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying driver error, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches any *AppError of the same Kind, so callers can write
// errors.Is(err, errs.ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// WithMessage returns a copy of the error with Message replaced.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:     e.Code,
		Kind:     e.Kind,
		Message:  message,
		Override: e.Override,
		Errors:   e.Errors,
		cause:    e.cause,
	}
}

// Sentinels for errors.Is checks; only Kind is compared.
var (
	ErrNotFound     = &AppError{Kind: KindNotFound}
	ErrConflict     = &AppError{Kind: KindConflict}
	ErrInvalidInput = &AppError{Kind: KindInvalidInput}
	ErrUnavailable  = &AppError{Kind: KindUnavailable}
	ErrInternal     = &AppError{Kind: KindInternal}
)

// KindOf returns the Kind of the first AppError in the chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MakeUpperCaseWithUnderscores converts "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func codeOr(code *string, kind Kind) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(strings.ReplaceAll(string(kind), "_", " "))
}

// NewNotFoundError reports a missing row or document.
func NewNotFoundError(message string, override bool, code *string) *AppError {
	return &AppError{
		Code:     codeOr(code, KindNotFound),
		Kind:     KindNotFound,
		Message:  message,
		Override: override,
	}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(message string, override bool, code *string, cause error) *AppError {
	return &AppError{
		Code:     codeOr(code, KindConflict),
		Kind:     KindConflict,
		Message:  message,
		Override: override,
		cause:    cause,
	}
}

// NewInvalidInputError reports input the store or validator rejected.
func NewInvalidInputError(message string, override bool, code *string, fieldErrors []FieldError, cause error) *AppError {
	return &AppError{
		Code:     codeOr(code, KindInvalidInput),
		Kind:     KindInvalidInput,
		Message:  message,
		Override: override,
		Errors:   fieldErrors,
		cause:    cause,
	}
}

// NewUnavailableError reports a store that could not be reached.
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Code:     codeOr(nil, KindUnavailable),
		Kind:     KindUnavailable,
		Message:  message,
		Override: true,
		cause:    pkgerrors.WithStack(cause),
	}
}

// NewInternalError hides cause behind a generic message and records
// a stack trace for the log.
func NewInternalError(cause error) *AppError {
	return &AppError{
		Code:    codeOr(nil, KindInternal),
		Kind:    KindInternal,
		Message: "An error occurred while processing your request",
		cause:   pkgerrors.WithStack(cause),
	}
}

// ValidationError converts a generic validation error into an invalid
// input AppError.
func ValidationError(err error) *AppError {
	return NewInvalidInputError("Validation failed: "+err.Error(), false, nil, nil, err)
}
