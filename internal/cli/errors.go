package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/sqlerr"
	"github.com/taskdb/taskdb/internal/validation"
)

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func newUsageError(format string, a ...any) error {
	return &usageError{err: fmt.Errorf(format, a...)}
}

// isDriverError reports whether err came out of pgx untranslated.
func isDriverError(err error) bool {
	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	return errors.As(err, &pgErr) || errors.As(err, &connErr) || errors.Is(err, pgx.ErrNoRows)
}

// ReportError is the final error funnel for every command.
//
// Driver errors that escaped the repositories are translated with
// sqlerr.HandleError, the user gets one "Error:" line (plus field
// errors) on w, and the original error is logged with its stack.
// Expected outcomes (not found, conflict, invalid input, usage) are
// logged at debug level so they do not repeat on the console.
func ReportError(w io.Writer, logger *zerolog.Logger, err error) {
	if err == nil {
		return
	}
	originalErr := err

	if isDriverError(err) {
		err = sqlerr.HandleError(err)
	}

	code := "ERROR"
	message := err.Error()
	var fieldErrors []errs.FieldError

	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
		fieldErrors = appErr.Errors
	}

	var e *zerolog.Event
	switch ExitCode(err) {
	case ExitNotFound, ExitConflict, ExitValidation, ExitUsage:
		e = logger.Debug()
	default:
		e = logger.Error().Stack()
	}
	e.Err(originalErr).
		Str("error_code", code).
		Msg(message)

	fmt.Fprintf(w, "Error: %s\n", message)
	if len(fieldErrors) > 0 {
		fmt.Fprintf(w, "  %s\n", validation.Describe(fieldErrors))
	}
}

// menuMessage returns the text a menu prints for an expected failure,
// or false when the error should end the menu.
func menuMessage(err error) (string, bool) {
	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		return "", false
	}

	switch appErr.Kind {
	case errs.KindNotFound, errs.KindConflict, errs.KindInvalidInput:
		if len(appErr.Errors) > 0 {
			return appErr.Message + ": " + validation.Describe(appErr.Errors), true
		}
		return appErr.Message, true
	default:
		return "", false
	}
}
