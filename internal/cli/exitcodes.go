package cli

import (
	"errors"

	"github.com/taskdb/taskdb/internal/errs"
)

// Exit codes returned by taskdb.
const (
	// ExitOK indicates success.
	ExitOK = 0

	// ExitError is any failure without a more specific code.
	ExitError = 1

	// ExitUsage indicates bad flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a row or document does not exist.
	ExitNotFound = 3

	// ExitConflict indicates a uniqueness violation.
	ExitConflict = 4

	// ExitValidation indicates input the store or validator rejected.
	ExitValidation = 5

	// ExitUnavailable indicates a store could not be reached or is not
	// set up (missing database, missing schema, unhealthy ping).
	ExitUnavailable = 6
)

// ExitCode picks the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsage
	}

	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return ExitNotFound
	case errs.KindConflict:
		return ExitConflict
	case errs.KindInvalidInput:
		return ExitValidation
	case errs.KindUnavailable:
		return ExitUnavailable
	default:
		return ExitError
	}
}
