package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingArgument is returned by ArgsInput when an action asks for
// more answers than were supplied.
var ErrMissingArgument = errors.New("missing argument")

// ArgsInput answers prompts from a fixed list, in order. It lets
// `taskdb query run` drive the same builders as the interactive menu.
type ArgsInput struct {
	args []string
	next int
}

// NewArgsInput wraps positional command-line arguments.
func NewArgsInput(args []string) *ArgsInput {
	return &ArgsInput{args: args}
}

func (a *ArgsInput) String(label string) (string, error) {
	if a.next >= len(a.args) {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, label)
	}
	v := strings.TrimSpace(a.args[a.next])
	a.next++
	return v, nil
}

func (a *ArgsInput) Int(label string) (int, error) {
	v, err := a.String(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", label, v, err)
	}
	return n, nil
}

// Remaining reports how many arguments were not consumed.
func (a *ArgsInput) Remaining() int {
	return len(a.args) - a.next
}
