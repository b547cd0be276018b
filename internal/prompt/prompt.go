// Package prompt reads line-oriented answers for the interactive menus.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotANumber is returned by Int when the answer does not parse.
var ErrNotANumber = errors.New("not a number")

// Prompter writes a label and reads one trimmed line per question.
// It returns io.EOF once input is exhausted.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Line returns the raw answer without trimming.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

func (p *Prompter) String(label string) (string, error) {
	line, err := p.Line(label + ": ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) Int(label string) (int, error) {
	v, err := p.String(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrNotANumber, v, err)
	}
	return n, nil
}

// List splits a comma-separated answer, dropping blank items.
func (p *Prompter) List(label string) ([]string, error) {
	v, err := p.String(label)
	if err != nil {
		return nil, err
	}
	return SplitList(v), nil
}

// Confirm returns true only when the answer equals word, ignoring case
// and surrounding spaces.
func (p *Prompter) Confirm(label, word string) (bool, error) {
	line, err := p.Line(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), word), nil
}

// SplitList turns "a, b,,c " into [a b c].
func SplitList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
