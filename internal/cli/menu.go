package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/taskdb/taskdb/internal/catalog"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/output"
	"github.com/taskdb/taskdb/internal/prompt"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/service"
)

const (
	msgInvalidNumber = "Invalid number. Try again."
	msgUnknownOption = "Unknown option. Choose from the list."
	msgCancelled     = "Cancelled."
	msgBye           = "Bye!"
)

type queryExecutor interface {
	Actions() []catalog.Action
	Execute(ctx context.Context, action catalog.Action, in catalog.Input) (*repository.Result, error)
}

type catManager interface {
	EnsureExample(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]model.Cat, error)
	FindByName(ctx context.Context, name string) (*model.Cat, error)
	UpdateAge(ctx context.Context, name string, age int) error
	AddFeature(ctx context.Context, name, feature string) (bool, error)
	DeleteByName(ctx context.Context, name string) error
	DeleteAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, in service.CatInput) (string, error)
}

// handleMenuError prints expected failures and reports whether the
// menu should stop. The returned error is nil for a clean stop (end of
// input) and set when the command must fail.
func handleMenuError(w io.Writer, err error) (stop bool, _ error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF):
		return true, nil
	case errors.Is(err, prompt.ErrNotANumber):
		fmt.Fprintln(w, msgInvalidNumber)
		return false, nil
	}

	if msg, ok := menuMessage(err); ok {
		fmt.Fprintln(w, msg)
		return false, nil
	}
	return true, err
}

func runQueryMenu(ctx context.Context, p *prompt.Prompter, out *output.Printer, svc queryExecutor) error {
	w := out.Writer()
	actions := svc.Actions()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(w, "\n=== Task Manager: SQL queries ===")
		for _, a := range actions {
			fmt.Fprintln(w, a.MenuLine())
		}
		fmt.Fprintln(w, "0) Exit")

		choice, err := p.String("Choose a number")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == "0" {
			fmt.Fprintln(w, msgBye)
			return nil
		}

		action, ok := findAction(actions, choice)
		if !ok {
			fmt.Fprintln(w, msgUnknownOption)
			continue
		}

		res, err := svc.Execute(ctx, action, p)
		if err == nil {
			err = out.Result(res)
		}
		if stop, err := handleMenuError(w, err); stop {
			return err
		}
	}
}

func findAction(actions []catalog.Action, key string) (catalog.Action, bool) {
	for _, a := range actions {
		if a.Key == key {
			return a, true
		}
	}
	return catalog.Action{}, false
}

const catsMenu = `
=== Cats CRUD (MongoDB) ===
1) Show all cats
2) Find a cat by name
3) Update a cat's age by name
4) Add a feature to a cat
5) Delete a cat by name
6) Delete ALL cats
7) Create a new cat
0) Exit`

func runCatsMenu(ctx context.Context, p *prompt.Prompter, out *output.Printer, svc catManager) error {
	w := out.Writer()

	added, err := svc.EnsureExample(ctx)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(w, "Added example cat: %s\n", service.ExampleCat().Name)
	}

	actions := map[string]func() error{
		"1": func() error {
			cats, err := svc.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "--- All cats ---")
			if len(cats) == 0 && !out.JSON() {
				fmt.Fprintln(w, "(no cats)")
				return nil
			}
			return out.Cats(cats)
		},
		"2": func() error {
			name, err := p.String("Cat name")
			if err != nil {
				return err
			}
			cat, err := svc.FindByName(ctx, name)
			if err != nil {
				return err
			}
			return out.Cat(cat)
		},
		"3": func() error {
			name, err := p.String("Cat name")
			if err != nil {
				return err
			}
			age, err := p.Int("New age (integer)")
			if err != nil {
				return err
			}
			if err := svc.UpdateAge(ctx, name, age); err != nil {
				return err
			}
			fmt.Fprintf(w, "Updated age of '%s' to %d.\n", name, age)
			return nil
		},
		"4": func() error {
			name, err := p.String("Cat name")
			if err != nil {
				return err
			}
			feature, err := p.String("New feature")
			if err != nil {
				return err
			}
			added, err := svc.AddFeature(ctx, name, feature)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(w, "Added feature '%s' for '%s'.\n", feature, name)
			} else {
				fmt.Fprintf(w, "Feature already present for '%s'.\n", name)
			}
			return nil
		},
		"5": func() error {
			name, err := p.String("Cat name")
			if err != nil {
				return err
			}
			if err := svc.DeleteByName(ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted '%s'.\n", name)
			return nil
		},
		"6": func() error {
			sure, err := p.Confirm("Delete ALL records? Type 'YES': ", "YES")
			if err != nil {
				return err
			}
			if !sure {
				fmt.Fprintln(w, msgCancelled)
				return nil
			}
			n, err := svc.DeleteAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted %d record(s).\n", n)
			return nil
		},
		"7": func() error {
			name, err := p.String("New cat name")
			if err != nil {
				return err
			}
			age, err := p.Int("Age")
			if err != nil {
				return err
			}
			features, err := p.List("Features (comma-separated)")
			if err != nil {
				return err
			}
			if _, err := svc.Create(ctx, service.CatInput{Name: name, Age: age, Features: features}); err != nil {
				return err
			}
			fmt.Fprintf(w, "Added cat '%s'.\n", name)
			return nil
		},
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(w, catsMenu)
		choice, err := p.String("Your choice")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == "0" {
			fmt.Fprintln(w, msgBye)
			return nil
		}

		action, ok := actions[choice]
		if !ok {
			fmt.Fprintln(w, msgUnknownOption)
			continue
		}
		if stop, err := handleMenuError(w, action()); stop {
			return err
		}
	}
}
