package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdb/taskdb/internal/catalog"
	"github.com/taskdb/taskdb/internal/output"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/service"
)

func (rt *runtime) queryService(cmd *cobra.Command) (*service.QueryService, error) {
	db, err := rt.app.DB(cmd.Context())
	if err != nil {
		return nil, err
	}
	return service.NewServices(rt.app.Config, rt.app.Logger, repository.NewRepositories(db)).Query, nil
}

func queryCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run the task manager queries from an interactive menu",
		Long: `Show the numbered task manager queries, ask for the chosen query's
arguments and print its result. Writes are committed right away. The
menu repeats until you choose 0 or input ends.

Examples:
  taskdb query
  taskdb query list
  taskdb query run 1 42
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := rt.queryService(cmd)
			if err != nil {
				return err
			}
			return runQueryMenu(cmd.Context(), rt.prompter(), rt.printer(), svc)
		},
	}

	cmd.AddCommand(queryListCmd(rt), queryRunCmd(rt))
	return cmd
}

func queryListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available queries",
		Args:  cobra.NoArgs,
		// Listing needs no database.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			p := rt.printer()
			actions := catalog.Actions()

			if p.JSON() {
				type entry struct {
					Key       string `json:"key"`
					Label     string `json:"label"`
					NeedsArgs bool   `json:"needs_args"`
				}
				entries := make([]entry, 0, len(actions))
				for _, a := range actions {
					entries = append(entries, entry{Key: a.Key, Label: a.Label, NeedsArgs: a.NeedsArgs})
				}
				return output.PrintJSON(p.Writer(), entries)
			}

			for _, a := range actions {
				p.Println(a.MenuLine())
			}
			return nil
		},
	}
}

func queryRunCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "run KEY [ARGS...]",
		Short: "Run one query without the menu",
		Long: `Run the query with the given menu number. Arguments are taken in the
order the menu would ask for them; an empty string selects a default
(e.g. the status of query 5).

Examples:
  # Tasks of user 3
  taskdb query run 1 3

  # Add a task without description and with the default status
  taskdb query run 5 3 "Write report" "" ""

  # Users with a gmail address, as JSON
  taskdb query run 8 '%@gmail.com' --json
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := catalog.Lookup(args[0])
			if !ok {
				return newUsageError("unknown query %q; see \"taskdb query list\"", args[0])
			}

			// Arguments are checked before connecting.
			in := catalog.NewArgsInput(args[1:])
			stmt, err := action.Build(in)
			if err != nil {
				return newUsageError("query %s: %w", action.Key, err)
			}
			if n := in.Remaining(); n > 0 {
				return newUsageError("query %s: %d unexpected argument(s)", action.Key, n)
			}

			svc, err := rt.queryService(cmd)
			if err != nil {
				return err
			}
			res, err := svc.Run(cmd.Context(), stmt)
			if err != nil {
				return err
			}
			return rt.printer().Result(res)
		},
	}
}
