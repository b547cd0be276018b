package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdb/taskdb/internal/output"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/service"
)

func seedCmd(rt *runtime) *cobra.Command {
	var users int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the task manager tables with fake data",
		Long: `Insert the fixed statuses, fake users and a random number of tasks
(TASKDB_SEED_TASKS_MIN..TASKDB_SEED_TASKS_MAX) for every user, all in one
transaction. Existing statuses and emails are skipped.

Examples:
  taskdb seed
  taskdb seed --users=5 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if users < 0 {
				return newUsageError("--users must not be negative")
			}

			ctx := cmd.Context()
			db, err := rt.app.DB(ctx)
			if err != nil {
				return err
			}

			svcs := service.NewServices(rt.app.Config, rt.app.Logger, repository.NewRepositories(db))
			counts, err := svcs.Seed.Run(ctx, users)
			if err != nil {
				return err
			}

			p := rt.printer()
			if p.JSON() {
				return output.PrintJSON(p.Writer(), counts)
			}
			p.Printf("Seed complete: %d statuses, %d users, %d tasks inserted.\n",
				counts.Statuses, counts.Users, counts.Tasks)
			return nil
		},
	}

	cmd.Flags().IntVar(&users, "users", 0, "Number of users to generate (default TASKDB_SEED_USERS)")
	return cmd
}
