package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdb/taskdb/internal/database"
	"github.com/taskdb/taskdb/internal/output"
)

func bootstrapCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the task manager database and (re)create its tables",
		Long: `Create the task manager database if it does not exist, then drop and
recreate the users, status and tasks tables in one transaction.

All task manager data is lost. Use "taskdb migrate" to create missing
tables without dropping anything.

Examples:
  taskdb bootstrap
  TASKDB_DATABASE_NAME=scratch taskdb bootstrap
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			res, err := database.Bootstrap(cmd.Context(), a.Config, a.Logger)
			if err != nil {
				return err
			}

			p := rt.printer()
			if p.JSON() {
				return output.PrintJSON(p.Writer(), map[string]any{
					"database":         res.Database,
					"database_created": res.DatabaseCreated,
					"schema_applied":   true,
				})
			}

			if res.DatabaseCreated {
				p.Printf("Database %s created.\n", res.Database)
			} else {
				p.Printf("Database %s already exists.\n", res.Database)
			}
			p.Println("Tables users, status and tasks created.")
			return nil
		},
	}
}
