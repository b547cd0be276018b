package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdb/taskdb/internal/database"
	"github.com/taskdb/taskdb/internal/output"
)

func migrateCmd(rt *runtime) *cobra.Command {
	var version int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply versioned schema migrations without dropping data",
		Long: `Bring the task manager schema to a migration version with tern.

Migrations create the tables if they are missing and insert the fixed
statuses (new, in progress, completed), skipping any that exist. The
applied version is kept in the schema_version table.

Examples:
  # Migrate to the latest version
  taskdb migrate

  # Roll back to version 1 (drops the seeded statuses that no task uses)
  taskdb migrate --version=1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if version < -1 {
				return newUsageError("--version must be -1 (latest) or a migration number")
			}

			a := rt.app
			res, err := database.Migrate(cmd.Context(), a.Logger, a.Config, version)
			if err != nil {
				return err
			}

			p := rt.printer()
			if p.JSON() {
				return output.PrintJSON(p.Writer(), res)
			}
			if res.From == res.To {
				p.Printf("Schema already at version %d.\n", res.To)
			} else {
				p.Printf("Migrated schema from version %d to %d.\n", res.From, res.To)
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&version, "version", -1, "Target migration version (-1 for latest)")
	return cmd
}
