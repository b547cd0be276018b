package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/health"
)

const (
	targetPostgres = "postgres"
	targetMongo    = "mongo"
)

func pingCmd(rt *runtime) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that PostgreSQL and MongoDB answer",
		Long: `Connect to each target, ping it and print its status and response
time. A failing target is reported, never fatal for the other targets;
the command exits non-zero when any target is unhealthy.

Examples:
  taskdb ping
  taskdb ping --target=mongo
  taskdb ping --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			if len(targets) == 0 {
				targets = a.Config.Health.Checks
			}

			checker := health.NewChecker(a.Config.Health.Timeout, a.Config.Primary.Env, a.Logger)
			for _, t := range targets {
				switch t {
				case targetPostgres:
					checker.Add(targetPostgres, func(ctx context.Context) error {
						db, err := a.DB(ctx)
						if err != nil {
							return err
						}
						return db.Pool.Ping(ctx)
					})
				case targetMongo:
					checker.Add(targetMongo, func(ctx context.Context) error {
						store, err := a.Mongo(ctx)
						if err != nil {
							return err
						}
						_, err = store.Ping(ctx)
						return err
					})
				default:
					return newUsageError("unknown --target %q (want %s or %s)", t, targetPostgres, targetMongo)
				}
			}

			report := checker.Run(cmd.Context())
			if err := rt.printer().Health(report); err != nil {
				return err
			}
			if !report.Healthy() {
				var failed []string
				for _, c := range report.Checks {
					if c.Status == health.StatusUnhealthy {
						failed = append(failed, c.Name)
					}
				}
				return errs.NewUnavailableError("Unhealthy: "+strings.Join(failed, ", "), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&targets, "target", nil, "Stores to check: postgres, mongo (default TASKDB_HEALTH_CHECKS)")
	return cmd
}
