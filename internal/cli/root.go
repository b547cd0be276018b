// Package cli wires the taskdb commands with cobra.
//
// Every command loads the config, builds the logger and an app.App in
// the root's PersistentPreRunE, opens only the stores it needs, and the
// stores are closed once the command returns. Menus read answers from
// stdin and print to stdout; logs go to stderr.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskdb/taskdb/internal/app"
	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/logger"
	"github.com/taskdb/taskdb/internal/output"
	"github.com/taskdb/taskdb/internal/prompt"
)

const closeTimeout = 5 * time.Second

// runtime carries what the commands share for one invocation.
type runtime struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logLevel string
	json     bool

	app *app.App
}

func (rt *runtime) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if rt.logLevel != "" {
		cfg.Logging.Level = rt.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return newUsageError("--log-level: %w", err)
		}
	}

	log := logger.NewWithWriter(cfg.Logging, cfg.Primary.Env, rt.errOut)
	rt.app = app.New(cfg, &log)
	return nil
}

func (rt *runtime) logger() *zerolog.Logger {
	if rt.app != nil {
		return rt.app.Logger
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: rt.errOut}).Level(zerolog.WarnLevel)
	return &log
}

func (rt *runtime) printer() *output.Printer {
	return output.New(rt.out, rt.json)
}

func (rt *runtime) prompter() *prompt.Prompter {
	return prompt.New(rt.in, rt.out)
}

func (rt *runtime) close() error {
	if rt.app == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return rt.app.Close(ctx)
}

func newRootCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskdb",
		Short: "taskdb - task manager (PostgreSQL) and cats (MongoDB) tool",
		Long: `taskdb manages the task manager schema and data in PostgreSQL and
the cats collection in MongoDB.

Connection settings come from TASKDB_* environment variables (or a .env
file) and MONGODB_URI. Run "taskdb bootstrap" once before the other
task manager commands.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
	}

	cmd.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides TASKDB_LOGGING_LEVEL)")
	cmd.PersistentFlags().BoolVar(&rt.json, "json", false, "Output in JSON format")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.AddCommand(
		bootstrapCmd(rt),
		migrateCmd(rt),
		seedCmd(rt),
		queryCmd(rt),
		catsCmd(rt),
		pingCmd(rt),
	)
	return cmd
}

// Execute runs taskdb with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	rt := &runtime{in: in, out: out, errOut: errOut}

	cmd := newRootCmd(rt)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)

	if closeErr := rt.close(); closeErr != nil {
		rt.logger().Warn().Err(closeErr).Msg("failed to close stores")
	}

	if err != nil {
		ReportError(errOut, rt.logger(), err)
		return ExitCode(err)
	}
	return ExitOK
}
