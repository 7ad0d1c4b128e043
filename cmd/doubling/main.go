package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-growth/internal/config"
	"github.com/simaogato/wealthflow-growth/internal/logging"
)

// usageError marks errors caused by how the command was invoked (exit status 2)
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// app carries what every subcommand needs once the root command has set it up
type app struct {
	verbose bool
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	opts := &scheduleOptions{}

	root := &cobra.Command{
		Use:   "doubling",
		Short: "Investment calculator: how many years a principal takes to double",
		Long: `doubling compounds a principal once a year at a fixed rate until the
balance reaches twice its starting value, and prints the yearly ledger.

Run without arguments to be prompted for the rate and the principal.
Settings are read from DOUBLING_* environment variables; flags override them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSchedule(cmd, opts)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	addScheduleFlags(root, opts)

	root.AddCommand(a.newScheduleCmd(), a.newServeCmd())
	return root
}

// setup loads the environment configuration and builds the logger, unless one was provided
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}
	logger, err := logging.New(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// execute runs cmd and flushes the logger whether or not the command failed
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if a.logger != nil {
		if err != nil {
			a.logger.Debug("command failed", zap.Error(err))
		}
		_ = a.logger.Sync()
	}
	return err
}

func main() {
	a := &app{}
	if err := a.execute(a.rootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var uerr usageError
		if errors.As(err, &uerr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
