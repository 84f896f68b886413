package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vk/fnlists/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options are the persistent flags shared by every subcommand.
type options struct {
	logLevel    string
	logFormat   string
	output      string
	parallelism int
}

// NewRootCommand builds the fnlists command tree. Reports go to outW, logs
// and errors to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "fnlists",
		Short: "Typed immutable lists for node graph sockets",
		Long: `fnlists loads literal lists from HCL and YAML files, publishes them on
graph sockets and reports what every socket carries.

Supported list types: float_list, fvec3_list, int32_list, bool_list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVarP(&opts.output, "output", "o", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	pf.IntVar(&opts.parallelism, "parallelism", 4, "Number of files parsed concurrently. 0 is unlimited.")

	root.AddCommand(newInspectCommand(opts), newTypesCommand(opts))
	return root
}

func newInspectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATH...",
		Short: "Load literal files and report every published list",
		Long: `Loads every .hcl, .yaml and .yml file found under the given paths.
Directories are searched recursively.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd, args)
			if err != nil {
				return err
			}
			return a.Inspect(cmd.Context())
		}),
	}
}

func newTypesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered list types",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd, nil)
			if err != nil {
				return err
			}
			return a.Types(cmd.Context())
		}),
	}
}

func (o *options) newApp(cmd *cobra.Command, paths []string) (*app.App, error) {
	config, err := app.NewConfig(app.Config{
		Paths:       paths,
		LogFormat:   o.logFormat,
		LogLevel:    o.logLevel,
		Output:      o.output,
		Parallelism: o.parallelism,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI configuration validated.", "config", config)
	return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), config), nil
}

// runE marks errors raised while running a command as runtime failures, so
// Execute can tell them apart from usage errors reported by cobra.
func runE(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		return &ExitError{Code: 1, Message: err.Error()}
	}
}

// Execute runs the command line in args. Every failure is returned as an
// *ExitError: code 2 for usage errors, code 1 for runtime errors. Asking for
// help is not a failure.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	slog.Debug("CLI parser started.")
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 2, Message: err.Error()}
}
