package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/symhash/internal/config"
	"github.com/roach88/symhash/internal/logging"
	"github.com/roach88/symhash/internal/pipeline"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // empty means config.DefaultPath, if present

	// RunIDs overrides the UUIDv7 run id source. Tests set it for
	// stable output.
	RunIDs pipeline.RunIDGenerator

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the symhash CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symhash",
		Short: "symhash - function name hashing",
		Long: `Replace function names in a module's function table with the MD5
digest of the original name.

External declarations, reserved library names, linkage-group members
and the entry point keep their names.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := opts.Config(); err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./"+config.DefaultPath+" if present)")

	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewPassesCommand(opts))
	cmd.AddCommand(NewDigestCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Config loads settings once per invocation. Subcommands built without a
// root (as in tests) load lazily on first use.
func (o *RootOptions) Config() (config.Config, error) {
	if o.cfg != nil {
		return *o.cfg, nil
	}

	var (
		cfg config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}
	o.cfg = &cfg
	return cfg, nil
}

// Logger builds the structured logger for a command. Output goes to w,
// which commands set to stderr so JSON on stdout stays clean.
func (o *RootOptions) Logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Verbose: o.Verbose,
		Level:   cfg.LogLevel,
		Writer:  w,
	})
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
