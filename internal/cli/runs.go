package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs in the rename log",
		Long: `List every run recorded in a rename log, oldest first.

Examples:
  symhash runs --db renames.db
  symhash runs --db renames.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite rename log (default from config)")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openLog(opts.RootOptions, opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	return writeRunTable(formatter, runs)
}

func writeRunTable(formatter *OutputFormatter, runs []ir.RunRecord) error {
	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tMODULE\tRENAMED\tSKIPPED\tPIPELINE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Module, r.Renamed, r.Skipped, r.Pipeline)
	}
	return tw.Flush()
}

// openLog opens the rename log named by flag, falling back to config.
func openLog(opts *RootOptions, flagPath string) (*store.Store, error) {
	path := flagPath
	if path == "" {
		cfg, err := opts.Config()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		path = cfg.Database
	}
	if path == "" {
		return nil, fmt.Errorf("no rename log: pass --db or set database in config")
	}
	return store.Open(path)
}
