package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Index    int // restrict to one function table position; -1 means all
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Run       ir.RunRecord        `json:"run"`
	Decisions []ir.DecisionRecord `json:"decisions"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <run-id>",
		Short: "Show the decisions of a recorded run",
		Long: `Show every pass decision of one run, in the order it was made.

Use --index to follow a single function through the pipeline; with
more than one pass, the same table position appears once per pass.

Examples:
  symhash trace 01923e6a-... --db renames.db
  symhash trace 01923e6a-... --db renames.db --index 0
  symhash trace 01923e6a-... --db renames.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite rename log (default from config)")
	cmd.Flags().IntVar(&opts.Index, "index", -1, "only show decisions for this function index")

	return cmd
}

func runTrace(opts *TraceOptions, runID string, cmd *cobra.Command) error {
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

	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run not found: %s", runID), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	var decisions []ir.DecisionRecord
	if opts.Index >= 0 {
		decisions, err = st.ReadFunctionDecisions(ctx, runID, opts.Index)
	} else {
		decisions, err = st.ReadDecisions(ctx, runID)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	if opts.Format == "json" {
		return formatter.SuccessForRun(TraceResult{Run: run, Decisions: decisions}, run.ID)
	}
	return outputTraceText(formatter, run, decisions)
}

func outputTraceText(formatter *OutputFormatter, run ir.RunRecord, decisions []ir.DecisionRecord) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Module:   %s (%s)\n", run.Module, run.ModuleHash)
	fmt.Fprintf(w, "Pipeline: %s\n", run.Pipeline)
	fmt.Fprintf(w, "Renamed:  %d, skipped: %d\n", run.Renamed, run.Skipped)
	fmt.Fprintln(w)

	if len(decisions) == 0 {
		fmt.Fprintln(w, "No decisions.")
		return nil
	}
	for _, d := range decisions {
		fmt.Fprintf(w, "[%d] %s #%d %s\n", d.Seq, d.Pass, d.Index, decisionLine(d.Original, d.Renamed, d.Reason, d.Changed))
	}
	return nil
}
