package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/symhash/internal/compiler"
	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/pass"
	"github.com/roach88/symhash/internal/pipeline"
	"github.com/roach88/symhash/internal/store"
)

// RenameOptions holds flags for the rename command.
type RenameOptions struct {
	*RootOptions
	Passes      string // pipeline text; empty uses config
	Output      string // write the renamed module here
	Database    string // rename log; empty uses config
	Diagnostics bool   // print the classic diagnostic lines to stderr
}

// RenameResult is the JSON payload of a successful rename.
type RenameResult struct {
	Report *pipeline.Report `json:"report"`
	Module *ir.Module       `json:"module"`
	Output string           `json:"output,omitempty"`
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenameOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rename <module>",
		Short: "Hash eligible function names",
		Long: `Run a pass pipeline over a module's function table.

The module is a .cue, .yaml, .yml or .json file, or a directory of .cue
files. Every eligible function is renamed to the lowercase hex MD5 of its
name; the rest keep their names.

Examples:
  symhash rename hello.cue
  symhash rename hello.cue -o hello.renamed.yaml --diagnostics
  symhash rename hello.cue --passes "function(md5-function-name-pass)" --db renames.db
  symhash rename hello.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Passes, "passes", "", "pipeline text (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the renamed module to file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite rename log")
	cmd.Flags().BoolVar(&opts.Diagnostics, "diagnostics", false, "print per-function diagnostics to stderr")

	return cmd
}

func runRename(opts *RenameOptions, modulePath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.Config()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("loading config: %v", err), nil)
	}
	logger, err := opts.Logger(cmd.ErrOrStderr())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if opts.Output != "" {
		if err := checkOutputExt(opts.Output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeUnsupported, err.Error(), nil)
		}
	}

	m, err := LoadModule(modulePath)
	if err != nil {
		code, msg := loadErrorParts(err)
		return formatter.Fail(ExitCommandError, code, msg, nil)
	}
	formatter.VerboseLog("Loaded module %s (%d function(s)) from %s", m.Name, len(m.Functions), modulePath)

	if errs := compiler.Validate(m); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	recs := []pass.Recorder{pass.SlogRecorder{Logger: logger}}
	if opts.Diagnostics {
		recs = append(recs, pass.NewTextRecorder(cmd.ErrOrStderr()))
	}
	rec := pass.Multi(recs...)

	reg, err := newRegistry(cfg, rec)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	text := opts.Passes
	if text == "" {
		text = cfg.Pipeline
	}
	pipeOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if opts.RunIDs != nil {
		pipeOpts = append(pipeOpts, pipeline.WithRunIDGenerator(opts.RunIDs))
	}
	p, err := pipeline.Build(text, reg, rec, pipeOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, pipelineErrorCode(err), err.Error(), nil)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := p.Run(ctx, m)
	if err != nil {
		return WrapExitError(ExitFailure, "pipeline run failed", err)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if dbPath != "" {
		if err := recordReport(ctx, dbPath, report); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
		}
		formatter.VerboseLog("Recorded run %s in %s", report.RunID, dbPath)
	}

	if opts.Output != "" {
		if err := writeModule(m, opts.Output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if opts.Format == "json" {
		return formatter.SuccessForRun(RenameResult{Report: report, Module: m, Output: opts.Output}, report.RunID)
	}
	return outputRenameText(formatter, report, len(m.Functions), opts.Output)
}

// pipelineErrorCode maps Parse/Build errors to their stable codes.
func pipelineErrorCode(err error) string {
	var buildErr *pipeline.BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Code
	}
	var parseErr *pipeline.ParseError
	if errors.As(err, &parseErr) {
		return pipeline.ErrCodeParse
	}
	return ErrCodeGeneric
}

func recordReport(ctx context.Context, path string, report *pipeline.Report) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteReport(ctx, report.RunRecord(), report.DecisionRecords())
}

func checkOutputExt(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return nil
	default:
		return fmt.Errorf("unsupported output extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// writeModule writes the renamed table in the format the extension names.
// Source is dropped: the file is a new artifact.
func writeModule(m *ir.Module, path string) error {
	out := m.Clone()
	out.Source = ""

	var (
		data []byte
		err  error
	)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err = json.MarshalIndent(out, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("marshaling module: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func outputRenameText(formatter *OutputFormatter, report *pipeline.Report, total int, outputFile string) error {
	w := formatter.Writer
	fmt.Fprintf(w, "✓ Renamed %d of %d function(s) in %s\n\n", report.Renamed, total, report.Module)

	for _, d := range report.Decisions {
		fmt.Fprintf(w, "  %s\n", decisionLine(d.Original, d.Renamed, string(d.Reason), d.Changed))
	}
	if len(report.Decisions) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Run: %s\n", report.RunID)
	if outputFile != "" {
		fmt.Fprintf(w, "Wrote module to %s\n", outputFile)
	}
	return nil
}

func decisionLine(original, renamed, reason string, changed bool) string {
	if changed {
		return fmt.Sprintf("%s → %s", original, renamed)
	}
	return fmt.Sprintf("%s (skipped: %s)", original, reason)
}
