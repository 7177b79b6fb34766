package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/symhash/internal/pass"
)

// PassInfo describes one registered pass.
type PassInfo struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// PluginInfo describes one loaded plugin.
type PluginInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// PassesResult is the JSON payload of the passes command.
type PassesResult struct {
	Passes  []PassInfo   `json:"passes"`
	Plugins []PluginInfo `json:"plugins"`
	Default string       `json:"default_pipeline"`
}

// NewPassesCommand creates the passes command.
func NewPassesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "passes",
		Short:         "List registered passes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasses(rootOpts, cmd)
		},
	}
	return cmd
}

func runPasses(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.Config()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("loading config: %v", err), nil)
	}

	// Plugin load announcements are not interesting here.
	reg, err := newRegistry(cfg, pass.NopRecorder{})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	result := PassesResult{Default: cfg.Pipeline}
	for _, name := range reg.Names() {
		p, err := reg.New(name, pass.NopRecorder{})
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		result.Passes = append(result.Passes, PassInfo{Name: name, Required: p.Required()})
	}
	for _, p := range reg.Plugins() {
		result.Plugins = append(result.Plugins, PluginInfo{Name: p.Name, Version: p.Version})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	for _, p := range result.Passes {
		if p.Required {
			fmt.Fprintf(w, "%s (required)\n", p.Name)
		} else {
			fmt.Fprintln(w, p.Name)
		}
	}
	fmt.Fprintln(w)
	for _, p := range result.Plugins {
		fmt.Fprintf(w, "Plugin: %s %s\n", p.Name, p.Version)
	}
	fmt.Fprintf(w, "Default pipeline: %s\n", result.Default)
	return nil
}
