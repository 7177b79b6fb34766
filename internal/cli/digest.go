package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/symhash/internal/ir"
)

// DigestEntry pairs a name with the digest it would be renamed to.
type DigestEntry struct {
	Name   string `json:"name"`
	Digest string `json:"digest"`
}

// NewDigestCommand creates the digest command.
func NewDigestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest <name>...",
		Short: "Print the digest a function name would receive",
		Long: `Print the lowercase hex MD5 of each name, in the md5sum layout.

Eligibility rules are not applied: reserved names and the entry point
are hashed like any other.

Examples:
  symhash digest getHello
  symhash digest getHello getWorld --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runDigest(opts *RootOptions, names []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	entries := make([]DigestEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, DigestEntry{Name: name, Digest: ir.NameDigest(name)})
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s  %s\n", e.Digest, e.Name)
	}
	return nil
}
