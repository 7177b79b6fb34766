// Command symhash renames function table entries to the MD5 digest of
// their names.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/symhash/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
