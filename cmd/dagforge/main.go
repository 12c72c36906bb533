// Command dagforge builds, validates, and inspects dataflow graphs from
// declarative CUE flow specs.
package main

import (
	"fmt"
	"os"

	"github.com/dagforge/dagforge/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
