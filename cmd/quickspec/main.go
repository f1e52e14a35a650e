// Command quickspec runs and validates specification outlines.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/quickspec/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
