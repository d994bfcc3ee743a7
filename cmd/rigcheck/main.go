// Command rigcheck assembles PC builds from a parts catalog and checks them
// for compatibility issues.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/rigcheck/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
