// Command mstgraph drives the minimum spanning tree editor from scripts.
package main

import (
	"fmt"
	"os"

	"github.com/randalmurphal/mstgraph/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
