package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errToolFailed = errors.New("tool failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errToolFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "devterm",
		Short:         "Developer tools over MCP, HTTP and the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCommand(), newRunCommand(), newServeCommand())
	return root
}
