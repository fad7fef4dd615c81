package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/headless"
)

var wrapRawFlag bool

// wrapOutputCmd is invoked by the headless agent command templates, not by
// users, so it stays out of the help listing.
var wrapOutputCmd = &cobra.Command{
	Use:    "wrap-output",
	Short:  "Wrap stdin lines into JSONL events",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runWrapOutput,
}

func init() {
	wrapOutputCmd.Flags().BoolVar(&wrapRawFlag, "raw-to-stderr", false, "mirror raw input lines to stderr")
	rootCmd.AddCommand(wrapOutputCmd)
}

func runWrapOutput(cmd *cobra.Command, args []string) error {
	var raw io.Writer
	if wrapRawFlag {
		raw = os.Stderr
	}
	return headless.WrapOutput(os.Stdin, os.Stdout, raw)
}
