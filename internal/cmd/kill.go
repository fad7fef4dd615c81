package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill <name>...",
	Short: "Kill one or more tmux sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKill,
}

func init() {
	rootCmd.AddCommand(killCmd)
}

func runKill(cmd *cobra.Command, args []string) error {
	if err := requireTmux(); err != nil {
		return err
	}

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	for _, name := range args {
		if err := d.manager.Kill(name); err != nil {
			return err
		}
		fmt.Printf("killed session %s\n", name)
	}
	return nil
}
