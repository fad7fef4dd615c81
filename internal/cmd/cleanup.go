package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove stale lock files left by crashed instances",
	Long: `Remove lock and pid files whose owning process is no longer alive.
Files belonging to a live dashboard are left untouched. Safe to run at
any time, including from shell startup scripts.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if d.lock.CleanupStale() {
		fmt.Println("removed stale lock files")
	} else {
		fmt.Println("nothing to clean up")
	}
	return nil
}
