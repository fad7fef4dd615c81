package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status [session]",
	Short: "Show dashboard and session status",
	Long: `Without arguments, report whether a dashboard instance is running
and where its lock files live. With a session name, report whether that
session's processes are still running and their exit codes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if len(args) == 1 {
		if err := requireTmux(); err != nil {
			return err
		}
		printSessionStatus(args[0], d.manager.Status(args[0]))
		return nil
	}

	printLockStatus(d)
	return nil
}

func printLockStatus(d *deps) {
	st := d.lock.Status()
	if st.Locked {
		fmt.Println("dashboard: running")
		if st.HolderPID > 0 {
			fmt.Printf("  pid:       %d\n", st.HolderPID)
		}
	} else {
		fmt.Println("dashboard: not running")
	}
	fmt.Printf("  lock file: %s\n", st.LockFile)
	fmt.Printf("  pid file:  %s\n", st.PIDFile)
}

func printSessionStatus(name string, st session.RuntimeStatus) {
	if !st.Exists {
		fmt.Printf("session %s: not found\n", name)
		return
	}
	if st.Running {
		fmt.Printf("session %s: running\n", name)
		return
	}
	if st.HasExitCode {
		fmt.Printf("session %s: exited (code %d)\n", name, st.ExitCode)
		return
	}
	fmt.Printf("session %s: exited\n", name)
}
