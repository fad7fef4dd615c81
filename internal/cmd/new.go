package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/session"
)

var (
	newDirFlag    string
	newAttachFlag bool
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a tmux session",
	Long: `Create a detached tmux session. Without a name, one is generated
from the current directory. The session's window is named after the
directory it starts in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newDirFlag, "dir", "d", "", "working directory for the session (default is the current directory)")
	newCmd.Flags().BoolVarP(&newAttachFlag, "attach", "a", false, "attach to the session after creating it")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	if err := requireTmux(); err != nil {
		return err
	}

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		existing, listErr := d.manager.List(session.DefaultSortMode)
		if listErr != nil {
			return listErr
		}
		name = d.manager.GenerateName(existing)
	}

	if err := d.manager.CreateWithDir(name, newDirFlag); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "created session %s\n", name)

	if newAttachFlag {
		return attachSession(d, name)
	}
	return nil
}
