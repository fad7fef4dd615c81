package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/headless"
)

var runsPruneFlag bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List headless runs and their status",
	Long: `List every recorded headless run with its live status: running,
completed, or missing when the tmux session is gone. Finished runs get
their exit code and last output line recorded on first sight.

With --prune, finished runs are killed, their metadata forgotten, and
only their output files kept.`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&runsPruneFlag, "prune", false, "remove finished runs and their tmux sessions")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	if err := requireTmux(); err != nil {
		return err
	}

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	registry := d.headlessRegistry()
	recorded := registry.LoadAll()
	if len(recorded) == 0 {
		fmt.Println("no headless runs recorded")
		return nil
	}

	names := make([]string, 0, len(recorded))
	for name := range recorded {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		run := recorded[name]
		st := d.manager.Status(name)
		label := headless.StatusLabel(st.Exists, st.Running)

		// A run seen finished for the first time gets its completion
		// state captured before anything can truncate the output file.
		if !st.Running && !run.Completed() {
			var code *int
			if st.HasExitCode {
				code = &st.ExitCode
			}
			run.MarkCompleted(code)
			if err := registry.Record(run); err != nil {
				d.logger.Warn("failed to record run completion", "session", name, "error", err)
			}
		}

		fmt.Println(formatRunLine(run, label))

		if runsPruneFlag && !st.Running {
			if st.Exists {
				if err := d.manager.Kill(name); err != nil {
					d.logger.Warn("failed to kill finished run", "session", name, "error", err)
					continue
				}
			}
			if err := registry.Forget(name); err != nil {
				return err
			}
			fmt.Printf("  pruned %s\n", name)
		}
	}
	return nil
}

// formatRunLine renders one run for the listing.
func formatRunLine(run *headless.Session, label string) string {
	line := fmt.Sprintf("%-24s %-10s %s", run.Name, label, run.Agent)
	if run.ExitCode != nil {
		line += fmt.Sprintf("  exit %d", *run.ExitCode)
	}
	if run.LastRawLine != "" {
		line += "  " + run.LastRawLine
	}
	return line
}
