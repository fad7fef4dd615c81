package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/session"
	"github.com/tmuxdash/tmuxdash/internal/tui/styles"
)

var sessionsSortFlag string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List tmux sessions without starting the dashboard",
	Long: `List tmux sessions in the dashboard's sort order, one per line,
with attached and agent markers. Suitable for scripting; colors are
disabled automatically when stdout is not a terminal.`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsSortFlag, "sort", "",
		"sort order: agents, activity, name, or windows (default from config)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	if err := requireTmux(); err != nil {
		return err
	}

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	mode := session.ParseSortMode(d.cfg.Dashboard.SortMode)
	if sessionsSortFlag != "" {
		mode = session.ParseSortMode(sessionsSortFlag)
	}

	sessions, err := d.manager.List(mode)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no tmux sessions")
		return nil
	}

	set := styles.NewSet(styles.ByName(d.cfg.Dashboard.Theme))
	color := useColor(d.cfg.Dashboard.Color)
	for _, s := range sessions {
		fmt.Println(formatSessionLine(s, set, color))
	}
	return nil
}

// useColor resolves the color mode against the actual output destination.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

func formatSessionLine(s session.Info, set styles.Set, color bool) string {
	line := fmt.Sprintf("%-24s %d window(s)", s.Name, s.Windows)

	badge := ""
	if s.Attached {
		badge += " [attached]"
	}
	if s.IsAgentSession {
		if s.Agent != "" {
			badge += " [" + s.Agent + "]"
		} else {
			badge += " [agent]"
		}
	}

	if !color {
		return line + badge
	}

	styled := set.Normal.Render(line)
	if s.Attached {
		styled = set.Attached.Render(line)
	}
	if badge != "" {
		styled += set.Agent.Render(badge)
	}
	return styled
}
