package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tmuxdash/tmuxdash/internal/errors"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart [bash|zsh|fish]",
	Short: "Print a shell snippet that opens the dashboard on login",
	Long: `Print a snippet for your shell's rc file that launches tmuxdash on
interactive login shells that are not already inside tmux. Add it with,
for example:

  tmuxdash autostart bash >> ~/.bashrc`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE:      runAutostart,
}

func init() {
	rootCmd.AddCommand(autostartCmd)
}

const posixSnippet = `# tmuxdash: open the session dashboard on interactive shells outside tmux
if command -v tmuxdash >/dev/null 2>&1 && [ -z "$TMUX" ] && [ -t 1 ]; then
    tmuxdash
fi
`

const fishSnippet = `# tmuxdash: open the session dashboard on interactive shells outside tmux
if type -q tmuxdash; and test -z "$TMUX"; and isatty stdout
    tmuxdash
end
`

func runAutostart(cmd *cobra.Command, args []string) error {
	shell := "bash"
	if len(args) == 1 {
		shell = args[0]
	}

	switch shell {
	case "bash", "zsh":
		fmt.Print(posixSnippet)
	case "fish":
		fmt.Print(fishSnippet)
	default:
		return errors.NewValidationError(fmt.Sprintf("unsupported shell %q: must be bash, zsh, or fish", shell))
	}
	return nil
}
