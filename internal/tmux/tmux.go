// Package tmux provides helpers for invoking the tmux binary.
//
// tmuxdash operates on the user's default tmux server, the same one their
// shells attach to. It never spawns private sockets: the whole point of the
// dashboard is to manage the sessions the user already has.
package tmux

import (
	"context"
	"os"
	"os/exec"
)

// Binary is the name of the tmux executable resolved via PATH.
const Binary = "tmux"

// Command creates an exec.Cmd for tmux against the default server.
func Command(args ...string) *exec.Cmd {
	return exec.Command(Binary, args...)
}

// CommandContext creates a context-aware exec.Cmd for tmux against the
// default server. Use this for anything that should honor a timeout.
func CommandContext(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, Binary, args...)
}

// CommandArgs returns the full argv for a tmux invocation. Use this when the
// command string is needed for display or logging rather than execution.
func CommandArgs(args ...string) []string {
	return append([]string{Binary}, args...)
}

// InsideTmux reports whether the current process is running inside a tmux
// client. tmux sets $TMUX in every pane it spawns.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// IsInstalled reports whether the tmux binary can be found on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath(Binary)
	return err == nil
}
