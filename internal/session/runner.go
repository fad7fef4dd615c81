package session

import (
	"bytes"
	"context"
	"strings"

	"github.com/tmuxdash/tmuxdash/internal/errors"
	"github.com/tmuxdash/tmuxdash/internal/tmux"
)

// Runner executes tmux commands. The production implementation shells out to
// the tmux binary; tests substitute a fake.
type Runner interface {
	// Output runs tmux with the given arguments and returns its stdout.
	// A non-zero exit returns a TmuxError carrying the captured stderr.
	Output(ctx context.Context, args ...string) (string, error)
}

// execRunner runs tmux via os/exec against the user's default server.
type execRunner struct{}

// NewRunner returns a Runner backed by the tmux binary.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Output(ctx context.Context, args ...string) (string, error) {
	cmd := tmux.CommandContext(ctx, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		command := "tmux"
		if len(args) > 0 {
			command = "tmux " + args[0]
		}
		return "", wrapTmuxFailure(command, err, stderr.String())
	}
	return stdout.String(), nil
}

// wrapTmuxFailure builds the error for a failed tmux invocation, mapping
// well-known stderr messages onto sentinel causes so callers can match with
// errors.Is instead of scraping stderr themselves.
func wrapTmuxFailure(command string, cause error, stderr string) error {
	switch lower := strings.ToLower(stderr); {
	case strings.Contains(lower, "no server running"):
		cause = errors.ErrNoServer
	case strings.Contains(lower, "can't find session"):
		cause = errors.ErrSessionNotFound
	case strings.Contains(lower, "duplicate session"):
		cause = errors.ErrSessionExists
	}
	return errors.NewTmuxError(command, cause).WithStderr(stderr)
}
