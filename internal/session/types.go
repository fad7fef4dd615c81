// Package session manages tmux sessions for the dashboard: listing, sorting,
// creation, attachment, and teardown. All tmux interaction goes through the
// Runner interface so the manager can be tested without a tmux server.
package session

import "strings"

// SortMode determines the order sessions are presented in.
type SortMode string

const (
	// SortAgents puts AI agent sessions first, then sorts by name.
	SortAgents SortMode = "agents"
	// SortActivity puts attached sessions first, then most recent activity.
	SortActivity SortMode = "activity"
	// SortName sorts alphabetically A to Z.
	SortName SortMode = "name"
	// SortWindows sorts by window count, most windows first.
	SortWindows SortMode = "windows"
)

// DefaultSortMode is used when no sort mode is configured.
const DefaultSortMode = SortAgents

// ParseSortMode converts a config string to a SortMode, falling back to the
// default for unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortAgents, SortActivity, SortName, SortWindows:
		return SortMode(strings.ToLower(strings.TrimSpace(s)))
	default:
		return DefaultSortMode
	}
}

// Next returns the sort mode after m in the cycle order used by the
// dashboard's sort toggle.
func (m SortMode) Next() SortMode {
	switch m {
	case SortAgents:
		return SortActivity
	case SortActivity:
		return SortName
	case SortName:
		return SortWindows
	default:
		return SortAgents
	}
}

// Label returns a short human-readable name for the sort mode.
func (m SortMode) Label() string {
	switch m {
	case SortAgents:
		return "agents first"
	case SortActivity:
		return "activity"
	case SortName:
		return "name"
	case SortWindows:
		return "windows"
	default:
		return string(m)
	}
}

// Info contains summary information about a tmux session.
type Info struct {
	Name     string
	Attached bool
	Windows  int
	// Activity is the session_activity unix timestamp, zero when unknown.
	Activity int64
	// IsAgentSession is true when the session appears to be running an AI
	// coding agent, detected from pane commands or the session name.
	IsAgentSession bool
	// Agent names the specific agent when one could be identified
	// (e.g., "codex"). Empty when the agent is unknown.
	Agent string
}

// PaneInfo describes a single pane within a window.
type PaneInfo struct {
	ID             string
	CurrentCommand string
}

// WindowInfo describes a window and its panes.
type WindowInfo struct {
	Name  string
	Panes []PaneInfo
}

// RuntimeStatus reports whether a session's panes are still running.
type RuntimeStatus struct {
	Exists  bool
	Running bool
	// ExitCode is the highest exit status among dead panes.
	// Only meaningful when HasExitCode is true.
	ExitCode    int
	HasExitCode bool
}
