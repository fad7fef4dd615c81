// Package headless tracks agent runs launched in detached tmux sessions:
// their metadata, their JSONL output streams, and their completion state.
package headless

import (
	"time"
)

// timeLayout is the UTC second-resolution format used in metadata files.
const timeLayout = "2006-01-02T15:04:05Z"

// Session is the persisted record of one headless agent run. The tmux
// session may outlive or predecease this record; the registry is the
// source of truth for what was launched, tmux for what is still alive.
type Session struct {
	Name        string `json:"session_name"`
	Agent       string `json:"agent"`
	Instruction string `json:"instruction"`
	Workdir     string `json:"workdir"`
	OutputPath  string `json:"output_path"`
	CreatedAt   string `json:"created_at"`
	Command     string `json:"command,omitempty"`

	// Completion state, filled in once the agent process has exited.
	CompletedAt string `json:"completed_at,omitempty"`
	ExitCode    *int   `json:"exit_code,omitempty"`
	LastRawLine string `json:"last_raw_line,omitempty"`
}

// NewSession builds a Session stamped with the current UTC time.
func NewSession(name, agent, instruction, workdir, outputPath, command string) *Session {
	return &Session{
		Name:        name,
		Agent:       agent,
		Instruction: instruction,
		Workdir:     workdir,
		OutputPath:  outputPath,
		CreatedAt:   time.Now().UTC().Format(timeLayout),
		Command:     command,
	}
}

// Completed reports whether the run has already been marked finished.
func (s *Session) Completed() bool {
	return s.CompletedAt != ""
}

// MarkCompleted stamps the completion time, records the exit code when one
// is known, and captures the last raw output line for quick inspection.
func (s *Session) MarkCompleted(exitCode *int) {
	s.CompletedAt = time.Now().UTC().Format(timeLayout)
	s.ExitCode = exitCode
	s.LastRawLine = LastRawLine(s.OutputPath)
}

// StatusLabel classifies a recorded run against the live tmux state.
// A run whose session is gone is "missing"; one whose pane still has a
// live process is "running"; anything else is "completed".
func StatusLabel(exists, running bool) string {
	switch {
	case !exists:
		return "missing"
	case running:
		return "running"
	default:
		return "completed"
	}
}
