// Package tui implements the interactive session dashboard with Bubble Tea.
//
// The dashboard lists tmux sessions, previews the selected session's pane,
// and drives creation, renaming, and teardown. Attaching cannot happen while
// the alternate screen is active, so the model records the requested action
// in Result and quits; the command layer performs the attach.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"github.com/tmuxdash/tmuxdash/internal/config"
	"github.com/tmuxdash/tmuxdash/internal/logging"
	"github.com/tmuxdash/tmuxdash/internal/session"
	"github.com/tmuxdash/tmuxdash/internal/tui/styles"
)

// Action is what the dashboard asks the caller to do after it exits.
type Action int

const (
	// ActionNone means the user quit without selecting anything.
	ActionNone Action = iota
	// ActionAttach means the caller should attach to Result.Session.
	ActionAttach
)

// Result is the outcome of a dashboard run.
type Result struct {
	Action  Action
	Session string
}

// inputMode tracks which text prompt, if any, owns keystrokes.
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeNewSession
	modeRename
	modeConfirmKill
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	manager *session.Manager
	logger  *logging.Logger
	styles  styles.Set

	sessions []session.Info
	filtered []session.Info
	cursor   int
	sortMode session.SortMode

	mode   inputMode
	input  textinput.Model // Shared by the filter/new/rename prompts
	filter string          // Committed filter

	preview      []string
	previewLines int
	refreshEvery time.Duration

	width  int
	height int

	status   string
	err      error
	showHelp bool

	result Result
}

// NewModel creates the dashboard model.
func NewModel(mgr *session.Manager, cfg *config.Config, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}

	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = ""

	return Model{
		manager:      mgr,
		logger:       logger.WithComponent("tui"),
		input:        ti,
		styles:       styles.NewSet(styles.ByName(cfg.Dashboard.Theme)),
		sortMode:     session.ParseSortMode(cfg.Dashboard.SortMode),
		previewLines: cfg.Dashboard.PreviewLines,
		refreshEvery: cfg.Dashboard.RefreshInterval(),
	}
}

// Result returns the action the user selected before quitting.
func (m Model) Result() Result {
	return m.result
}

// Init schedules the initial session load and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessions(), m.tick(), textinput.Blink)
}

// selected returns the session under the cursor, or nil.
func (m *Model) selected() *session.Info {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursor]
}

// applyFilter rebuilds the visible list from the full list and the committed
// filter, keeping the cursor on a valid row.
func (m *Model) applyFilter() {
	if m.filter == "" {
		m.filtered = m.sessions
	} else {
		match := filterMatcher(m.filter)
		m.filtered = nil
		for _, s := range m.sessions {
			if match(s.Name) {
				m.filtered = append(m.filtered, s)
			}
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// filterMatcher builds the predicate for a filter string. A filter with glob
// metacharacters matches whole names as a pattern ("api-*"); anything else is
// a case-insensitive substring match.
func filterMatcher(filter string) func(string) bool {
	needle := strings.ToLower(filter)
	if strings.ContainsAny(needle, "*?[{") {
		if g, err := glob.Compile(needle); err == nil {
			return func(name string) bool {
				return g.Match(strings.ToLower(name))
			}
		}
		// An unfinished pattern while the user is still typing matches
		// nothing rather than erroring.
		return func(string) bool { return false }
	}
	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), needle)
	}
}
