package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tmuxdash/tmuxdash/internal/config"
	"github.com/tmuxdash/tmuxdash/internal/session"
)

// stubRunner keeps the manager from touching a real tmux server in tests.
type stubRunner struct{}

func (stubRunner) Output(context.Context, ...string) (string, error) {
	return "", nil
}

func testModel(t *testing.T, sessions ...session.Info) Model {
	t.Helper()

	mgr := session.NewManager(session.WithRunner(stubRunner{}))
	m := NewModel(mgr, config.Default(), nil)
	m.sessions = sessions
	m.applyFilter()
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func TestNavigation(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "alpha"},
		session.Info{Name: "beta"},
		session.Info{Name: "gamma"},
	)

	m = update(t, m, key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	m = update(t, m, key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}

	// Cursor does not move past the ends.
	m = update(t, m, key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d at top after k, want 0", m.cursor)
	}

	m = update(t, m, key("G"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d after G, want 2", m.cursor)
	}
	m = update(t, m, key("j"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d at bottom after j, want 2", m.cursor)
	}

	m = update(t, m, key("g"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", m.cursor)
	}
}

func TestEnterRequestsAttach(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "alpha"},
		session.Info{Name: "beta"},
	)
	m = update(t, m, key("j"))

	next, cmd := m.Update(key("enter"))
	m = next.(Model)

	if m.result.Action != ActionAttach || m.result.Session != "beta" {
		t.Errorf("result = %+v, want attach beta", m.result)
	}
	if cmd == nil {
		t.Fatal("enter did not produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter's command is not tea.Quit")
	}
}

func TestEnterWithNoSessionsDoesNothing(t *testing.T) {
	m := testModel(t)
	next, cmd := m.Update(key("enter"))
	m = next.(Model)

	if m.result.Action != ActionNone {
		t.Errorf("result = %+v, want none", m.result)
	}
	if cmd != nil {
		t.Error("enter produced a command with no sessions")
	}
}

func TestFilter(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "api-server"},
		session.Info{Name: "web"},
		session.Info{Name: "api-worker"},
	)

	m = update(t, m, key("/"))
	if m.mode != modeFilter {
		t.Fatalf("mode = %d after /, want filter", m.mode)
	}

	// Filter narrows live as the user types.
	m = update(t, m, key("a"))
	m = update(t, m, key("p"))
	m = update(t, m, key("i"))
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d sessions for 'api', want 2", len(m.filtered))
	}

	m = update(t, m, key("enter"))
	if m.mode != modeNormal {
		t.Errorf("mode = %d after enter, want normal", m.mode)
	}
	if m.filter != "api" {
		t.Errorf("filter = %q, want api", m.filter)
	}

	// Escape clears the committed filter.
	m = update(t, m, key("esc"))
	if m.filter != "" || len(m.filtered) != 3 {
		t.Errorf("filter = %q with %d sessions after esc, want all 3", m.filter, len(m.filtered))
	}
}

func TestFilterGlobPattern(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "api-server"},
		session.Info{Name: "api-worker"},
		session.Info{Name: "server-api"},
	)

	m.filter = "api-*"
	m.applyFilter()
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d sessions for 'api-*', want 2", len(m.filtered))
	}

	// An unclosed character class matches nothing instead of erroring.
	m.filter = "api-["
	m.applyFilter()
	if len(m.filtered) != 0 {
		t.Errorf("filtered = %d sessions for a broken pattern, want 0", len(m.filtered))
	}
}

func TestFilterKeepsCursorValid(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "alpha"},
		session.Info{Name: "beta"},
		session.Info{Name: "gamma"},
	)
	m = update(t, m, key("G"))

	m = update(t, m, key("/"))
	m = update(t, m, key("a"))
	m = update(t, m, key("l"))

	if m.cursor >= len(m.filtered) {
		t.Errorf("cursor = %d beyond %d filtered sessions", m.cursor, len(m.filtered))
	}
}

func TestConfirmKill(t *testing.T) {
	t.Run("y kills", func(t *testing.T) {
		m := testModel(t, session.Info{Name: "doomed"})
		m = update(t, m, key("x"))
		if m.mode != modeConfirmKill {
			t.Fatalf("mode = %d after x, want confirm", m.mode)
		}

		next, cmd := m.Update(key("y"))
		m = next.(Model)
		if m.mode != modeNormal {
			t.Errorf("mode = %d after y, want normal", m.mode)
		}
		if cmd == nil {
			t.Error("confirming kill produced no command")
		}
	})

	t.Run("anything else cancels", func(t *testing.T) {
		m := testModel(t, session.Info{Name: "spared"})
		m = update(t, m, key("x"))

		next, cmd := m.Update(key("n"))
		m = next.(Model)
		if m.mode != modeNormal {
			t.Errorf("mode = %d after n, want normal", m.mode)
		}
		if cmd != nil {
			t.Error("cancelled kill still produced a command")
		}
	})
}

func TestNewSessionPrompt(t *testing.T) {
	m := testModel(t, session.Info{Name: "existing"})

	m = update(t, m, key("n"))
	if m.mode != modeNewSession {
		t.Fatalf("mode = %d after n, want new-session", m.mode)
	}
	// The prompt is pre-filled with a generated name.
	if m.input.Value() == "" {
		t.Error("new-session prompt has no suggested name")
	}

	m = update(t, m, key("esc"))
	if m.mode != modeNormal || m.input.Value() != "" {
		t.Errorf("esc did not reset the prompt: mode=%d input=%q", m.mode, m.input.Value())
	}
}

func TestRenamePrompt(t *testing.T) {
	m := testModel(t, session.Info{Name: "oldname"})

	m = update(t, m, key("r"))
	if m.mode != modeRename {
		t.Fatalf("mode = %d after r, want rename", m.mode)
	}
	if m.input.Value() != "oldname" {
		t.Errorf("rename prompt = %q, want oldname", m.input.Value())
	}

	m = update(t, m, key("backspace"))
	if m.input.Value() != "oldnam" {
		t.Errorf("input = %q after backspace, want oldnam", m.input.Value())
	}

	// Committing the unchanged name is a no-op.
	m.input.SetValue("oldname")
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if cmd != nil {
		t.Error("renaming to the same name produced a command")
	}
	if m.mode != modeNormal {
		t.Errorf("mode = %d after enter, want normal", m.mode)
	}
}

func TestSortCycle(t *testing.T) {
	m := testModel(t, session.Info{Name: "a"})
	initial := m.sortMode

	next, cmd := m.Update(key("s"))
	m = next.(Model)
	if m.sortMode == initial {
		t.Error("sort mode did not change")
	}
	if cmd == nil {
		t.Error("sort change did not reload sessions")
	}
	if !strings.Contains(m.status, "sort:") {
		t.Errorf("status = %q, want sort announcement", m.status)
	}
}

func TestSessionsMsgRefreshesList(t *testing.T) {
	m := testModel(t, session.Info{Name: "stale"})

	m = update(t, m, sessionsMsg{sessions: []session.Info{
		{Name: "fresh-1"},
		{Name: "fresh-2"},
	}})

	if len(m.filtered) != 2 || m.filtered[0].Name != "fresh-1" {
		t.Errorf("filtered = %+v, want fresh sessions", m.filtered)
	}
}

func TestStalePreviewDropped(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "alpha"},
		session.Info{Name: "beta"},
	)

	// Preview arrives for a session the cursor is no longer on.
	m = update(t, m, previewMsg{session: "beta", lines: []string{"output"}})
	if m.preview != nil {
		t.Errorf("preview = %v for a non-selected session, want nil", m.preview)
	}

	m = update(t, m, previewMsg{session: "alpha", lines: []string{"output"}})
	if len(m.preview) != 1 {
		t.Errorf("preview = %v for the selected session, want one line", m.preview)
	}
}

func TestHelpToggle(t *testing.T) {
	m := testModel(t)

	m = update(t, m, key("?"))
	if !m.showHelp {
		t.Error("help not shown after ?")
	}
	if !strings.Contains(m.View(), "attach") {
		t.Error("help view does not mention attach")
	}

	m = update(t, m, key("?"))
	if m.showHelp {
		t.Error("help still shown after second ?")
	}
}

func TestViewRendersSessions(t *testing.T) {
	m := testModel(t,
		session.Info{Name: "api-server", Attached: true, Windows: 3},
		session.Info{Name: "claude-work", IsAgentSession: true, Agent: "codex"},
	)

	view := m.View()
	if !strings.Contains(view, "api-server") {
		t.Error("view does not list api-server")
	}
	if !strings.Contains(view, "attached") {
		t.Error("view does not mark the attached session")
	}
	if !strings.Contains(view, "codex") {
		t.Error("view does not name the detected agent")
	}
}

func TestViewEmptyState(t *testing.T) {
	m := testModel(t)
	if !strings.Contains(m.View(), "no tmux sessions") {
		t.Error("empty view does not explain there are no sessions")
	}
}
