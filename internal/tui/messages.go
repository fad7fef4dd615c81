package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tmuxdash/tmuxdash/internal/session"
)

type tickMsg time.Time

type sessionsMsg struct {
	sessions []session.Info
}

type previewMsg struct {
	session string
	lines   []string
}

type errMsg struct {
	err error
}

type statusMsg string

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadSessions fetches the session list off the update loop.
func (m Model) loadSessions() tea.Cmd {
	mgr, mode := m.manager, m.sortMode
	return func() tea.Msg {
		sessions, err := mgr.List(mode)
		if err != nil {
			return errMsg{err}
		}
		return sessionsMsg{sessions}
	}
}

// loadPreview captures the selected session's pane for the preview panel.
func (m Model) loadPreview() tea.Cmd {
	sel := m.selected()
	if sel == nil {
		return nil
	}
	mgr, name, lines := m.manager, sel.Name, m.previewLines
	return func() tea.Msg {
		return previewMsg{session: name, lines: mgr.CapturePane(name, lines)}
	}
}

func (m Model) killSession(name string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		if err := mgr.Kill(name); err != nil {
			return errMsg{err}
		}
		return statusMsg("killed " + name)
	}
}

func (m Model) createSession(name string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		if err := mgr.CreateWithDir(name, ""); err != nil {
			return errMsg{err}
		}
		return statusMsg("created " + name)
	}
}

func (m Model) renameSession(oldName, newName string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		if err := mgr.Rename(oldName, newName); err != nil {
			return errMsg{err}
		}
		return statusMsg("renamed " + oldName + " to " + newName)
	}
}

func (m Model) renameToProject(name string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		newName, err := mgr.RenameToProject(name)
		if err != nil {
			return errMsg{err}
		}
		if newName == "" {
			return statusMsg("no rename needed")
		}
		return statusMsg("renamed " + name + " to " + newName)
	}
}
