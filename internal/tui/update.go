package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadSessions(), m.loadPreview(), m.tick())

	case sessionsMsg:
		m.sessions = msg.sessions
		m.err = nil
		m.applyFilter()
		return m, m.loadPreview()

	case previewMsg:
		// Stale previews for a session the cursor already left are dropped.
		if sel := m.selected(); sel != nil && sel.Name == msg.session {
			m.preview = msg.lines
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, m.loadSessions()

	case errMsg:
		m.err = msg.err
		m.logger.Error("dashboard operation failed", "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.preview = nil
			return m, m.loadPreview()
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.preview = nil
			return m, m.loadPreview()
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		m.preview = nil
		return m, m.loadPreview()

	case "G", "end":
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
		m.preview = nil
		return m, m.loadPreview()

	case "enter":
		if sel := m.selected(); sel != nil {
			m.result = Result{Action: ActionAttach, Session: sel.Name}
			return m, tea.Quit
		}
		return m, nil

	case "n":
		m.mode = modeNewSession
		m.openPrompt(m.manager.GenerateName(m.sessions))
		return m, nil

	case "x", "d":
		if m.selected() != nil {
			m.mode = modeConfirmKill
		}
		return m, nil

	case "r":
		if sel := m.selected(); sel != nil {
			m.mode = modeRename
			m.openPrompt(sel.Name)
		}
		return m, nil

	case "p":
		if sel := m.selected(); sel != nil {
			return m, m.renameToProject(sel.Name)
		}
		return m, nil

	case "/":
		m.mode = modeFilter
		m.openPrompt(m.filter)
		return m, nil

	case "s":
		m.sortMode = m.sortMode.Next()
		m.status = "sort: " + m.sortMode.Label()
		return m, m.loadSessions()

	case "R", "ctrl+l":
		m.status = ""
		return m, m.loadSessions()

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
		}
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handlePromptKey routes keystrokes while a text prompt or confirmation owns
// the input.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmKill {
		switch msg.String() {
		case "y", "Y":
			m.mode = modeNormal
			if sel := m.selected(); sel != nil {
				return m, m.killSession(sel.Name)
			}
			return m, nil
		default:
			m.mode = modeNormal
			return m, nil
		}
	}

	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeNormal
		m.closePrompt()
		return m, nil

	case "enter":
		return m.commitPrompt()

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// The filter narrows live as the user types.
		if m.mode == modeFilter {
			m.filter = m.input.Value()
			m.applyFilter()
		}
		return m, cmd
	}
}

// openPrompt seeds the shared text input and gives it focus.
func (m *Model) openPrompt(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) commitPrompt() (tea.Model, tea.Cmd) {
	mode, input := m.mode, m.input.Value()
	m.mode = modeNormal
	m.closePrompt()

	switch mode {
	case modeFilter:
		m.filter = input
		m.applyFilter()
		return m, nil

	case modeNewSession:
		if input == "" {
			return m, nil
		}
		return m, m.createSession(input)

	case modeRename:
		sel := m.selected()
		if sel == nil || input == "" || input == sel.Name {
			return m, nil
		}
		return m, m.renameSession(sel.Name, input)
	}

	return m, nil
}
