package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tmuxdash/tmuxdash/internal/util"
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("tmuxdash"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderSessionList())
	b.WriteString("\n")
	b.WriteString(m.renderPreview())
	b.WriteString("\n")
	b.WriteString(m.renderPrompt())
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.styles.HelpBar.Render("? help"))
	}

	return b.String()
}

func (m Model) renderSessionList() string {
	if len(m.filtered) == 0 {
		if m.filter != "" {
			return m.styles.Muted.Render("no sessions match " + fmt.Sprintf("%q", m.filter))
		}
		return m.styles.Muted.Render("no tmux sessions — press n to create one")
	}

	var rows []string
	for i, s := range m.filtered {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		badge := ""
		if s.Attached {
			badge += m.styles.Attached.Render(" [attached]")
		}
		if s.IsAgentSession {
			label := " [agent]"
			if s.Agent != "" {
				label = " [" + s.Agent + "]"
			}
			badge += m.styles.Agent.Render(label)
		}

		line := fmt.Sprintf("%s%-24s %s", marker, util.TruncateString(s.Name, 24),
			m.styles.Muted.Render(fmt.Sprintf("%d window(s)", s.Windows)))
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Normal.Render(line)
		}
		rows = append(rows, line+badge)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderPreview() string {
	sel := m.selected()
	if sel == nil {
		return ""
	}

	title := m.styles.PreviewTitle.Render("preview: " + sel.Name)

	width := m.width - 4
	if width < 20 {
		width = 76
	}

	body := m.styles.Muted.Render("(empty)")
	if len(m.preview) > 0 {
		lines := make([]string, len(m.preview))
		for i, l := range m.preview {
			lines[i] = util.TruncateANSI(l, width-2)
		}
		body = strings.Join(lines, "\n")
	}
	box := m.styles.PreviewBox.Width(width).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case modeFilter:
		return m.styles.FilterPrompt.Render("filter: ") + m.input.View() + "\n"
	case modeNewSession:
		return m.styles.FilterPrompt.Render("new session: ") + m.input.View() + "\n"
	case modeRename:
		return m.styles.FilterPrompt.Render("rename to: ") + m.input.View() + "\n"
	case modeConfirmKill:
		sel := m.selected()
		name := ""
		if sel != nil {
			name = sel.Name
		}
		return m.styles.FilterPrompt.Render(fmt.Sprintf("kill %s? (y/N) ", name)) + "\n"
	}
	return ""
}

func (m Model) renderStatusLine() string {
	parts := []string{fmt.Sprintf("%d session(s)", len(m.filtered))}
	parts = append(parts, "sort: "+m.sortMode.Label())
	if m.filter != "" {
		parts = append(parts, "filter: "+m.filter)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.styles.StatusBar.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderHelp() string {
	entries := []struct{ key, desc string }{
		{"enter", "attach"},
		{"n", "new session"},
		{"x", "kill"},
		{"r", "rename"},
		{"p", "rename to project dir"},
		{"/", "filter"},
		{"s", "cycle sort"},
		{"R", "refresh"},
		{"j/k", "move"},
		{"q", "quit"},
	}

	var parts []string
	for _, e := range entries {
		parts = append(parts, m.styles.HelpKey.Render(e.key)+" "+m.styles.HelpBar.Render(e.desc))
	}
	return strings.Join(parts, "   ")
}
