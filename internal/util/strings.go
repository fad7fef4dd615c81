// Package util holds small string helpers shared by the TUI and CLI output.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// TruncateString caps s at maxLen runes, ending with "..." when anything was
// cut. It counts runes, not columns, so it is only safe for plain text such
// as session names. Styled or wide text goes through TruncateANSI.
func TruncateString(s string, maxLen int) string {
	if maxLen <= len(ellipsis) {
		return ellipsis
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// TruncateANSI caps s at maxWidth visual columns, ending with "..." when
// anything was cut. Escape sequences are kept intact and wide characters
// count by their display width, so pane captures keep their styling.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= len(ellipsis) {
		return ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate counts the tail against maxWidth.
	return ansi.Truncate(s, maxWidth, ellipsis)
}
