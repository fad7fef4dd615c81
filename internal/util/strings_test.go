package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"fits untouched", "api-server", 24, "api-server"},
		{"exact length untouched", "worker", 6, "worker"},
		{"one over gets cut", "worker2", 6, "wor..."},
		{"long name cut", "a-rather-long-session-name", 12, "a-rather-..."},
		{"width too small for anything but the tail", "worker", 3, "..."},
		{"zero width", "worker", 0, "..."},
		{"negative width", "worker", -1, "..."},
		{"empty input", "", 8, ""},
		{"runes counted not bytes", "日本語テスト", 5, "日本..."},
		{"mixed ascii and cjk", "logs日本語tail", 9, "logs日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	t.Run("plain text cut to width", func(t *testing.T) {
		got := TruncateANSI("hello world", 8)
		if got != "hello..." {
			t.Errorf("TruncateANSI() = %q, want %q", got, "hello...")
		}
	})

	t.Run("tiny width collapses to ellipsis", func(t *testing.T) {
		for _, w := range []int{3, 1, 0} {
			if got := TruncateANSI("hello", w); got != "..." {
				t.Errorf("TruncateANSI(width=%d) = %q, want %q", w, got, "...")
			}
		}
	})

	t.Run("styled text that fits is returned verbatim", func(t *testing.T) {
		in := styled.Render("ok")
		if got := TruncateANSI(in, 20); got != in {
			t.Errorf("TruncateANSI() rewrote a fitting string: %q", got)
		}
	})

	t.Run("styled text never exceeds the column budget", func(t *testing.T) {
		got := TruncateANSI(styled.Render("a long styled preview line"), 10)
		if w := lipgloss.Width(got); w > 10 {
			t.Errorf("TruncateANSI() width = %d, want <= 10", w)
		}
	})

	t.Run("wide characters measured in columns", func(t *testing.T) {
		got := TruncateANSI("日本語テスト", 8)
		if w := lipgloss.Width(got); w > 8 {
			t.Errorf("TruncateANSI() width = %d, want <= 8", w)
		}
	})
}
