// Package styles centralizes lipgloss colors and styles for the dashboard.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette for the dashboard.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color
}

var themes = map[string]Theme{
	"default": {
		Name:      "default",
		Primary:   lipgloss.Color("#A78BFA"), // Purple
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray
	},
	"monokai": {
		Name:      "monokai",
		Primary:   lipgloss.Color("#AE81FF"),
		Secondary: lipgloss.Color("#A6E22E"),
		Warning:   lipgloss.Color("#E6DB74"),
		Error:     lipgloss.Color("#F92672"),
		Muted:     lipgloss.Color("#75715E"),
		Surface:   lipgloss.Color("#272822"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#75715E"),
	},
	"dracula": {
		Name:      "dracula",
		Primary:   lipgloss.Color("#BD93F9"),
		Secondary: lipgloss.Color("#50FA7B"),
		Warning:   lipgloss.Color("#F1FA8C"),
		Error:     lipgloss.Color("#FF5555"),
		Muted:     lipgloss.Color("#6272A4"),
		Surface:   lipgloss.Color("#282A36"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#6272A4"),
	},
	"nord": {
		Name:      "nord",
		Primary:   lipgloss.Color("#B48EAD"),
		Secondary: lipgloss.Color("#A3BE8C"),
		Warning:   lipgloss.Color("#EBCB8B"),
		Error:     lipgloss.Color("#BF616A"),
		Muted:     lipgloss.Color("#4C566A"),
		Surface:   lipgloss.Color("#2E3440"),
		Text:      lipgloss.Color("#ECEFF4"),
		Border:    lipgloss.Color("#4C566A"),
	},
}

// ByName returns the named theme, falling back to "default".
func ByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// Names returns all available theme names.
func Names() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Set bundles the styles the dashboard renders with, built from a Theme.
type Set struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Selected     lipgloss.Style
	Normal       lipgloss.Style
	Attached     lipgloss.Style
	Agent        lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	PreviewBox   lipgloss.Style
	PreviewTitle lipgloss.Style
	HelpBar      lipgloss.Style
	HelpKey      lipgloss.Style
	StatusBar    lipgloss.Style
	FilterPrompt lipgloss.Style
}

// NewSet builds the dashboard style set from a theme.
func NewSet(t Theme) Set {
	return Set{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			Background(t.Surface),
		Normal: lipgloss.NewStyle().
			Foreground(t.Text),
		Attached: lipgloss.NewStyle().
			Foreground(t.Secondary),
		Agent: lipgloss.NewStyle().
			Foreground(t.Warning),
		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),
		Error: lipgloss.NewStyle().
			Foreground(t.Error),
		PreviewBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		PreviewTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		HelpBar: lipgloss.NewStyle().
			Foreground(t.Muted),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		StatusBar: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),
		FilterPrompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warning),
	}
}
