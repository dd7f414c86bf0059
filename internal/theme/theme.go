package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the preview title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorStatusStyle replaces StatusBarStyle when the last action failed.
var ErrorStatusStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// PanelStyle wraps the preview content area.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// TabStyle renders an inactive preview tab.
var TabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorGray)

// ActiveTabStyle highlights the selected preview tab.
var ActiveTabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true).
	Foreground(ColorBlue).
	Underline(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// LabelStyle renders field names such as "To:" in summaries.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// MethodStyle returns a color-coded style for a launch method.
func MethodStyle(method string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch method {
	case "mailto":
		return base.Foreground(ColorBlue)
	case "eml":
		return base.Foreground(ColorMagenta)
	case "imap":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// ContentTypeStyle returns a style for a body content type.
func ContentTypeStyle(contentType string) lipgloss.Style {
	base := lipgloss.NewStyle().Italic(true)

	switch contentType {
	case "text/html":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// Use switches the package styles to the named theme. "plain" drops all
// colors; any other name keeps the default palette.
func Use(name string) {
	if name != "plain" {
		return
	}
	plain := lipgloss.NewStyle()
	HeaderStyle = plain.Bold(true)
	StatusBarStyle = plain
	ErrorStatusStyle = plain.Bold(true)
	PanelStyle = plain.Border(lipgloss.NormalBorder())
	TabStyle = plain.Padding(0, 1)
	ActiveTabStyle = plain.Padding(0, 1).Bold(true).Underline(true)
	HelpStyle = plain
	LabelStyle = plain
}
