package tui

import (
	"github.com/charmbracelet/lipgloss"

	"hnterm/internal/config"
)

// Matrix-green theme. Colors can be overridden from config via ApplyTheme.
var (
	PrimaryColor = lipgloss.Color("#00FF41")
	MutedColor   = lipgloss.Color("#3E6B48")
	TextColor    = lipgloss.Color("#C8FFD4")
	ErrorColor   = lipgloss.Color("#F87171")
)

var (
	TitleStyle lipgloss.Style

	TabStyle       lipgloss.Style
	ActiveTabStyle lipgloss.Style

	RainStyle    lipgloss.Style
	OverlayStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	SelectedEntryStyle lipgloss.Style
	EntryStyle         lipgloss.Style
	EntryDescStyle     lipgloss.Style

	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// ApplyTheme overrides the theme colors from config and rebuilds the
// derived styles. Empty fields keep their defaults.
func ApplyTheme(c config.UIColors) {
	if c.Primary != "" {
		PrimaryColor = lipgloss.Color(c.Primary)
	}
	if c.Muted != "" {
		MutedColor = lipgloss.Color(c.Muted)
	}
	if c.Text != "" {
		TextColor = lipgloss.Color(c.Text)
	}
	if c.Error != "" {
		ErrorColor = lipgloss.Color(c.Error)
	}
	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		Border(lipgloss.NormalBorder()).
		BorderForeground(MutedColor).
		Align(lipgloss.Center)

	TabStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Padding(0, 1)

	ActiveTabStyle = TabStyle.
		Reverse(true).
		Bold(true)

	RainStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor)

	OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	SelectedEntryStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Reverse(true)

	EntryStyle = lipgloss.NewStyle().
		Foreground(TextColor)

	EntryDescStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(TextColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}
