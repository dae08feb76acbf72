package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "hnterm"

// ASCII art logo lines for hnterm - canonical definition
var LogoLines = []string{
	"██   ██ ███   ██ ████████ ███████ ██████  ███    ███",
	"██   ██ ████  ██    ██    ██      ██   ██ ████  ████",
	"███████ ██ ██ ██    ██    █████   ██████  ██ ████ ██",
	"██   ██ ██  ████    ██    ██      ██   ██ ██  ██  ██",
	"██   ██ ██   ███    ██    ███████ ██   ██ ██      ██",
}

// Banner gradient colors, bright green fading out
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#00FF41"),
	lipgloss.Color("#00E53A"),
	lipgloss.Color("#00CC34"),
	lipgloss.Color("#00B32D"),
	lipgloss.Color("#009926"),
}

// ShowBanner prints the startup banner to stdout. Only called before the
// TUI takes over the terminal.
func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("    Hacker News terminal client %s", versionTag))
	} else {
		lines = append(lines, "    Hacker News terminal client")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#00FF41")).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(borderStyle.Render(banner)))
}
