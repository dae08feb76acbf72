package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"hnterm/internal/hn"
)

// CommandKind tags a palette entry. All dispatch happens in the key
// handler's execute switch; entries carry data, not behavior.
type CommandKind int

const (
	CommandOpenStory CommandKind = iota
	CommandOpenComments
	CommandSummarize
	CommandSearch
	CommandSwitchSection
	CommandRefresh
	CommandRefreshAll
	CommandQuit
)

// Command is one palette entry. Section is only meaningful for
// CommandSwitchSection.
type Command struct {
	Kind        CommandKind
	Section     hn.Section
	Name        string
	Description string
}

func paletteCommands() []Command {
	cmds := []Command{
		{Kind: CommandOpenStory, Name: "Open in Browser", Description: "Open the selected story in your default browser"},
		{Kind: CommandOpenComments, Name: "Open Comments", Description: "Open the comments for the selected story"},
		{Kind: CommandSummarize, Name: "Summarize", Description: "Get an AI summary of the selected story"},
		{Kind: CommandSearch, Name: "Search", Description: "Filter stories by text"},
	}
	for _, section := range hn.Sections() {
		cmds = append(cmds, Command{
			Kind:        CommandSwitchSection,
			Section:     section,
			Name:        "Switch to " + section.String(),
			Description: "Switch to the " + section.String() + " section",
		})
	}
	return append(cmds,
		Command{Kind: CommandRefresh, Name: "Refresh", Description: "Refresh the current section"},
		Command{Kind: CommandRefreshAll, Name: "Refresh All", Description: "Refresh all sections"},
		Command{Kind: CommandQuit, Name: "Quit", Description: "Exit the application"},
	)
}

// Palette holds the command list and its current fuzzy-filtered view.
type Palette struct {
	commands []Command
	filtered []int
	selected int
}

func newPalette() *Palette {
	p := &Palette{commands: paletteCommands()}
	p.Filter("")
	return p
}

// Filter narrows the entries by fuzzy-matching the query against command
// names and descriptions. An empty query shows everything. Selection
// resets to the top.
func (p *Palette) Filter(query string) {
	query = strings.TrimSpace(query)
	p.selected = 0

	if query == "" {
		p.filtered = make([]int, len(p.commands))
		for i := range p.commands {
			p.filtered[i] = i
		}
		return
	}

	matches := fuzzy.FindFrom(query, commandSource(p.commands))
	p.filtered = make([]int, len(matches))
	for i, m := range matches {
		p.filtered[i] = m.Index
	}
}

func (p *Palette) Next() {
	if len(p.filtered) > 0 {
		p.selected = (p.selected + 1) % len(p.filtered)
	}
}

func (p *Palette) Prev() {
	if len(p.filtered) > 0 {
		p.selected = (p.selected + len(p.filtered) - 1) % len(p.filtered)
	}
}

// Selected returns the highlighted command, if any entry is visible.
func (p *Palette) Selected() (Command, bool) {
	if len(p.filtered) == 0 {
		return Command{}, false
	}
	return p.commands[p.filtered[p.selected]], true
}

// Visible returns the filtered entries in rank order.
func (p *Palette) Visible() []Command {
	out := make([]Command, len(p.filtered))
	for i, idx := range p.filtered {
		out[i] = p.commands[idx]
	}
	return out
}

// SelectedIndex is the position of the highlight within Visible.
func (p *Palette) SelectedIndex() int {
	return p.selected
}

type commandSource []Command

func (s commandSource) String(i int) string {
	return s[i].Name + " " + s[i].Description
}

func (s commandSource) Len() int { return len(s) }
