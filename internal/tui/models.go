package tui

// Mode is the input mode the key handler dispatches on.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMenu
	ModeSummary
	ModePalette
	ModeSearch
)
