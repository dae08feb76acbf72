package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnterm/internal/hn"
)

func paletteNames(p *Palette) []string {
	var names []string
	for _, cmd := range p.Visible() {
		names = append(names, cmd.Name)
	}
	return names
}

func TestPaletteShowsEverythingByDefault(t *testing.T) {
	p := newPalette()

	names := paletteNames(p)
	assert.Contains(t, names, "Open in Browser")
	assert.Contains(t, names, "Switch to Jobs")
	assert.Contains(t, names, "Quit")
	assert.Len(t, names, 11)
}

func TestPaletteFilter(t *testing.T) {
	p := newPalette()

	p.Filter("refresh")
	names := paletteNames(p)
	assert.Contains(t, names, "Refresh")
	assert.Contains(t, names, "Refresh All")
	assert.NotContains(t, names, "Quit")

	p.Filter("")
	assert.Len(t, paletteNames(p), 11)
}

func TestPaletteFilterNoMatches(t *testing.T) {
	p := newPalette()

	p.Filter("xqzv")
	assert.Empty(t, p.Visible())

	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPaletteSelectionWraps(t *testing.T) {
	p := newPalette()
	p.Filter("refresh")
	require.Len(t, p.Visible(), 2)

	first, ok := p.Selected()
	require.True(t, ok)

	p.Next()
	second, ok := p.Selected()
	require.True(t, ok)
	assert.NotEqual(t, first.Name, second.Name)

	p.Next()
	wrapped, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, first.Name, wrapped.Name)

	p.Prev()
	back, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, second.Name, back.Name)
}

func TestPaletteFilterResetsSelection(t *testing.T) {
	p := newPalette()
	p.Next()
	p.Next()

	p.Filter("switch")
	assert.Equal(t, 0, p.SelectedIndex())
}

func TestPaletteSectionCommandsCarrySection(t *testing.T) {
	p := newPalette()

	var found bool
	for _, cmd := range p.Visible() {
		if cmd.Name == "Switch to Ask" {
			found = true
			assert.Equal(t, CommandSwitchSection, cmd.Kind)
			assert.Equal(t, hn.SectionAsk, cmd.Section)
		}
	}
	assert.True(t, found, "palette should list a switch command per section")
}
