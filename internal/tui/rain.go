package tui

import (
	"math/rand"
	"strings"
	"time"

	"hnterm/internal/fetch"
)

const (
	rainGlyphs      = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ1234567890"
	rainStreamLen   = 20
	rainBlinkPeriod = 500 * time.Millisecond
	rainLabel       = "Loading..."
)

// MatrixRain is the busy animation shown while sections load: one glyph
// stream per terminal column, each falling at its own speed, with a
// blinking label box in the center. It implements fetch.Indicator, so
// the orchestrator drives it once per tick regardless of fetch progress.
type MatrixRain struct {
	width, height int
	streams       [][]rune
	speeds        []float64
	positions     []float64
	blinkOn       bool
	blinkElapsed  time.Duration
}

func NewMatrixRain(width, height int) *MatrixRain {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	glyphs := []rune(rainGlyphs)
	m := &MatrixRain{
		width:     width,
		height:    height,
		streams:   make([][]rune, width),
		speeds:    make([]float64, width),
		positions: make([]float64, width),
		blinkOn:   true,
	}
	for i := range width {
		stream := make([]rune, rainStreamLen)
		for j := range stream {
			stream[j] = glyphs[rand.Intn(len(glyphs))]
		}
		m.streams[i] = stream
		m.speeds[i] = 0.1 + rand.Float64()*0.9
		// Streams start above the screen and fall in.
		m.positions[i] = -rand.Float64() * rainStreamLen
	}
	return m
}

// Advance integrates elapsed wall time into the stream positions and the
// label blink timer.
func (m *MatrixRain) Advance(elapsed time.Duration) {
	dt := elapsed.Seconds()
	for i := range m.positions {
		m.positions[i] += m.speeds[i] * dt * 10
		if m.positions[i] > rainStreamLen {
			m.positions[i] = -rainStreamLen
		}
	}

	m.blinkElapsed += elapsed
	if m.blinkElapsed >= rainBlinkPeriod {
		m.blinkOn = !m.blinkOn
		m.blinkElapsed = 0
	}
}

// Render composes the current frame onto the surface.
func (m *MatrixRain) Render(s fetch.Surface) {
	s.SetContent(m.frame())
}

func (m *MatrixRain) frame() string {
	rows := max(m.height-2, 1)

	grid := make([][]rune, rows)
	for y := range rows {
		row := make([]rune, m.width)
		for x := range m.width {
			head := int(m.positions[x])
			if y > head {
				row[x] = ' '
				continue
			}
			idx := ((y-head)%rainStreamLen + rainStreamLen) % rainStreamLen
			row[x] = m.streams[x][idx]
		}
		grid[y] = row
	}

	m.spliceLabelBox(grid)

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return RainStyle.Render(strings.Join(lines, "\n"))
}

// spliceLabelBox overwrites the center of the grid with a small bordered
// box. The border is always drawn; the label text blinks.
func (m *MatrixRain) spliceLabelBox(grid [][]rune) {
	label := rainLabel
	if !m.blinkOn {
		label = strings.Repeat(" ", len(rainLabel))
	}

	box := []string{
		"┌" + strings.Repeat("─", len(rainLabel)+2) + "┐",
		"│ " + label + " │",
		"└" + strings.Repeat("─", len(rainLabel)+2) + "┘",
	}

	boxWidth := len(rainLabel) + 4
	startY := (len(grid) - len(box)) / 2
	startX := (m.width - boxWidth) / 2
	if startY < 0 || startX < 0 {
		return
	}

	for i, line := range box {
		for j, r := range []rune(line) {
			grid[startY+i][startX+j] = r
		}
	}
}
