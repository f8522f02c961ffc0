package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"tonedrill/theory"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Fretboard diagram
	String  rune // ─ string line
	Fret    rune // │ fret wire
	Nut     rune // ║ nut
	Pressed rune // ● looked-up position
	Root    rune // ◆ chord-tone root
	Open    rune // ○ open string played

	// Log
	OK    rune // ✓
	Error rune // ✗
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			String:  '─',
			Fret:    '│',
			Nut:     '║',
			Pressed: '●',
			Root:    '◆',
			Open:    '○',

			OK:    '✓',
			Error: '✗',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// IntervalColor spreads the chromatic intervals across the palette so that
// each distance from the reference keeps one colour. Unnamed notes are muted.
func (t *Theme) IntervalColor(iv theory.Interval) lipgloss.Color {
	for semis, named := range theory.ChromaticIntervals() {
		if named == iv {
			norm := 0.3 + 0.7*float64(semis)/float64(theory.NumPitchClasses-1)
			return rgbToLipgloss(t.Palette.Lookup(norm))
		}
	}
	return t.Muted()
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
