package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonedrill/fretboard"
	"tonedrill/theme"
)

func TestRenderFretboardLayout(t *testing.T) {
	sym := theme.New(theme.DefaultPalette()).Symbols
	out := RenderFretboard(fretboard.StandardTuning(), 5, nil, sym)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, "    E  ║───│───│───│───│───│", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "    B "))
	assert.True(t, strings.HasPrefix(lines[5], "    E "))
	assert.Contains(t, lines[6], "3")
	assert.Contains(t, lines[6], "5")
}

func TestRenderFretboardMarkers(t *testing.T) {
	sym := theme.New(theme.DefaultPalette()).Symbols
	markers := []Marker{
		{Pos: fretboard.Position{Str: 6, Fret: 3}, Symbol: sym.Pressed, Color: lipgloss.Color("#ffffff")},
		{Pos: fretboard.Position{Str: 5, Fret: 0}, Symbol: sym.Root, Color: lipgloss.Color("#ffffff")},
	}
	out := RenderFretboard(fretboard.StandardTuning(), 5, markers, sym)
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[5], "●")
	assert.Contains(t, lines[4], "◆")
	assert.NotContains(t, lines[0], "●")
}

func TestRenderLegend(t *testing.T) {
	out := RenderLegend([]LegendItem{
		{Color: lipgloss.Color("#ffffff"), Symbol: '◆', Label: "root A"},
		{Color: lipgloss.Color("#ffffff"), Symbol: '●', Label: "E P5"},
	})
	assert.Equal(t, "◆ root A   ● E P5", out)
	assert.Empty(t, RenderLegend(nil))
}
