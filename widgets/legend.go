package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderDot renders a single coloured symbol
func RenderDot(color lipgloss.Color, symbol rune) string {
	return lipgloss.NewStyle().Foreground(color).Render(string(symbol))
}

// LegendItem explains one marker on the fretboard
type LegendItem struct {
	Color  lipgloss.Color
	Symbol rune
	Label  string
}

// RenderLegend lays the items out on one line: "◆ root A   ● G P5"
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, RenderDot(it.Color, it.Symbol)+" "+it.Label)
	}
	return strings.Join(parts, "   ")
}
