package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tonedrill/fretboard"
	"tonedrill/theme"
)

// inlay frets get a number under the diagram
var inlays = map[int]bool{3: true, 5: true, 7: true, 9: true, 12: true, 15: true, 17: true, 19: true, 21: true}

const labelWidth = 6

// Marker highlights one position on the diagram
type Marker struct {
	Pos    fretboard.Position
	Symbol rune
	Color  lipgloss.Color
}

// RenderFretboard draws frets 0..frets of every string, highest-pitched
// string (number 1) on top, like tablature.
func RenderFretboard(tuning *fretboard.Tuning, frets int, markers []Marker, sym theme.Symbols) string {
	byPos := make(map[fretboard.Position]Marker, len(markers))
	for _, m := range markers {
		byPos[m.Pos] = m
	}

	strs := tuning.Strings()
	var lines []string
	for i := len(strs) - 1; i >= 0; i-- {
		str := strs[i]
		open, _ := tuning.Open(str)

		var line strings.Builder
		line.WriteString(fmt.Sprintf("%*s ", labelWidth-1, open.String()))

		if m, ok := byPos[fretboard.Position{Str: str, Fret: 0}]; ok {
			line.WriteString(RenderDot(m.Color, m.Symbol))
		} else {
			line.WriteRune(' ')
		}
		line.WriteRune(sym.Nut)

		for fret := 1; fret <= frets; fret++ {
			line.WriteRune(sym.String)
			if m, ok := byPos[fretboard.Position{Str: str, Fret: fret}]; ok {
				line.WriteString(RenderDot(m.Color, m.Symbol))
			} else {
				line.WriteRune(sym.String)
			}
			line.WriteRune(sym.String)
			line.WriteRune(sym.Fret)
		}
		lines = append(lines, line.String())
	}

	lines = append(lines, fretNumbers(frets))
	return strings.Join(lines, "\n")
}

func fretNumbers(frets int) string {
	var out strings.Builder
	out.WriteString(strings.Repeat(" ", labelWidth+2))
	for fret := 1; fret <= frets; fret++ {
		if inlays[fret] {
			out.WriteString(fmt.Sprintf("%-4s", fmt.Sprintf("%2d", fret)))
		} else {
			out.WriteString("    ")
		}
	}
	return strings.TrimRight(out.String(), " ")
}
