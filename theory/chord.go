package theory

import "fmt"

// diatonicSevenths holds the seventh-chord quality built on each degree.
// Only the seven-note scales have an entry.
var diatonicSevenths = map[string][]string{
	ScaleMajor: {"maj7", "m7", "m7", "maj7", "7", "m7", "m7b5"},
	ScaleMinor: {"m7", "m7b5", "Maj7", "m7", "m7", "Maj7", "7"},
}

// Chord is a diatonic seventh chord rooted on a scale degree
type Chord struct {
	Root    Note
	Quality string
	Degree  int
}

func (c Chord) String() string {
	return fmt.Sprintf("%s%s", c.Root, c.Quality)
}

// DiatonicChord returns the seventh chord built on note's degree of scale in key
func DiatonicChord(scale Scale, key, note Note) (Chord, bool) {
	qualities, ok := diatonicSevenths[scale.Name]
	if !ok {
		return Chord{}, false
	}
	degree, ok := scale.DegreeOf(key, note)
	if !ok || degree > len(qualities) {
		return Chord{}, false
	}
	return Chord{Root: note, Quality: qualities[degree-1], Degree: degree}, true
}
