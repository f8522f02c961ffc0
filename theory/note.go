package theory

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// NumPitchClasses is the size of the equal-tempered octave
const NumPitchClasses = 12

// ErrInvalidNoteName means a name outside the fixed note table reached the engine
var ErrInvalidNoteName = errors.New("invalid note name")

// Note is a pitch class, 0 = C through 11 = B
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// noteNames holds the canonical spelling of each pitch class.
// Enharmonic pairs share one combined label.
var noteNames = [NumPitchClasses]string{
	"C", "C#/Db", "D", "D#/Eb", "E", "F",
	"F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B",
}

// noteIndex maps every accepted spelling (lower-cased) to its pitch class
var noteIndex = buildNoteIndex()

func buildNoteIndex() map[string]Note {
	idx := make(map[string]Note, NumPitchClasses*3)
	for i, name := range noteNames {
		idx[strings.ToLower(name)] = Note(i)
		// "C#/Db" also accepts "C#" and "Db" on their own
		for _, part := range strings.Split(name, "/") {
			idx[strings.ToLower(part)] = Note(i)
		}
	}
	return idx
}

// Notes returns all twelve pitch classes in ascending order from C
func Notes() []Note {
	out := make([]Note, NumPitchClasses)
	for i := range out {
		out[i] = Note(i)
	}
	return out
}

// NoteNames returns the canonical names in ascending order from C
func NoteNames() []string {
	out := make([]string, NumPitchClasses)
	copy(out, noteNames[:])
	return out
}

// ParseNote returns the pitch class for a note name. Canonical labels
// ("F#/Gb") and single spellings ("F#", "Gb") are accepted, case-insensitive.
func ParseNote(name string) (Note, error) {
	n, ok := noteIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	return n, nil
}

// MustParseNote is ParseNote for table-sourced names; it panics on error
func MustParseNote(name string) Note {
	n, err := ParseNote(name)
	if err != nil {
		panic(err)
	}
	return n
}

// PitchClass reduces any integer to a pitch class
func PitchClass[T constraints.Integer](n T) Note {
	m := int(n % NumPitchClasses)
	if m < 0 {
		m += NumPitchClasses
	}
	return Note(m)
}

// Class returns the integer pitch class in [0,11]
func (n Note) Class() int {
	return int(PitchClass(int(n)))
}

// String returns the canonical spelling
func (n Note) String() string {
	return noteNames[n.Class()]
}

// Transpose moves the note up by semitones (down when negative)
func (n Note) Transpose(semitones int) Note {
	return PitchClass(int(n) + semitones)
}

// SemitonesTo returns the ascending distance from n to other, in [0,11]
func (n Note) SemitonesTo(other Note) int {
	return PitchClass(other.Class() - n.Class() + NumPitchClasses).Class()
}

// ResolveNote returns the note sounded by pressing fret on a string whose open
// note is open. Any fret wraps modulo the octave.
func ResolveNote(open Note, fret int) Note {
	return PitchClass(open.Class() + fret)
}
