package theory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRootNote is returned for a chord-tone query before a root is set
var ErrMissingRootNote = errors.New("root note not set")

// Mode selects how intervals are named
type Mode string

const (
	ModeSingleTone Mode = "SingleTone"
	ModeChordTone  Mode = "ChordTone"
)

// Modes lists the modes in menu order
func Modes() []Mode {
	return []Mode{ModeSingleTone, ModeChordTone}
}

// ParseMode accepts the mode names and a few short forms
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "singletone", "single", "key":
		return ModeSingleTone, nil
	case "chordtone", "chord", "root":
		return ModeChordTone, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Label is the human-readable mode name
func (m Mode) Label() string {
	switch m {
	case ModeSingleTone:
		return "Single Tone"
	case ModeChordTone:
		return "Chord Tone"
	}
	return string(m)
}

// QueryContext is the reference an interval is measured against
type QueryContext interface {
	Mode() Mode
	Interval(note Note) (Interval, error)
}

// ScaleRelative names notes by their degree in a key's scale
type ScaleRelative struct {
	Key   Note
	Scale Scale
}

func (c ScaleRelative) Mode() Mode { return ModeSingleTone }

// Interval returns "" with no error when note is outside the scale
func (c ScaleRelative) Interval(note Note) (Interval, error) {
	iv, _ := IntervalFromKey(c.Scale, c.Key, note)
	return iv, nil
}

// ChromaticPair names notes by their chromatic distance from a root
type ChromaticPair struct {
	Root    Note
	HasRoot bool
}

func (c ChromaticPair) Mode() Mode { return ModeChordTone }

func (c ChromaticPair) Interval(note Note) (Interval, error) {
	if !c.HasRoot {
		return "", ErrMissingRootNote
	}
	return ChromaticInterval(c.Root, note), nil
}

// WithRoot returns the context with root set
func (c ChromaticPair) WithRoot(root Note) ChromaticPair {
	return ChromaticPair{Root: root, HasRoot: true}
}
