package fretboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tonedrill/theory"
)

// Position is a fretted spot: string number and fret
type Position struct {
	Str  int `json:"string"`
	Fret int `json:"fret"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Str, p.Fret)
}

// Tuning maps string numbers to open notes. String 1 is the highest string.
type Tuning struct {
	open map[int]theory.Note
}

// StandardTuning returns E A D G B E, string 6 low to string 1 high
func StandardTuning() *Tuning {
	return &Tuning{open: map[int]theory.Note{
		6: theory.E,
		5: theory.A,
		4: theory.D,
		3: theory.G,
		2: theory.B,
		1: theory.E,
	}}
}

// NewTuning builds a tuning from explicit string numbers
func NewTuning(open map[int]theory.Note) (*Tuning, error) {
	if len(open) == 0 {
		return nil, errors.New("tuning has no strings")
	}
	t := &Tuning{open: make(map[int]theory.Note, len(open))}
	for s, n := range open {
		if s <= 0 {
			return nil, fmt.Errorf("string number must be positive, got %d", s)
		}
		t.open[s] = n
	}
	return t, nil
}

// ParseTuning reads open notes listed low to high, separated by commas or
// spaces ("E,A,D,G,B,E"). The first note gets the highest string number.
func ParseTuning(s string) (*Tuning, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errors.New("tuning has no strings")
	}
	open := make(map[int]theory.Note, len(fields))
	for i, f := range fields {
		n, err := theory.ParseNote(f)
		if err != nil {
			return nil, fmt.Errorf("parse tuning: %w", err)
		}
		open[len(fields)-i] = n
	}
	return &Tuning{open: open}, nil
}

// FromNames builds a tuning from config-style string names
func FromNames(names map[int]string) (*Tuning, error) {
	open := make(map[int]theory.Note, len(names))
	for s, name := range names {
		n, err := theory.ParseNote(name)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", s, err)
		}
		open[s] = n
	}
	return NewTuning(open)
}

// Open returns the open note of a string
func (t *Tuning) Open(str int) (theory.Note, bool) {
	n, ok := t.open[str]
	return n, ok
}

// Has reports whether the string exists in this tuning
func (t *Tuning) Has(str int) bool {
	_, ok := t.open[str]
	return ok
}

// Set retunes an existing string
func (t *Tuning) Set(str int, note theory.Note) error {
	if !t.Has(str) {
		return fmt.Errorf("%w: %d", ErrUnknownString, str)
	}
	t.open[str] = note
	return nil
}

// Len is the number of strings
func (t *Tuning) Len() int {
	return len(t.open)
}

// Strings returns the string numbers from lowest-pitched (highest number) down
func (t *Tuning) Strings() []int {
	out := make([]int, 0, len(t.open))
	for s := range t.open {
		out = append(out, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Names returns string number -> canonical open note name
func (t *Tuning) Names() map[int]string {
	out := make(map[int]string, len(t.open))
	for s, n := range t.open {
		out[s] = n.String()
	}
	return out
}

// Clone returns an independent copy
func (t *Tuning) Clone() *Tuning {
	c := &Tuning{open: make(map[int]theory.Note, len(t.open))}
	for s, n := range t.open {
		c.open[s] = n
	}
	return c
}

// Resolve returns the note at a position. The string must exist.
func (t *Tuning) Resolve(p Position) (theory.Note, error) {
	open, ok := t.open[p.Str]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownString, p.Str)
	}
	return theory.ResolveNote(open, p.Fret), nil
}

// String lists open notes low to high, e.g. "E A D G B E"
func (t *Tuning) String() string {
	var parts []string
	for _, s := range t.Strings() {
		parts = append(parts, t.open[s].String())
	}
	return strings.Join(parts, " ")
}
