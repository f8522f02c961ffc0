package drill

import (
	"tonedrill/fretboard"
	"tonedrill/theory"
)

// EntryKind classifies a log entry
type EntryKind int

const (
	EntryLookup EntryKind = iota // a checked position
	EntryRoot                    // root note set
	EntryError                   // rejected input
	EntryInfo                    // prompt or notice
)

// Entry is one line of the session log. Entries are never modified once
// appended.
type Entry struct {
	Kind     EntryKind
	Message  string
	Position fretboard.Position
	Note     theory.Note
	Interval theory.Interval
	Chord    *theory.Chord // diatonic chord hint, key mode only
	Err      error
}

// OK reports whether the entry is a successful lookup or root change
func (e Entry) OK() bool {
	return e.Kind == EntryLookup || e.Kind == EntryRoot
}
