package midi

import (
	"tonedrill/fretboard"
	"tonedrill/theory"
)

// StringMap turns string-per-channel note events into fretboard positions.
// String 1 plays on the first channel, string 2 on the next, and so on.
type StringMap struct {
	firstChannel uint8
	openPitches  map[int]uint8
}

// NewStringMap takes the channel of string 1 (1-16) and each string's open
// MIDI pitch in its configured tuning
func NewStringMap(firstChannel int, openPitches map[int]uint8) *StringMap {
	if firstChannel < 1 {
		firstChannel = 1
	}
	m := &StringMap{
		firstChannel: uint8(firstChannel - 1),
		openPitches:  make(map[int]uint8, len(openPitches)),
	}
	for s, p := range openPitches {
		m.openPitches[s] = p
	}
	return m
}

// OpenPitch returns the MIDI pitch of an open string tuned to note: the
// configured pitch moved to the nearest pitch of that class (-6..+5).
func (m *StringMap) OpenPitch(str int, note theory.Note) (int, bool) {
	base, ok := m.openPitches[str]
	if !ok {
		return 0, false
	}
	shift := theory.PitchClass(base).SemitonesTo(note)
	if shift > 5 {
		shift -= theory.NumPitchClasses
	}
	return int(base) + shift, true
}

// Position maps a note event to the string and fret that played it. ok is
// false when the channel belongs to no configured string. The fret may fall
// outside the fretboard; the session validator rejects it.
func (m *StringMap) Position(ev NoteEvent, tuning *fretboard.Tuning) (fretboard.Position, bool) {
	if ev.Channel < m.firstChannel {
		return fretboard.Position{}, false
	}
	str := int(ev.Channel-m.firstChannel) + 1
	open, ok := tuning.Open(str)
	if !ok {
		return fretboard.Position{}, false
	}
	pitch, ok := m.OpenPitch(str, open)
	if !ok {
		return fretboard.Position{}, false
	}
	return fretboard.Position{Str: str, Fret: int(ev.Note) - pitch}, true
}
