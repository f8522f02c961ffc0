package midi

// NoteEvent is sent when a note is played on a MIDI guitar
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8 // 0-15, as reported by gomidi
}

// Controller is the interface for MIDI input devices
type Controller interface {
	ID() string
	NoteEvents() <-chan NoteEvent
	Close() error
}
