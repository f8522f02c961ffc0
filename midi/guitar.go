package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// GuitarController handles a MIDI guitar or pickup converter
type GuitarController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	mu       sync.Mutex // guards closed and sends on noteChan
	closed   bool
	noteChan chan NoteEvent
}

// NewGuitarController opens inPort and forwards note-ons
func NewGuitarController(id string, inPort drivers.In) (*GuitarController, error) {
	g := &GuitarController{
		id:       id,
		inPort:   inPort,
		noteChan: make(chan NoteEvent, 32),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8
			if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
				g.deliver(NoteEvent{Note: note, Velocity: velocity, Channel: channel})
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		g.stopFunc = stop
	}

	return g, nil
}

// deliver queues ev unless the buffer is full or the controller is closed.
// The driver may still call in while Close runs.
func (g *GuitarController) deliver(ev NoteEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	select {
	case g.noteChan <- ev:
	default:
	}
}

func (g *GuitarController) ID() string {
	return g.id
}

func (g *GuitarController) NoteEvents() <-chan NoteEvent {
	return g.noteChan
}

// Close stops listening and closes the note channel. Safe to call twice.
func (g *GuitarController) Close() error {
	if g.stopFunc != nil {
		g.stopFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.closed {
		g.closed = true
		close(g.noteChan)
	}
	return nil
}
