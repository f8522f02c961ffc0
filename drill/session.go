package drill

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tonedrill/config"
	"tonedrill/fretboard"
	"tonedrill/theory"
)

// ErrModeNotConfirmed is returned for input received before a mode is confirmed
var ErrModeNotConfirmed = errors.New("mode not confirmed")

// ErrRootNotUsed is returned when a root is set outside chord tone mode
var ErrRootNotUsed = errors.New("root note only used in chord tone mode")

// Log messages shown to the player
const (
	msgInvalidFormat     = "Invalid input format. Use string,fret"
	msgInvalidRootFormat = "Invalid root input format"
	msgInvalidString     = "Invalid string number"
	msgFretOutOfRange    = "Fret out of range"
	msgNeedRoot          = "Please input root note first in ChordTone mode"
	msgNeedMode          = "Please confirm a mode first"
	msgRootNotUsed       = "Root note is only used in ChordTone mode"
)

// Root is the chord-tone reference and where it was played
type Root struct {
	Note     theory.Note
	Position fretboard.Position
}

// Session holds one player's tuning, context and message log.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	ID string

	tuning   *fretboard.Tuning
	key      theory.Note
	scale    theory.Scale
	selected theory.Mode
	mode     theory.Mode // empty until confirmed
	root     *Root
	log      []Entry

	logger *slog.Logger
}

// New creates a session in C major, single tone mode pending confirmation
func New(tuning *fretboard.Tuning) *Session {
	return &Session{
		ID:       uuid.New().String(),
		tuning:   tuning.Clone(),
		key:      theory.C,
		scale:    theory.Major,
		selected: theory.ModeSingleTone,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// FromConfig creates a session from the configured tuning, key, scale and mode
func FromConfig(cfg *config.Config) (*Session, error) {
	tuning, err := cfg.BuildTuning()
	if err != nil {
		return nil, err
	}
	key, err := theory.ParseNote(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}
	scale, err := theory.LookupScale(cfg.Scale)
	if err != nil {
		return nil, err
	}
	mode, err := theory.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	s := New(tuning)
	s.key = key
	s.scale = scale
	s.selected = mode
	return s, nil
}

// SetLogger routes session debug output
func (s *Session) SetLogger(l *slog.Logger) {
	s.logger = l.With("session", s.ID)
}

// Tuning returns a copy of the current tuning
func (s *Session) Tuning() *fretboard.Tuning {
	return s.tuning.Clone()
}

// SetTuning retunes one string. name is trimmed and case-folded.
func (s *Session) SetTuning(str int, name string) error {
	n, err := theory.ParseNote(name)
	if err != nil {
		return err
	}
	if err := s.tuning.Set(str, n); err != nil {
		return err
	}
	s.logger.Debug("tuning changed", "string", str, "note", n.String(), "tuning", s.tuning.String())
	return nil
}

// Key returns the key used in single tone mode
func (s *Session) Key() theory.Note { return s.key }

// SetKey changes the key
func (s *Session) SetKey(n theory.Note) {
	s.key = n
	s.logger.Debug("key changed", "key", n.String())
}

// Scale returns the scale used in single tone mode
func (s *Session) Scale() theory.Scale { return s.scale }

// SetScale changes the scale
func (s *Session) SetScale(sc theory.Scale) {
	s.scale = sc
	s.logger.Debug("scale changed", "scale", sc.Name)
}

// SelectedMode is the mode that ConfirmMode will activate
func (s *Session) SelectedMode() theory.Mode { return s.selected }

// SelectMode picks the pending mode without activating it
func (s *Session) SelectMode(m theory.Mode) {
	s.selected = m
}

// Mode returns the confirmed mode, empty before confirmation
func (s *Session) Mode() theory.Mode { return s.mode }

// Confirmed reports whether a mode is active
func (s *Session) Confirmed() bool { return s.mode != "" }

// ConfirmMode activates the selected mode and starts a fresh log
func (s *Session) ConfirmMode() {
	s.mode = s.selected
	s.root = nil
	s.log = nil
	s.logger.Debug("mode confirmed", "mode", string(s.mode))
}

// Root returns the chord-tone root, if set
func (s *Session) Root() (Root, bool) {
	if s.root == nil {
		return Root{}, false
	}
	return *s.root, true
}

// Context returns the query context for the active mode.
// Before confirmation it reflects the selected mode.
func (s *Session) Context() theory.QueryContext {
	mode := s.mode
	if mode == "" {
		mode = s.selected
	}
	if mode == theory.ModeChordTone {
		ctx := theory.ChromaticPair{}
		if s.root != nil {
			ctx = ctx.WithRoot(s.root.Note)
		}
		return ctx
	}
	return theory.ScaleRelative{Key: s.key, Scale: s.scale}
}

// Log returns a copy of the message log, oldest first
func (s *Session) Log() []Entry {
	out := make([]Entry, len(s.log))
	copy(out, s.log)
	return out
}

// ClearLog empties the message log
func (s *Session) ClearLog() {
	s.log = nil
}

func (s *Session) append(e Entry) Entry {
	s.log = append(s.log, e)
	return e
}

func (s *Session) reject(raw string, err error, malformedMsg string) (Entry, error) {
	msg := err.Error()
	switch {
	case errors.Is(err, fretboard.ErrMalformedInput):
		msg = malformedMsg
	case errors.Is(err, fretboard.ErrUnknownString):
		msg = msgInvalidString
	case errors.Is(err, fretboard.ErrFretOutOfRange):
		msg = msgFretOutOfRange
	case errors.Is(err, theory.ErrMissingRootNote):
		msg = msgNeedRoot
	case errors.Is(err, ErrModeNotConfirmed):
		msg = msgNeedMode
	case errors.Is(err, ErrRootNotUsed):
		msg = msgRootNotUsed
	}
	s.logger.Debug("input rejected", "input", raw, "err", err)
	return s.append(Entry{Kind: EntryError, Message: msg, Err: err}), err
}

// SetRoot validates raw as "string,fret" and makes its note the chord-tone
// root. It is rejected unless chord tone mode is confirmed.
func (s *Session) SetRoot(raw string) (Entry, error) {
	if !s.Confirmed() {
		return s.reject(raw, ErrModeNotConfirmed, msgInvalidRootFormat)
	}
	if s.mode != theory.ModeChordTone {
		return s.reject(raw, ErrRootNotUsed, msgInvalidRootFormat)
	}
	pos, err := fretboard.ParsePosition(raw, s.tuning)
	if err != nil {
		return s.reject(raw, err, msgInvalidRootFormat)
	}
	note, err := s.tuning.Resolve(pos)
	if err != nil {
		return s.reject(raw, err, msgInvalidRootFormat)
	}

	s.root = &Root{Note: note, Position: pos}
	s.logger.Debug("root set", "position", pos.String(), "note", note.String())
	return s.append(Entry{
		Kind:     EntryRoot,
		Message:  fmt.Sprintf("Root note set: %s = %s", pos, note),
		Position: pos,
		Note:     note,
	}), nil
}

// Check validates raw as "string,fret", resolves the fretted note and names
// its interval in the active context. Every call appends one log entry.
func (s *Session) Check(raw string) (Entry, error) {
	if !s.Confirmed() {
		return s.reject(raw, ErrModeNotConfirmed, msgInvalidFormat)
	}

	pos, err := fretboard.ParsePosition(raw, s.tuning)
	if err != nil {
		return s.reject(raw, err, msgInvalidFormat)
	}
	note, err := s.tuning.Resolve(pos)
	if err != nil {
		return s.reject(raw, err, msgInvalidFormat)
	}

	ctx := s.Context()
	interval, err := ctx.Interval(note)
	if err != nil {
		return s.reject(raw, err, msgInvalidFormat)
	}

	e := Entry{Kind: EntryLookup, Position: pos, Note: note, Interval: interval}
	switch c := ctx.(type) {
	case theory.ScaleRelative:
		e.Message = fmt.Sprintf("Input: %s Note: %s Interval from %s: %s", pos, note, c.Key, interval.Display())
		if chord, ok := theory.DiatonicChord(c.Scale, c.Key, note); ok {
			e.Chord = &chord
		}
	case theory.ChromaticPair:
		e.Message = fmt.Sprintf("Input: %s Note: %s Interval from root (%s): %s", pos, note, c.Root, interval.Display())
	}

	s.logger.Debug("checked", "position", pos.String(), "note", note.String(), "interval", interval.Display())
	return s.append(e), nil
}

// CheckPosition checks an already-split position, e.g. from a MIDI guitar
func (s *Session) CheckPosition(pos fretboard.Position) (Entry, error) {
	return s.Check(fmt.Sprintf("%d,%d", pos.Str, pos.Fret))
}
