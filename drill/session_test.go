package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonedrill/config"
	"tonedrill/fretboard"
	"tonedrill/theory"
)

func newConfirmed(t *testing.T, mode theory.Mode) *Session {
	t.Helper()
	s := New(fretboard.StandardTuning())
	s.SelectMode(mode)
	s.ConfirmMode()
	return s
}

func TestCheckBeforeConfirmIsRejected(t *testing.T) {
	s := New(fretboard.StandardTuning())
	e, err := s.Check("6,3")
	assert.ErrorIs(t, err, ErrModeNotConfirmed)
	assert.Equal(t, "Please confirm a mode first", e.Message)
	assert.Len(t, s.Log(), 1)
}

func TestCheckSingleTone(t *testing.T) {
	s := newConfirmed(t, theory.ModeSingleTone)

	e, err := s.Check("6,3")
	require.NoError(t, err)
	assert.Equal(t, "Input: (6,3) Note: G Interval from C: P5", e.Message)
	assert.Equal(t, theory.G, e.Note)
	assert.Equal(t, theory.PerfectFifth, e.Interval)
	require.NotNil(t, e.Chord)
	assert.Equal(t, "G7", e.Chord.String())
	assert.True(t, e.OK())
}

func TestCheckSingleToneOutsideScale(t *testing.T) {
	s := newConfirmed(t, theory.ModeSingleTone)

	e, err := s.Check("2,2")
	require.NoError(t, err)
	assert.Equal(t, "Input: (2,2) Note: C#/Db Interval from C: N/A", e.Message)
	assert.Empty(t, e.Interval)
	assert.Nil(t, e.Chord)
}

func TestCheckUsesKeyAndScale(t *testing.T) {
	s := newConfirmed(t, theory.ModeSingleTone)
	s.SetKey(theory.A)
	s.SetScale(theory.Minor)

	e, err := s.Check("5,3")
	require.NoError(t, err)
	assert.Equal(t, "Input: (5,3) Note: C Interval from A: m3", e.Message)
}

func TestCheckRejections(t *testing.T) {
	tests := []struct {
		raw  string
		msg  string
		kind error
	}{
		{"abc", "Invalid input format. Use string,fret", fretboard.ErrMalformedInput},
		{"7,1", "Invalid string number", fretboard.ErrUnknownString},
		{"6,99", "Fret out of range", fretboard.ErrFretOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := newConfirmed(t, theory.ModeSingleTone)
			e, err := s.Check(tt.raw)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, EntryError, e.Kind)
			assert.Equal(t, tt.msg, e.Message)
			assert.False(t, e.OK())

			log := s.Log()
			require.Len(t, log, 1)
			assert.Equal(t, tt.msg, log[0].Message)
		})
	}
}

func TestChordToneNeedsRoot(t *testing.T) {
	s := newConfirmed(t, theory.ModeChordTone)

	e, err := s.Check("5,4")
	assert.ErrorIs(t, err, theory.ErrMissingRootNote)
	assert.Equal(t, "Please input root note first in ChordTone mode", e.Message)
}

func TestChordToneWithRoot(t *testing.T) {
	s := newConfirmed(t, theory.ModeChordTone)

	e, err := s.SetRoot("5,0")
	require.NoError(t, err)
	assert.Equal(t, "Root note set: (5,0) = A", e.Message)
	assert.Equal(t, EntryRoot, e.Kind)

	root, ok := s.Root()
	require.True(t, ok)
	assert.Equal(t, theory.A, root.Note)

	e, err = s.Check("5,4")
	require.NoError(t, err)
	assert.Equal(t, "Input: (5,4) Note: C#/Db Interval from root (A): M3", e.Message)
	assert.Equal(t, theory.MajorThird, e.Interval)

	assert.Len(t, s.Log(), 2)
}

func TestSetRootRejections(t *testing.T) {
	s := newConfirmed(t, theory.ModeChordTone)

	e, err := s.SetRoot("5")
	assert.ErrorIs(t, err, fretboard.ErrMalformedInput)
	assert.Equal(t, "Invalid root input format", e.Message)

	e, err = s.SetRoot("5,30")
	assert.ErrorIs(t, err, fretboard.ErrFretOutOfRange)
	assert.Equal(t, "Fret out of range", e.Message)

	_, ok := s.Root()
	assert.False(t, ok)
}

func TestSetRootOnlyInChordTone(t *testing.T) {
	s := New(fretboard.StandardTuning())
	s.SelectMode(theory.ModeChordTone)
	e, err := s.SetRoot("5,0")
	assert.ErrorIs(t, err, ErrModeNotConfirmed)
	assert.Equal(t, "Please confirm a mode first", e.Message)

	s = newConfirmed(t, theory.ModeSingleTone)
	e, err = s.SetRoot("5,0")
	assert.ErrorIs(t, err, ErrRootNotUsed)
	assert.Equal(t, "Root note is only used in ChordTone mode", e.Message)
	assert.Equal(t, EntryError, e.Kind)

	_, ok := s.Root()
	assert.False(t, ok)
	assert.Len(t, s.Log(), 1)
}

func TestConfirmModeClearsRootAndLog(t *testing.T) {
	s := newConfirmed(t, theory.ModeChordTone)
	_, err := s.SetRoot("6,5")
	require.NoError(t, err)
	require.NotEmpty(t, s.Log())

	s.SelectMode(theory.ModeSingleTone)
	assert.Equal(t, theory.ModeChordTone, s.Mode())
	s.ConfirmMode()

	assert.Equal(t, theory.ModeSingleTone, s.Mode())
	assert.Empty(t, s.Log())
	_, ok := s.Root()
	assert.False(t, ok)
}

func TestSetTuningAffectsLookups(t *testing.T) {
	s := newConfirmed(t, theory.ModeSingleTone)
	require.NoError(t, s.SetTuning(6, " d "))

	e, err := s.Check("6,0")
	require.NoError(t, err)
	assert.Equal(t, theory.D, e.Note)
	assert.Equal(t, "D A D G B E", s.Tuning().String())

	assert.ErrorIs(t, s.SetTuning(6, "Q"), theory.ErrInvalidNoteName)
	assert.ErrorIs(t, s.SetTuning(8, "E"), fretboard.ErrUnknownString)
}

func TestTuningReturnsCopy(t *testing.T) {
	s := New(fretboard.StandardTuning())
	tun := s.Tuning()
	require.NoError(t, tun.Set(6, theory.C))
	assert.Equal(t, "E A D G B E", s.Tuning().String())
}

func TestLogIsAppendOnlyCopy(t *testing.T) {
	s := newConfirmed(t, theory.ModeSingleTone)
	_, _ = s.Check("6,0")
	log := s.Log()
	log[0].Message = "changed"
	assert.Equal(t, "Input: (6,0) Note: E Interval from C: M3", s.Log()[0].Message)
}

func TestCheckPosition(t *testing.T) {
	s := newConfirmed(t, theory.ModeSingleTone)
	e, err := s.CheckPosition(fretboard.Position{Str: 1, Fret: 8})
	require.NoError(t, err)
	assert.Equal(t, theory.C, e.Note)
	assert.Equal(t, theory.Unison, e.Interval)

	_, err = s.CheckPosition(fretboard.Position{Str: 1, Fret: -3})
	assert.ErrorIs(t, err, fretboard.ErrFretOutOfRange)
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Key = "g"
	cfg.Scale = "minorpenta"
	cfg.Mode = "ChordTone"

	s, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, theory.G, s.Key())
	assert.Equal(t, theory.ScaleMinorPenta, s.Scale().Name)
	assert.Equal(t, theory.ModeChordTone, s.SelectedMode())
	assert.False(t, s.Confirmed())
	assert.NotEmpty(t, s.ID)

	cfg.Key = "X"
	_, err = FromConfig(cfg)
	assert.Error(t, err)
}

func TestContextFollowsMode(t *testing.T) {
	s := New(fretboard.StandardTuning())
	_, ok := s.Context().(theory.ScaleRelative)
	assert.True(t, ok)

	s.SelectMode(theory.ModeChordTone)
	_, ok = s.Context().(theory.ChromaticPair)
	assert.True(t, ok)
}
