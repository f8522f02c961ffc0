package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonedrill/drill"
	"tonedrill/fretboard"
	"tonedrill/midi"
	"tonedrill/theme"
	"tonedrill/theory"
)

func newTestModel() Model {
	s := drill.New(fretboard.StandardTuning())
	strMap := midi.NewStringMap(1, map[int]uint8{1: 64, 2: 59, 3: 55, 4: 50, 5: 45, 6: 40})
	return NewModel(s, theme.New(theme.DefaultPalette()), nil, strMap)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	right = tea.KeyMsg{Type: tea.KeyRight}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestStartsOnModeField(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, fieldMode, m.focus)
	assert.Contains(t, m.View(), "Choose a mode")
}

func TestConfirmAndCheck(t *testing.T) {
	m := newTestModel()
	m = press(m, enter)
	require.True(t, m.Session.Confirmed())
	assert.Equal(t, fieldInput, m.focus)

	m = press(m, runes("6"), runes(","), runes("3"), enter)
	log := m.Session.Log()
	require.Len(t, log, 1)
	assert.Equal(t, "Input: (6,3) Note: G Interval from C: P5", log[0].Message)
	assert.Empty(t, m.input.Value())
	view := m.View()
	assert.Contains(t, view, "Interval from C: P5")
	assert.Contains(t, view, "G P5")
}

func TestInputDropsNonPositionRunes(t *testing.T) {
	m := newTestModel()
	m = press(m, enter, runes("5x,;0"))
	assert.Equal(t, "5,0", m.input.Value())
}

func TestChordToneFlow(t *testing.T) {
	m := newTestModel()
	m = press(m, right, enter)
	require.Equal(t, theory.ModeChordTone, m.Session.Mode())
	assert.Equal(t, fieldRoot, m.focus)

	m = press(m, runes("5,0"), enter)
	root, ok := m.Session.Root()
	require.True(t, ok)
	assert.Equal(t, theory.A, root.Note)
	assert.Equal(t, fieldInput, m.focus)

	m = press(m, runes("5,4"), enter)
	log := m.Session.Log()
	require.Len(t, log, 2)
	assert.Equal(t, "Input: (5,4) Note: C#/Db Interval from root (A): M3", log[1].Message)
}

func TestModeFieldCyclesModes(t *testing.T) {
	m := newTestModel()
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m = press(m, right)
	assert.Equal(t, theory.ModeChordTone, m.Session.SelectedMode())
	m = press(m, right)
	assert.Equal(t, theory.ModeSingleTone, m.Session.SelectedMode())
	m = press(m, left)
	assert.Equal(t, theory.ModeChordTone, m.Session.SelectedMode())
	assert.False(t, m.Session.Confirmed())

	m = press(m, enter)
	assert.Contains(t, m.View(), "Chord Tone")
}

func TestTabSkipsHiddenFields(t *testing.T) {
	m := newTestModel()
	seen := map[field]bool{}
	for i := 0; i < int(numFields); i++ {
		m = press(m, tab)
		seen[m.focus] = true
	}
	assert.False(t, seen[fieldInput])
	assert.False(t, seen[fieldRoot])
	assert.True(t, seen[fieldTuning])
}

func TestRetuneFromTuningField(t *testing.T) {
	m := newTestModel()
	m.setFocus(fieldTuning)
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "D A D G B E", m.Session.Tuning().String())

	m = press(m, down, right)
	assert.Equal(t, "D A#/Bb D G B E", m.Session.Tuning().String())
}

func TestKeyAndScaleFields(t *testing.T) {
	m := newTestModel()
	m.setFocus(fieldKey)
	m = press(m, right, right)
	assert.Equal(t, theory.D, m.Session.Key())

	m = press(m, tab, right)
	assert.Equal(t, theory.ScaleMinor, m.Session.Scale().Name)
}

func TestMidiNoteIsChecked(t *testing.T) {
	m := newTestModel()
	m = press(m, enter)
	m.controller = fakeController{id: "gk"}

	next, _ := m.Update(NoteMsg{Event: midi.NoteEvent{Channel: 5, Note: 43, Velocity: 90}, From: "gk"})
	m = next.(Model)
	log := m.Session.Log()
	require.Len(t, log, 1)
	assert.Equal(t, "Input: (6,3) Note: G Interval from C: P5", log[0].Message)

	next, _ = m.Update(NoteMsg{Event: midi.NoteEvent{Channel: 5, Note: 43}, From: "other"})
	m = next.(Model)
	assert.Len(t, m.Session.Log(), 1)
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Empty(t, next.(Model).View())
}

type fakeController struct{ id string }

func (f fakeController) ID() string                        { return f.id }
func (f fakeController) NoteEvents() <-chan midi.NoteEvent { return make(chan midi.NoteEvent) }
func (f fakeController) Close() error                      { return nil }
