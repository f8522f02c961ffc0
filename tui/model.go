package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tonedrill/debug"
	"tonedrill/drill"
	"tonedrill/fretboard"
	"tonedrill/midi"
	"tonedrill/theme"
	"tonedrill/theory"
	"tonedrill/widgets"
)

// logRows is how many log entries stay on screen
const logRows = 8

type field int

const (
	fieldTuning field = iota
	fieldKey
	fieldScale
	fieldMode
	fieldRoot
	fieldInput
	numFields
)

type Model struct {
	Session   *drill.Session
	DeviceMgr *midi.DeviceManager // nil when MIDI is off
	Theme     *theme.Theme

	strMap     *midi.StringMap
	controller midi.Controller // current controller (may be nil)

	focus        field
	tuningCursor int // index into Session.Tuning().Strings()
	input        textinput.Model
	rootInput    textinput.Model

	keys     keyMap
	help     help.Model
	quitting bool
}

type DeviceEventMsg midi.DeviceEvent

// NoteMsg carries one note played on a connected MIDI guitar
type NoteMsg struct {
	Event midi.NoteEvent
	From  string
}

// NewModel builds the trainer UI. deviceMgr and strMap may be nil.
func NewModel(session *drill.Session, th *theme.Theme, deviceMgr *midi.DeviceManager, strMap *midi.StringMap) Model {
	m := Model{
		Session:   session,
		DeviceMgr: deviceMgr,
		Theme:     th,
		strMap:    strMap,
		input:     newPositionInput("string,fret e.g. 6,0"),
		rootInput: newPositionInput("root e.g. 6,3"),
		keys:      newKeyMap(),
		help:      help.New(),
	}
	if session.Confirmed() {
		m.setFocus(fieldInput)
	} else {
		m.setFocus(fieldMode)
	}
	return m
}

func newPositionInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 8
	ti.Width = 24
	return ti
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func ListenForNotes(c midi.Controller) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-c.NoteEvents()
		if !ok {
			return nil
		}
		return NoteMsg{Event: ev, From: c.ID()}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.setFocus(m.step(1))
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.setFocus(m.step(-1))
			return m, nil
		case key.Matches(msg, m.keys.ClearLog):
			m.Session.ClearLog()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil
		}
		return m.handleFieldKey(msg)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.controller = event.Controller
			debug.Log("midi", "controller attached", "id", event.ID)
			return m, tea.Batch(ListenForNotes(event.Controller), ListenForDevices(m.DeviceMgr))
		case midi.DeviceDisconnected:
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
			}
		}
		return m, ListenForDevices(m.DeviceMgr)

	case NoteMsg:
		if m.controller == nil || m.controller.ID() != msg.From {
			return m, nil
		}
		m.playNote(msg.Event)
		return m, ListenForNotes(m.controller)
	}

	return m, nil
}

// playNote treats a MIDI guitar note like typed input into the focused field
func (m *Model) playNote(ev midi.NoteEvent) {
	if m.strMap == nil {
		return
	}
	pos, ok := m.strMap.Position(ev, m.Session.Tuning())
	if !ok {
		debug.Log("midi", "note on unmapped channel", "channel", ev.Channel, "note", ev.Note)
		return
	}
	raw := fmt.Sprintf("%d,%d", pos.Str, pos.Fret)
	if m.focus == fieldRoot && m.rootVisible() {
		m.Session.SetRoot(raw)
		return
	}
	m.Session.Check(raw)
}

func (m *Model) submit() {
	switch m.focus {
	case fieldMode:
		m.Session.ConfirmMode()
		if m.rootVisible() {
			m.setFocus(fieldRoot)
		} else {
			m.setFocus(fieldInput)
		}
	case fieldRoot:
		_, err := m.Session.SetRoot(m.rootInput.Value())
		m.rootInput.Reset()
		if err == nil {
			m.setFocus(fieldInput)
		}
	case fieldInput:
		m.Session.Check(m.input.Value())
		m.input.Reset()
	default:
		m.setFocus(m.step(1))
	}
}

func (m Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	delta := 0
	switch {
	case key.Matches(msg, m.keys.Left):
		delta = -1
	case key.Matches(msg, m.keys.Right):
		delta = 1
	}

	switch m.focus {
	case fieldTuning:
		strs := m.Session.Tuning().Strings()
		switch {
		case key.Matches(msg, m.keys.Up):
			m.tuningCursor = (m.tuningCursor + len(strs) - 1) % len(strs)
		case key.Matches(msg, m.keys.Down):
			m.tuningCursor = (m.tuningCursor + 1) % len(strs)
		case delta != 0:
			str := strs[m.tuningCursor]
			open, _ := m.Session.Tuning().Open(str)
			m.Session.SetTuning(str, open.Transpose(delta).String())
		}

	case fieldKey:
		if delta != 0 {
			m.Session.SetKey(m.Session.Key().Transpose(delta))
		}

	case fieldScale:
		if delta != 0 {
			scales := theory.Scales()
			idx := 0
			for i, s := range scales {
				if s.Name == m.Session.Scale().Name {
					idx = i
				}
			}
			m.Session.SetScale(scales[(idx+delta+len(scales))%len(scales)])
		}

	case fieldMode:
		if delta != 0 {
			modes := theory.Modes()
			idx := 0
			for i, mode := range modes {
				if mode == m.Session.SelectedMode() {
					idx = i
				}
			}
			m.Session.SelectMode(modes[(idx+delta+len(modes))%len(modes)])
		}

	case fieldRoot:
		var cmd tea.Cmd
		m.rootInput, cmd = m.rootInput.Update(positionKeys(msg))
		return m, cmd

	case fieldInput:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(positionKeys(msg))
		return m, cmd
	}
	return m, nil
}

// positionKeys drops every typed rune except digits and commas
func positionKeys(msg tea.KeyMsg) tea.KeyMsg {
	if msg.Type != tea.KeyRunes {
		return msg
	}
	var kept []rune
	for _, r := range msg.Runes {
		if (r >= '0' && r <= '9') || r == ',' {
			kept = append(kept, r)
		}
	}
	msg.Runes = kept
	return msg
}

func (m Model) rootVisible() bool {
	return m.Session.Mode() == theory.ModeChordTone
}

func (m Model) fieldVisible(f field) bool {
	switch f {
	case fieldRoot:
		return m.rootVisible()
	case fieldInput:
		return m.Session.Confirmed()
	}
	return true
}

// step returns the next visible field in direction dir
func (m Model) step(dir int) field {
	f := m.focus
	for i := 0; i < int(numFields); i++ {
		f = field((int(f) + dir + int(numFields)) % int(numFields))
		if m.fieldVisible(f) {
			return f
		}
	}
	return m.focus
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.input.Blur()
	m.rootInput.Blur()
	switch f {
	case fieldInput:
		m.input.Focus()
	case fieldRoot:
		m.rootInput.Focus()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	focusStyle := lipgloss.NewStyle().Foreground(m.Theme.Cursor()).Bold(true)

	renderField := func(f field, label, value string) string {
		if m.focus == f {
			return focusStyle.Render(fmt.Sprintf("[%s: %s]", label, value))
		}
		return labelStyle.Render(fmt.Sprintf(" %s: %s ", label, value))
	}

	var out strings.Builder
	out.WriteString("\n")

	status := dimStyle.Render("  not confirmed")
	if m.Session.Confirmed() {
		status = lipgloss.NewStyle().Foreground(m.Theme.Active()).Render("  " + m.Session.Mode().Label())
	}
	out.WriteString(headerStyle.Render("ToneDrill"))
	out.WriteString(status)
	if m.controller != nil {
		out.WriteString(dimStyle.Render("  midi:" + m.controller.ID()))
	}
	out.WriteString("\n\n")

	// Tuning
	tuning := m.Session.Tuning()
	var tun []string
	for i, str := range tuning.Strings() {
		open, _ := tuning.Open(str)
		cell := fmt.Sprintf("%d:%s", str, open)
		if m.focus == fieldTuning && i == m.tuningCursor {
			cell = focusStyle.Render("[" + cell + "]")
		} else {
			cell = labelStyle.Render(" " + cell + " ")
		}
		tun = append(tun, cell)
	}
	out.WriteString(labelStyle.Render("Tuning "))
	out.WriteString(strings.Join(tun, ""))
	out.WriteString("\n\n")

	// Controls
	out.WriteString(renderField(fieldKey, "Key", m.Session.Key().String()))
	out.WriteString(renderField(fieldScale, "Scale", m.Session.Scale().Name))
	out.WriteString(renderField(fieldMode, "Mode", m.Session.SelectedMode().Label()))
	out.WriteString("\n\n")

	// Fretboard
	markers := m.markers()
	out.WriteString(widgets.RenderFretboard(tuning, m.visibleFrets(), markers, m.Theme.Symbols))
	out.WriteString("\n")
	if len(markers) > 0 {
		out.WriteString(m.legend())
		out.WriteString("\n")
	}
	out.WriteString("\n")

	// Inputs
	if m.rootVisible() {
		root := "(none)"
		if r, ok := m.Session.Root(); ok {
			root = fmt.Sprintf("%s %s", r.Note, r.Position)
		}
		out.WriteString(labelStyle.Render("Root ") + m.rootInput.View() + dimStyle.Render("  current: "+root))
		out.WriteString("\n")
	}
	if m.Session.Confirmed() {
		out.WriteString(labelStyle.Render("Check") + " " + m.input.View())
		out.WriteString("\n")
	} else {
		out.WriteString(dimStyle.Render("Choose a mode and press enter to confirm"))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	// Log
	out.WriteString(m.renderLog())
	out.WriteString("\n\n")
	out.WriteString(m.help.View(m.keys))

	return out.String()
}

func (m Model) renderLog() string {
	okStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	entries := m.Session.Log()
	if len(entries) > logRows {
		entries = entries[len(entries)-logRows:]
	}

	var lines []string
	for _, e := range entries {
		var line string
		switch {
		case e.OK():
			line = okStyle.Render(string(m.Theme.Symbols.OK)) + " " + e.Message
		case e.Kind == drill.EntryError:
			line = errStyle.Render(string(m.Theme.Symbols.Error)) + " " + e.Message
		default:
			line = "  " + e.Message
		}
		if e.Chord != nil {
			line += dimStyle.Render(fmt.Sprintf("  (%s, degree %d)", e.Chord, e.Chord.Degree))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// lastLookup returns the newest successful lookup in the log
func (m Model) lastLookup() (drill.Entry, bool) {
	entries := m.Session.Log()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == drill.EntryLookup {
			return entries[i], true
		}
	}
	return drill.Entry{}, false
}

func (m Model) markers() []widgets.Marker {
	var markers []widgets.Marker
	if r, ok := m.Session.Root(); ok && m.rootVisible() {
		markers = append(markers, widgets.Marker{Pos: r.Position, Symbol: m.Theme.Symbols.Root, Color: m.Theme.Success()})
	}
	if e, ok := m.lastLookup(); ok {
		sym := m.Theme.Symbols.Pressed
		if e.Position.Fret == 0 {
			sym = m.Theme.Symbols.Open
		}
		markers = append(markers, widgets.Marker{Pos: e.Position, Symbol: sym, Color: m.Theme.IntervalColor(e.Interval)})
	}
	return markers
}

// legend names the notes behind the root and lookup markers
func (m Model) legend() string {
	var items []widgets.LegendItem
	if r, ok := m.Session.Root(); ok && m.rootVisible() {
		items = append(items, widgets.LegendItem{Color: m.Theme.Success(), Symbol: m.Theme.Symbols.Root, Label: "root " + r.Note.String()})
	}
	if e, ok := m.lastLookup(); ok {
		sym := m.Theme.Symbols.Pressed
		if e.Position.Fret == 0 {
			sym = m.Theme.Symbols.Open
		}
		items = append(items, widgets.LegendItem{
			Color:  m.Theme.IntervalColor(e.Interval),
			Symbol: sym,
			Label:  fmt.Sprintf("%s %s", e.Note, e.Interval.Display()),
		})
	}
	return widgets.RenderLegend(items)
}

// visibleFrets shows twelve frets, more when a marker sits higher up the neck
func (m Model) visibleFrets() int {
	frets := 12
	for _, mk := range m.markers() {
		if mk.Pos.Fret > frets {
			frets = mk.Pos.Fret
		}
	}
	if frets > fretboard.MaxFret {
		frets = fretboard.MaxFret
	}
	return frets
}
