package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Submit   key.Binding
	ClearLog key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "pick string")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "pick string")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "change")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "change")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check/confirm")),
		ClearLog: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear log")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Left, k.Submit, k.ClearLog, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Submit, k.ClearLog, k.Quit},
	}
}
