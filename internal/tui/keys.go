package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Submit key.Binding
	Back   key.Binding
	Menu   key.Binding
	Replay key.Binding
	Theme  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("space/1-9", "select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "backspace"),
			key.WithHelp("←", "previous"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc", "m"),
			key.WithHelp("esc", "menu"),
		),
		Replay: key.NewBinding(
			key.WithKeys("p", "r"),
			key.WithHelp("p", "play again"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Submit, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Submit, k.Back, k.Replay},
		{k.Menu, k.Theme, k.Quit},
	}
}
