package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Flip  key.Binding
	Knew  key.Binding
	Again key.Binding
	Quit  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Knew, k.Again, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Flip: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "flip"),
	),
	Knew: key.NewBinding(
		key.WithKeys("k", "right", "y"),
		key.WithHelp("k/→", "knew it"),
	),
	Again: key.NewBinding(
		key.WithKeys("j", "left", "n"),
		key.WithHelp("j/←", "didn't know"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
