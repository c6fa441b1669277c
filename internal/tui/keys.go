package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for wizard navigation.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// HelpText returns a formatted help string for list steps.
func (k KeyMap) HelpText() string {
	return "↑/↓ navigate • enter select • esc back • ctrl+c quit"
}

// InputHelpText returns help text for input steps.
func (k KeyMap) InputHelpText() string {
	return "enter continue • esc back"
}
