package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding
	Home      key.Binding
	Nearby    key.Binding
	History   key.Binding
	Profile   key.Binding
	Support   key.Binding
	Select    key.Binding
	Back      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Refresh   key.Binding
	Recenter  key.Binding
	ToggleMap key.Binding
	Navigate  key.Binding
	Clear     key.Binding
	Edit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "prev tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "next tab"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Nearby: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "nearby"),
		),
		History: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		Profile: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "profile"),
		),
		Support: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "support"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "h"),
			key.WithHelp("esc", "back"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Recenter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "recenter"),
		),
		ToggleMap: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle map"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "navigate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i", "e"),
			key.WithHelp("i", "type"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
