package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	SwitchTab    key.Binding
	Up           key.Binding
	Down         key.Binding
	CycleStatus  key.Binding
	CycleCategory key.Binding
	Reload       key.Binding
	Add          key.Binding
	Delete       key.Binding
	SetStatus    key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	SwitchTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "roadmap/location"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CycleCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category filter"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add item"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	SetStatus: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "set status"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}

// roadmapHelp and locationHelp implement help.KeyMap for each tab.
type roadmapHelp struct{}

func (roadmapHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.SetStatus, keys.CycleStatus, keys.CycleCategory, keys.Add, keys.Delete, keys.Reload, keys.SwitchTab, keys.Quit}
}

func (h roadmapHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type locationHelp struct{}

func (locationHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Confirm, keys.Cancel, keys.SwitchTab}
}

func (h locationHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
