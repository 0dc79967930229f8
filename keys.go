package main

import "github.com/charmbracelet/bubbles/key"

// explorerKeyMap holds every binding of the explorer. The key mapping
// popup renders its help text from these bindings.
type explorerKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding // enter directory under cursor
	Parent    key.Binding
	Open      key.Binding // enter directory or open file with the default app
	ChangeDir key.Binding
	Jump      key.Binding
	Refresh   key.Binding

	ToggleSelect   key.Binding
	ClearSelection key.Binding
	Paste          key.Binding
	Delete         key.Binding
	NewFile        key.Binding
	CopyPath       key.Binding

	CycleDirSorting key.Binding
	ToggleHidden    key.Binding
	SortingPopup    key.Binding
	KeyMapping      key.Binding
	Quit            key.Binding
}

var explorerKeys = explorerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "enter directory"),
	),
	Parent: key.NewBinding(
		key.WithKeys("h", "left", "backspace"),
		key.WithHelp("h/←", "parent directory"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	ChangeDir: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "change path"),
	),
	Jump: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "jump to name"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	ToggleSelect: key.NewBinding(
		key.WithKeys("y", " "),
		key.WithHelp("y/space", "toggle selection"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear selection"),
	),
	Paste: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "paste selection here"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete selection"),
	),
	NewFile: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file (end with / for dir)"),
	),
	CopyPath: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy path to clipboard"),
	),
	CycleDirSorting: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "cycle directory sorting"),
	),
	ToggleHidden: key.NewBinding(
		key.WithKeys("g", "."),
		key.WithHelp("g/.", "toggle hidden files"),
	),
	SortingPopup: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sorting options"),
	),
	KeyMapping: key.NewBinding(
		key.WithKeys("m", "?"),
		key.WithHelp("m/?", "key mappings"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k explorerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.KeyMapping, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k explorerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Parent, k.Open, k.ChangeDir, k.Jump, k.Refresh},
		{k.ToggleSelect, k.ClearSelection, k.Paste, k.Delete, k.NewFile, k.CopyPath},
		{k.CycleDirSorting, k.ToggleHidden, k.SortingPopup, k.KeyMapping, k.Quit},
	}
}

// popupKeyMap covers the keys shared by the popups.
type popupKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Accept  key.Binding
	Reject  key.Binding
	Switch  key.Binding
	Cancel  key.Binding
}

var popupKeys = popupKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Accept: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Reject: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Switch: key.NewBinding(
		key.WithKeys("left", "right", "h", "l", "tab"),
		key.WithHelp("←/→", "switch"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
