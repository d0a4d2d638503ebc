package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level keybindings. Keys inside the
// sidebar live in sidebar.KeyMap.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding

	// focus jumps 0-3 and cycling
	GotoAnswer  key.Binding
	GotoRepos   key.Binding
	GotoFiles   key.Binding
	GotoHistory key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding

	ToggleSidebar  key.Binding
	ToggleArchived key.Binding
	SaveChart      key.Binding
	Reload         key.Binding
	Confirm        key.Binding
	PrevEntry      key.Binding
	NextEntry      key.Binding
}

// DefaultKeyMap returns the bindings shown in the help window.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close/back"),
		),

		GotoAnswer: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "answer"),
		),
		GotoRepos: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "repositories"),
		),
		GotoFiles: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "files"),
		),
		GotoHistory: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),

		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "sidebar"),
		),
		ToggleArchived: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "show archived"),
		),
		SaveChart: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save chart"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reload"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		PrevEntry: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev conversation"),
		),
		NextEntry: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next conversation"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp groups the bindings by column of the help window.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GotoAnswer, k.GotoRepos, k.GotoFiles, k.GotoHistory},
		{k.NextFocus, k.PrevFocus, k.ToggleSidebar},
		{k.PrevEntry, k.NextEntry, k.ToggleArchived},
		{k.SaveChart, k.Reload},
		{k.Escape, k.Help, k.Quit},
	}
}
