package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Add         key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	HideChecked key.Binding
	Match       key.Binding
	Clear       key.Binding
	Copy        key.Binding
	Journal     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		HideChecked: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide checked")),
		Match:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "match mode")),
		Clear:       key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear checked")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Journal:     key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "journal")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Filter, k.HideChecked, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Toggle, k.Edit, k.Delete},
		{k.Filter, k.ClearFilter, k.HideChecked, k.Match},
		{k.Clear, k.Copy, k.Journal, k.Help, k.Quit},
	}
}

type promptKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultPromptKeyMap() promptKeyMap {
	return promptKeyMap{
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k promptKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Confirm, k.Cancel} }

func (k promptKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
