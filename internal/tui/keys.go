package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Pin      key.Binding
	Filter   key.Binding
	Search   key.Binding
	Columns  key.Binding
	Toggle   key.Binding
	Drag     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		NextPage: key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("b", "pgup"), key.WithHelp("b", "prev page")),
		Pin:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter column")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Columns:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x")),
		Drag:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Confirm:  key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) normalHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Drag, k.Pin, k.Filter, k.Search, k.Columns, k.NextPage, k.PrevPage, k.Reload, k.Quit}
}
