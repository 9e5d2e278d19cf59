package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Browse     key.Binding
	Select     key.Binding
	Close      key.Binding
	Back       key.Binding
	StarNext   key.Binding
	StarPrev   key.Binding
	StarCommit key.Binding
	Rate       key.Binding
	Add        key.Binding
	Delete     key.Binding
	ToggleLeft key.Binding
	ToggleSide key.Binding
	ForceQuit  key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Browse:     key.NewBinding(key.WithKeys("enter", "down"), key.WithHelp("↓/enter", "browse results")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close movie")),
		Back:       key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		StarNext:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "more stars")),
		StarPrev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "fewer stars")),
		StarCommit: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "rate")),
		Rate:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("←/→/1-0", "rate")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:     key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d/x/del", "delete")),
		ToggleLeft: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "toggle results")),
		ToggleSide: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "toggle side")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Back, k.Close, k.Rate, k.Add, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Browse, k.Select, k.Back, k.Close},
		{k.StarPrev, k.StarNext, k.StarCommit, k.Rate, k.Add, k.Delete},
		{k.ToggleLeft, k.ToggleSide, k.Quit},
	}
}
