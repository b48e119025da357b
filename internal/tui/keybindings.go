package tui

import "charm.land/bubbles/v2/key"

// keyMap lists the bindings of the toast surface.
type keyMap struct {
	Publish    key.Binding
	CycleStyle key.Binding
	Clear      key.Binding
	Hide       key.Binding
	Click      key.Binding
	FillFlip   key.Binding
	More       key.Binding
	Less       key.Binding
	AutoScroll key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Publish:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "publish")),
		CycleStyle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "style")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Hide:       key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "hide")),
		Click:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "click")),
		FillFlip:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "fill direction")),
		More:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more visible")),
		Less:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer visible")),
		AutoScroll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-scroll")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Publish, k.CycleStyle, k.Hide, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Publish, k.CycleStyle, k.Clear},
		{k.Up, k.Down, k.Hide, k.Click},
		{k.FillFlip, k.AutoScroll, k.More, k.Less},
		{k.Help, k.Quit},
	}
}
