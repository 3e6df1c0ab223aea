package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for browse mode.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	left   key.Binding
	right  key.Binding
	enter  key.Binding
	genre  key.Binding
	reload key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev row")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev title")),
		right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next title")),
		enter:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "trailer")),
		genre:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "next genre")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.enter, k.genre, k.reload},
		{k.help, k.quit},
	}
}
