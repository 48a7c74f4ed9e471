package state

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit  key.Binding
	Cycle   key.Binding
	Dismiss key.Binding
	Clear   key.Binding
	Quit    key.Binding
}

func newKeyMap(composer bool) keyMap {
	k := keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show")),
		Cycle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "severity")),
		Dismiss: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "dismiss newest")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear all")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
	if !composer {
		k.Submit.SetEnabled(false)
		k.Cycle.SetEnabled(false)
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cycle, k.Dismiss, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Cycle}, {k.Dismiss, k.Clear, k.Quit}}
}
