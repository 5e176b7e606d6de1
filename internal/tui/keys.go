package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit            key.Binding
	NextLine        key.Binding
	PrevLine        key.Binding
	Left            key.Binding
	Right           key.Binding
	Up              key.Binding
	Down            key.Binding
	ToggleExpanded  key.Binding
	ToggleMaximised key.Binding
	ToggleBadges    key.Binding
	ToggleColumn    key.Binding
	ExpandAll       key.Binding
	CollapseAll     key.Binding
	NewCard         key.Binding
	DeleteCard      key.Binding
	OpenCard        key.Binding
	Members         key.Binding
	Back            key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
}

var keys = keyMap{
	Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextLine:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next line")),
	PrevLine:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev line")),
	Left:            key.NewBinding(key.WithKeys("left", "h")),
	Right:           key.NewBinding(key.WithKeys("right", "l")),
	Up:              key.NewBinding(key.WithKeys("up", "k")),
	Down:            key.NewBinding(key.WithKeys("down", "j")),
	ToggleExpanded:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand")),
	ToggleMaximised: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maximise")),
	ToggleBadges:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "badges")),
	ToggleColumn:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse column")),
	ExpandAll:       key.NewBinding(key.WithKeys("E")),
	CollapseAll:     key.NewBinding(key.WithKeys("C")),
	NewCard:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
	DeleteCard:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
	OpenCard:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Members:         key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "members")),
	Back:            key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	PageUp:          key.NewBinding(key.WithKeys("pgup")),
	PageDown:        key.NewBinding(key.WithKeys("pgdown")),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
