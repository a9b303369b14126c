package main

import "github.com/charmbracelet/bubbles/key"

// keyMap documents the renderer's bindings for bubbles/help's short
// legend, rendered in the status bar. Only the gestures that aren't
// self-evident (arrows, typing) are worth a footer entry.
type keyMap struct {
	Undo key.Binding
	Redo key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Undo: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+y", "ctrl+r"),
		key.WithHelp("ctrl+y", "redo"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp satisfies help.KeyMap for a single-line legend.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Quit}
}

// FullHelp satisfies help.KeyMap; the renderer only ever shows the short
// form, but the method is part of the interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
