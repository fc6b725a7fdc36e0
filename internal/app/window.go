package app

import (
	"github.com/google/uuid"

	"github.com/dshills/keybind/internal/shortcut"
)

// Window is a demo focus target. It carries the context lineage used to
// filter scoped shortcuts, most specific context first.
type Window struct {
	id       string
	title    string
	contexts []shortcut.Context
}

// NewWindow creates a window with a fresh identity.
func NewWindow(title string, contexts ...shortcut.Context) *Window {
	w := &Window{
		id:    uuid.NewString(),
		title: title,
	}
	if len(contexts) > 0 {
		w.contexts = make([]shortcut.Context, len(contexts))
		copy(w.contexts, contexts)
	}
	return w
}

// ID returns the window's unique identity.
func (w *Window) ID() string { return w.id }

// Title returns the display title.
func (w *Window) Title() string { return w.title }

// ShortcutContexts implements shortcut.Window.
func (w *Window) ShortcutContexts() []shortcut.Context {
	out := make([]shortcut.Context, len(w.contexts))
	copy(out, w.contexts)
	return out
}
