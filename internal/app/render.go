package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/keybind/internal/shortcut"
)

// render repaints the demo screen: header, binding table, status line.
func (a *App) render() {
	if a.screen == nil {
		return
	}
	s := a.screen
	s.Clear()
	_, height := s.Size()

	header := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)
	normal := tcell.StyleDefault

	row := 0
	drawString(s, 0, row, header, fmt.Sprintf("keybind  focus: %s", a.FocusedWindow().Title()))
	row++
	drawString(s, 0, row, dim, "Ctrl+C quits. Overridden bindings are marked *.")
	row += 2

	for _, e := range a.registry.Entries() {
		if row >= height-2 {
			break
		}
		mark := " "
		if e.Overridden() {
			mark = "*"
		}
		scope := string(e.Context())
		if scope == "" {
			scope = "global"
		}
		line := fmt.Sprintf("%s %-24s %-18s %s", mark, e.ID(), e.Active().Label(a.platform), scope)
		if e.Kind() == shortcut.KindClutch {
			line += "  (hold)"
		}
		drawString(s, 0, row, normal, line)
		row++
	}

	if a.session.Holding() {
		drawString(s, 0, height-2, header, "holding clutch, Esc releases")
	}
	drawString(s, 0, height-1, normal, a.status)
	s.Show()
}

// drawString writes text at x,y advancing by display width.
func drawString(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
