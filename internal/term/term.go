// Package term converts between tcell key events and the neutral key
// types. The conversions are pure, so they are testable without a live
// terminal.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/key"
)

// specialKeys maps the tcell named keys to their neutral equivalents.
// Backspace2 is the DEL byte most terminals send for the backspace
// key; both spellings collapse to KeyBackspace.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// neutralKeys is the reverse of specialKeys for replay. Backspace maps
// to Backspace2 because that is the byte real terminals deliver.
var neutralKeys = map[key.Key]tcell.Key{
	key.KeyEscape:    tcell.KeyEscape,
	key.KeyEnter:     tcell.KeyEnter,
	key.KeyTab:       tcell.KeyTab,
	key.KeyBackspace: tcell.KeyBackspace2,
	key.KeyDelete:    tcell.KeyDelete,
	key.KeyInsert:    tcell.KeyInsert,
	key.KeyHome:      tcell.KeyHome,
	key.KeyEnd:       tcell.KeyEnd,
	key.KeyPageUp:    tcell.KeyPgUp,
	key.KeyPageDown:  tcell.KeyPgDn,
	key.KeyUp:        tcell.KeyUp,
	key.KeyDown:      tcell.KeyDown,
	key.KeyLeft:      tcell.KeyLeft,
	key.KeyRight:     tcell.KeyRight,
	key.KeyF1:        tcell.KeyF1,
	key.KeyF2:        tcell.KeyF2,
	key.KeyF3:        tcell.KeyF3,
	key.KeyF4:        tcell.KeyF4,
	key.KeyF5:        tcell.KeyF5,
	key.KeyF6:        tcell.KeyF6,
	key.KeyF7:        tcell.KeyF7,
	key.KeyF8:        tcell.KeyF8,
	key.KeyF9:        tcell.KeyF9,
	key.KeyF10:       tcell.KeyF10,
	key.KeyF11:       tcell.KeyF11,
	key.KeyF12:       tcell.KeyF12,
}

// Decode converts a tcell key event to a neutral event.
//
// Terminals collapse some control combinations into the codes for
// named keys: ctrl+h is backspace, ctrl+i is tab, ctrl+m is enter,
// ctrl+[ is escape. Those codes always decode as the named key. The
// remaining control codes are recovered as ctrl plus the letter, since
// legacy terminals deliver them without a modifier flag.
func Decode(ev *tcell.EventKey) key.Event {
	mod := ev.Modifiers()
	e := key.Event{
		Shift: mod&tcell.ModShift != 0,
		Alt:   mod&tcell.ModAlt != 0,
		Ctrl:  mod&tcell.ModCtrl != 0,
		Cmd:   mod&tcell.ModMeta != 0,
	}

	k := ev.Key()

	if k == tcell.KeyRune {
		e.Key = key.KeyRune
		e.Rune = ev.Rune()
		return e
	}

	if k == tcell.KeyBacktab {
		e.Key = key.KeyTab
		e.Shift = true
		return e
	}

	if special, ok := specialKeys[k]; ok {
		e.Key = special
		return e
	}

	if r, ok := controlRune(k); ok {
		e.Key = key.KeyRune
		e.Rune = r
		e.Ctrl = true
		return e
	}

	e.Key = key.KeyNone
	return e
}

// Combination decodes a tcell event straight to a combination.
func Combination(ev *tcell.EventKey) key.Combination {
	return key.FromEvent(Decode(ev))
}

// Encode synthesizes the tcell event a terminal would deliver for a
// combination, for replay through a tcell event queue. The platform
// chooses the physical key standing in for the primary modifier.
func Encode(c key.Combination, p key.Platform) *tcell.EventKey {
	ev := c.Event(p)

	var mod tcell.ModMask
	if ev.Shift {
		mod |= tcell.ModShift
	}
	if ev.Alt {
		mod |= tcell.ModAlt
	}
	if ev.Ctrl {
		mod |= tcell.ModCtrl
	}
	if ev.Cmd {
		mod |= tcell.ModMeta
	}

	if ev.Key == key.KeyRune {
		if ev.Ctrl {
			if k, ok := controlKey(ev.Rune); ok {
				return tcell.NewEventKey(k, ev.Rune, mod)
			}
		}
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mod)
	}

	if k, ok := neutralKeys[ev.Key]; ok {
		return tcell.NewEventKey(k, 0, mod)
	}
	return tcell.NewEventKey(tcell.KeyRune, 0, mod)
}

// controlRune maps a dedicated control key code to its letter. The
// codes claimed by named keys never reach here.
func controlRune(k tcell.Key) (rune, bool) {
	switch {
	case k == tcell.KeyCtrlSpace:
		return ' ', true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return 'a' + rune(k-tcell.KeyCtrlA), true
	case k == tcell.KeyCtrlBackslash:
		return '\\', true
	case k == tcell.KeyCtrlRightSq:
		return ']', true
	case k == tcell.KeyCtrlCarat:
		return '^', true
	case k == tcell.KeyCtrlUnderscore:
		return '_', true
	}
	return 0, false
}

// controlKey is the inverse of controlRune, minus the codes that
// terminals reserve for named keys.
func controlKey(r rune) (tcell.Key, bool) {
	switch {
	case r == ' ':
		return tcell.KeyCtrlSpace, true
	case r >= 'a' && r <= 'z':
		k := tcell.KeyCtrlA + tcell.Key(r-'a')
		switch k {
		case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
			return 0, false
		}
		return k, true
	case r == '\\':
		return tcell.KeyCtrlBackslash, true
	case r == ']':
		return tcell.KeyCtrlRightSq, true
	case r == '^':
		return tcell.KeyCtrlCarat, true
	case r == '_':
		return tcell.KeyCtrlUnderscore, true
	}
	return 0, false
}
