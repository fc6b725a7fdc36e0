package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/shortcut"
	"github.com/dshills/keybind/internal/term"
)

// Bare Enter and Escape steer capture mode and clutch release; with
// modifiers they pass through as ordinary combinations.
var (
	comboEnter  = key.NewSpecial(key.KeyEnter, 0)
	comboEscape = key.NewSpecial(key.KeyEscape, 0)
)

// SetScreen injects the terminal screen, letting tests use a
// simulation screen. Must be called before Run; when unset, Run
// allocates a real one.
func (a *App) SetScreen(s tcell.Screen) error {
	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.screen = s
	return nil
}

// Run starts the event loop and blocks until quit, returning ErrQuit
// on a normal exit. Ctrl+C always exits, regardless of what the
// manifest binds.
func (a *App) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		a.screen = s
	}
	if err := a.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer a.screen.Fini()

	// The screen owns the terminal now; stderr writes would garble it.
	a.logger.Disable()
	defer a.logger.Enable()

	eventCh := make(chan tcell.Event, 16)
	stopPoll := make(chan struct{})
	defer close(stopPoll)
	go a.pollInput(eventCh, stopPoll)

	var chordTimer *time.Timer
	var chordC <-chan time.Time
	stopTimer := func() {
		if chordTimer != nil && !chordTimer.Stop() {
			select {
			case <-chordTimer.C:
			default:
			}
		}
		chordC = nil
	}
	defer stopTimer()

	// rearm restarts the chord timer while a partial sequence is
	// waiting, and silences it otherwise.
	rearm := func() {
		active := a.capture == nil &&
			len(a.session.Pending()) > 0 &&
			a.cfg.ChordTimeout > 0
		if !active {
			stopTimer()
			return
		}
		d := a.cfg.ChordTimeout.Std()
		if chordTimer == nil {
			chordTimer = time.NewTimer(d)
		} else {
			stopTimer()
			chordTimer.Reset(d)
		}
		chordC = chordTimer.C
	}

	a.render()

	for {
		select {
		case <-a.quitCh:
			return ErrQuit

		case <-a.reloadCh:
			a.reloadOverrides()
			a.render()

		case ev := <-eventCh:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyCtrlC {
					return ErrQuit
				}
				a.handleKey(tev)
				rearm()
			case *tcell.EventResize:
				a.screen.Sync()
			}
			a.render()

		case <-chordC:
			chordC = nil
			a.expireChord()
			a.render()
		}
	}
}

// pollInput forwards screen events to the loop. PollEvent returns nil
// once the screen is finalized, which ends the goroutine.
func (a *App) pollInput(ch chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case ch <- ev:
		case <-stop:
			return
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	c := term.Combination(ev)
	if c.IsZero() {
		return
	}
	a.handleCombination(c)
}

// handleCombination routes one decoded combination: capture mode first,
// then clutch release on Escape, then the session.
func (a *App) handleCombination(c key.Combination) {
	if a.capture != nil {
		a.captureKey(c)
		return
	}

	if c == comboEscape && a.session.Holding() {
		ended := a.session.Release()
		a.setStatus("released: " + joinIDs(ended))
		return
	}

	out := a.session.Feed(c)
	if a.capture != nil {
		// A fired action entered capture mode; its prompt stands.
		return
	}
	switch {
	case len(out.Fired) > 0:
		msg := "fired: " + joinIDs(out.Fired)
		if out.Pending {
			msg += " (longer chord abandoned)"
		}
		a.setStatus(msg)
	case out.Pending:
		a.setStatus(fmt.Sprintf("chord: %s ...", a.session.Pending().Label(a.platform)))
	case len(out.Unmatched) > 0:
		a.setStatus(fmt.Sprintf("no binding: %s", out.Unmatched.Label(a.platform)))
	}
}

// expireChord abandons a partial sequence that waited too long.
func (a *App) expireChord() {
	pending := a.session.Pending()
	if len(pending) == 0 {
		return
	}
	a.session.Reset()
	a.setStatus(fmt.Sprintf("chord timed out: %s", pending.Label(a.platform)))
}

// capture is the rebind state machine. While non-nil, key input is
// recorded instead of dispatched.
type capture struct {
	target *shortcut.Entry // nil while picking which entry to rebind
	pick   key.Sequence
	keys   key.Sequence
}

// startRebind enters capture mode. The next completed shortcut picks
// the entry to change; the keys typed after that become its override.
func (a *App) startRebind() {
	a.session.Reset()
	a.capture = &capture{}
	a.setStatus("rebind: press the shortcut to change (Esc cancels)")
}

func (a *App) captureKey(c key.Combination) {
	if c == comboEscape {
		a.capture = nil
		a.setStatus("rebind cancelled")
		return
	}
	if a.capture.target == nil {
		a.pickTarget(c)
		return
	}
	a.recordKey(c)
}

// pickTarget accumulates keys until they complete a bound shortcut,
// which becomes the rebind target.
func (a *App) pickTarget(c key.Combination) {
	st := a.capture
	st.pick = append(st.pick, c)
	m := a.registry.Match(st.pick, a.FocusedWindow())
	switch {
	case len(m.Full) > 0:
		st.target = m.Full[0]
		st.pick = nil
		a.setStatus(fmt.Sprintf("rebind %s: type new keys, Enter applies", st.target.ID()))
	case len(m.Pending) > 0:
		a.setStatus(fmt.Sprintf("rebind: %s ...", st.pick.Label(a.platform)))
	default:
		a.capture = nil
		a.setStatus(fmt.Sprintf("rebind: nothing bound to %s", st.pick.Label(a.platform)))
	}
}

// recordKey collects the replacement sequence until Enter commits it.
func (a *App) recordKey(c key.Combination) {
	st := a.capture
	if c == comboEnter {
		a.commitRebind()
		return
	}
	st.keys = append(st.keys, c)
	a.setStatus(fmt.Sprintf("rebind %s: %s (Enter applies)", st.target.ID(), st.keys.Label(a.platform)))
}

// commitRebind applies the recorded sequence as an override and
// persists it. Conflicts surface in the status line and change
// nothing.
func (a *App) commitRebind() {
	st := a.capture
	a.capture = nil
	if len(st.keys) == 0 {
		a.setStatus("rebind cancelled")
		return
	}

	id := st.target.ID()
	if err := a.registry.ApplyOverride(id, st.keys); err != nil {
		a.setStatus(fmt.Sprintf("rebind failed: %v", err))
		return
	}
	if err := a.persistOverride(id, st.keys); err != nil {
		a.logger.Warn("persisting override for %s: %v", id, err)
		a.setStatus(fmt.Sprintf("rebound %s (not saved: %v)", id, err))
		return
	}
	a.setStatus(fmt.Sprintf("rebound %s to %s", id, st.keys.Label(a.platform)))
}
