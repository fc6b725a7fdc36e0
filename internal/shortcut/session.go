package shortcut

import (
	"github.com/dshills/keybind/internal/key"
)

// heldClutch is a clutch entry that fired its begin phase and has not
// yet been released. The window at engagement time is captured so the
// end phase sees the same target even after focus moves.
type heldClutch struct {
	entry *Entry
	win   Window
}

// Outcome reports what one fed combination did to the session.
type Outcome struct {
	// Fired holds the entries invoked by this combination.
	Fired []*Entry

	// Pending reports whether longer sequences were still reachable
	// when the combination resolved. With no fire the session keeps
	// the accumulator and waits for more input; after a fire the
	// longer sequences are abandoned and Pending records that they
	// existed.
	Pending bool

	// Unmatched holds the discarded accumulator when the combination
	// drove the sequence to a dead end. Empty otherwise.
	Unmatched key.Sequence
}

// Session accumulates combinations against a registry and drives
// dispatch. It owns the policy the registry refuses to have: when a
// candidate both fires an entry and extends toward longer ones, the
// session fires immediately and abandons the longer sequences. An
// embedder wanting the opposite trade can read Registry.Match itself.
//
// Sessions are driven from a single input goroutine and are not safe
// for concurrent use.
type Session struct {
	reg  *Registry
	win  Window
	buf  key.Sequence
	held []heldClutch
}

// NewSession creates a session over reg with no focused window. Only
// global entries are eligible until Focus is called.
func NewSession(reg *Registry) *Session {
	return &Session{reg: reg}
}

// Focus sets the focused window and discards any partial sequence. A
// half-typed chord aimed at one window must not fire in another.
func (s *Session) Focus(win Window) {
	s.win = win
	s.buf = nil
}

// Window returns the focused window, which may be nil.
func (s *Session) Window() Window {
	return s.win
}

// Pending returns a copy of the accumulated partial sequence.
func (s *Session) Pending() key.Sequence {
	return s.buf.Clone()
}

// Feed appends one combination to the accumulator and resolves it
// against the registry.
//
// A full match fires every matched entry with PhaseBegin and clears the
// accumulator; clutch entries are additionally parked until Release.
// With only pending matches the accumulator is kept and the outcome
// reports Pending. A dead end discards the accumulator and returns it
// in Unmatched so the embedder can replay or surface it. The discarded
// combinations are not re-fed: a prefix that went nowhere stays dead.
func (s *Session) Feed(c key.Combination) Outcome {
	s.buf = append(s.buf, c)
	m := s.reg.Match(s.buf, s.win)

	if len(m.Full) > 0 {
		fired := m.Full
		for _, e := range fired {
			e.Invoke(Args{Window: s.win, Phase: PhaseBegin})
			if e.kind == KindClutch {
				s.held = append(s.held, heldClutch{entry: e, win: s.win})
			}
		}
		s.buf = nil
		return Outcome{Fired: fired, Pending: len(m.Pending) > 0}
	}

	if len(m.Pending) > 0 {
		return Outcome{Pending: true}
	}

	dead := s.buf
	s.buf = nil
	return Outcome{Unmatched: dead}
}

// Release ends every held clutch, invoking each with PhaseEnd and the
// window captured at engagement. Terminals deliver no key-up events,
// so the embedder decides what counts as release: a designated key, a
// timeout, or a focus change.
func (s *Session) Release() []*Entry {
	if len(s.held) == 0 {
		return nil
	}
	held := s.held
	s.held = nil

	ended := make([]*Entry, 0, len(held))
	for _, h := range held {
		h.entry.Invoke(Args{Window: h.win, Phase: PhaseEnd})
		ended = append(ended, h.entry)
	}
	return ended
}

// Holding reports whether any clutch is engaged.
func (s *Session) Holding() bool {
	return len(s.held) > 0
}

// Reset discards any partial sequence without firing anything. Embedders
// call this on their chord timeout.
func (s *Session) Reset() {
	s.buf = nil
}
