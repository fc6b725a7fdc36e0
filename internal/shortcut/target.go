package shortcut

import (
	"errors"
	"fmt"
)

// ErrBadTarget rejects callbacks with an unsupported signature.
var ErrBadTarget = errors.New("unsupported target signature")

// Phase tells a target whether its shortcut is engaging or releasing.
type Phase int

const (
	// PhaseBegin marks dispatch when the sequence completes.
	PhaseBegin Phase = iota

	// PhaseEnd marks the release of a clutch entry.
	PhaseEnd
)

// String returns "begin" or "end".
func (p Phase) String() string {
	if p == PhaseEnd {
		return "end"
	}
	return "begin"
}

// Window is the focus target a shortcut fires against. Implementations
// report the context tags they answer to, most specific first; an entry
// is eligible when its context appears in that lineage.
type Window interface {
	ShortcutContexts() []Context
}

// Args carries the per-dispatch state passed to a target. A fresh value
// is built for every invocation and never retained by the core.
type Args struct {
	// Window is the focused window at dispatch time; may be nil.
	Window Window

	// Phase is PhaseBegin when the sequence completes, PhaseEnd when a
	// clutch releases.
	Phase Phase
}

// Target is the invocation callback attached to an entry. Targets
// return nothing; a panic propagates to whatever drove the dispatch.
type Target func(Args)

// resolveTarget normalizes the supported callback shapes into a Target.
// A nullary func is wrapped so dispatch is uniform; the shape decision
// happens once here, not per call.
func resolveTarget(fn any) (Target, error) {
	switch f := fn.(type) {
	case Target:
		return f, nil
	case func(Args):
		return f, nil
	case func():
		return func(Args) { f() }, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadTarget, fn)
	}
}
