package shortcut

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/keybind/internal/key"
)

// Registry errors.
var (
	ErrDuplicate         = errors.New("identifier already registered")
	ErrUnknownIdentifier = errors.New("unknown identifier")
)

// ConflictError reports an override that would collide with another
// entry's active sequence in an overlapping context scope.
type ConflictError struct {
	// ID is the entry the override was meant for.
	ID Identifier

	// Other is the entry already bound to the sequence.
	Other Identifier

	// Sequence is the rejected override.
	Sequence key.Sequence
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("override %q for %s conflicts with %s", e.Sequence, e.ID, e.Other)
}

// Registry holds the live set of entries, keyed by identifier. Lookups
// are O(1); sequence queries scan linearly, which covers the tens to
// low hundreds of entries a keymap carries. The mutex exists for
// embedders that apply overrides from outside the input goroutine, such
// as a preference-file reloader.
type Registry struct {
	mu      sync.RWMutex
	entries map[Identifier]*Entry
	order   []Identifier
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Identifier]*Entry),
	}
}

// Register adds an entry. Identifiers are unique: registering a second
// entry under an identifier already present fails with ErrDuplicate.
func (r *Registry) Register(e *Entry) error {
	if e == nil {
		return errors.New("cannot register nil entry")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.id)
	}
	r.entries[e.id] = e
	r.order = append(r.order, e.id)
	return nil
}

// Lookup returns the entry for an identifier.
func (r *Registry) Lookup(id Identifier) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Match describes the state of a candidate sequence against the
// registry: the entries it fires and the longer entries it could still
// become. Both facts are reported side by side; choosing between them
// is the caller's policy, never the registry's.
type Match struct {
	// Full holds entries whose active sequence equals the candidate.
	// A well-formed registry yields at most one per context scope.
	Full []*Entry

	// Pending holds entries whose active sequence is strictly longer
	// than the candidate and still reachable from it.
	Pending []*Entry
}

// None reports whether the candidate matched nothing at all.
func (m Match) None() bool {
	return len(m.Full) == 0 && len(m.Pending) == 0
}

// Match evaluates a candidate sequence against every entry eligible for
// the focused window. The context filter runs first: an entry takes
// part only when its context is global or appears in the window's
// lineage, and a nil window keeps only global entries. Results preserve
// registration order.
func (r *Registry) Match(candidate key.Sequence, win Window) Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var m Match
	for _, id := range r.order {
		e := r.entries[id]
		if !eligible(e, win) {
			continue
		}
		if e.FullyMatches(candidate) {
			m.Full = append(m.Full, e)
			continue
		}
		if len(e.active()) > len(candidate) && e.StartsWith(candidate) {
			m.Pending = append(m.Pending, e)
		}
	}
	return m
}

// eligible applies the context filter for one entry.
func eligible(e *Entry, win Window) bool {
	if e.context == "" {
		return true
	}
	if win == nil {
		return false
	}
	for _, ctx := range win.ShortcutContexts() {
		if ctx == e.context {
			return true
		}
	}
	return false
}

// ApplyOverride validates and installs an override for id. The
// override is rejected with a *ConflictError when another entry's
// active sequence equals seq and the two context scopes overlap, that
// is, the contexts are equal or either side is global. Entries in
// disjoint scopes may share a sequence freely.
func (r *Registry) ApplyOverride(id Identifier, seq key.Sequence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}

	for _, otherID := range r.order {
		other := r.entries[otherID]
		if other.id == id {
			continue
		}
		if !scopesOverlap(e.context, other.context) {
			continue
		}
		if other.active().Equal(seq) {
			return &ConflictError{ID: id, Other: other.id, Sequence: seq.Clone()}
		}
	}

	return e.SetOverride(seq)
}

// scopesOverlap reports whether two context scopes can both be live for
// the same focused window. Global overlaps everything.
func scopesOverlap(a, b Context) bool {
	return a == "" || b == "" || a == b
}

// ResetOverride reverts id to its default sequence.
func (r *Registry) ResetOverride(id Identifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	e.ResetToDefault()
	return nil
}
