package shortcut

import (
	"errors"
	"fmt"

	"github.com/dshills/keybind/internal/key"
)

// ErrEmptySequence rejects a default or override with no combinations.
// A shortcut with zero key combinations can never fire.
var ErrEmptySequence = errors.New("empty key sequence")

// Entry owns one action's key binding: the fixed default sequence, an
// optional user override, and the invocation target. The default never
// changes after construction; only the override slot mutates. Entries
// are created once at registration time and live until teardown.
type Entry struct {
	id       Identifier
	def      key.Sequence
	override key.Sequence // nil when no override is set
	invoke   Target
	context  Context
	kind     Kind
	migrated *key.Combination
}

// Option configures an entry at construction.
type Option func(*Entry)

// WithContext limits the entry to windows reporting the given context.
func WithContext(ctx Context) Option {
	return func(e *Entry) { e.context = ctx }
}

// WithKind sets the dispatch kind.
func WithKind(k Kind) Option {
	return func(e *Entry) { e.kind = k }
}

// WithMigratedLegacy records the single-key value recovered from a
// legacy preference, for the override layer to seed on first load.
func WithMigratedLegacy(c key.Combination) Option {
	return func(e *Entry) {
		migrated := c
		e.migrated = &migrated
	}
}

// NewEntry constructs an entry. The default sequence must be non-empty
// and is copied, so later mutation of the argument cannot reach the
// entry. fn may be a Target, a func(Args), or a func(); the shape is
// resolved once here.
func NewEntry(id Identifier, def key.Sequence, fn any, opts ...Option) (*Entry, error) {
	if len(def) == 0 {
		return nil, fmt.Errorf("entry %q: %w", id, ErrEmptySequence)
	}
	invoke, err := resolveTarget(fn)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", id, err)
	}

	e := &Entry{
		id:     id,
		def:    def.Clone(),
		invoke: invoke,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ID returns the entry's identifier.
func (e *Entry) ID() Identifier { return e.id }

// Context returns the entry's focus scope; empty means global.
func (e *Entry) Context() Context { return e.context }

// Kind returns the dispatch kind.
func (e *Entry) Kind() Kind { return e.kind }

// Default returns a copy of the construction-time sequence.
func (e *Entry) Default() key.Sequence { return e.def.Clone() }

// Active returns a copy of the sequence currently in effect: the
// override when one is set, the default otherwise.
func (e *Entry) Active() key.Sequence { return e.active().Clone() }

// active is the uncopied sequence in effect, for match evaluation.
func (e *Entry) active() key.Sequence {
	if e.override != nil {
		return e.override
	}
	return e.def
}

// Migrated returns the legacy-preference value recovered at
// registration time, if any.
func (e *Entry) Migrated() (key.Combination, bool) {
	if e.migrated == nil {
		return key.Combination{}, false
	}
	return *e.migrated, true
}

// StartsWith reports whether prefix equals a leading slice of the
// active sequence: the entry is still reachable while those keys are
// being typed.
func (e *Entry) StartsWith(prefix key.Sequence) bool {
	return e.active().HasPrefix(prefix)
}

// FullyMatches reports whether candidate equals the active sequence
// exactly. This is the fire condition.
func (e *Entry) FullyMatches(candidate key.Sequence) bool {
	return e.active().Equal(candidate)
}

// SetOverride replaces the active sequence with a copy of seq. It does
// not check seq against other entries; conflict detection is the
// registry's job, via ApplyOverride.
func (e *Entry) SetOverride(seq key.Sequence) error {
	if len(seq) == 0 {
		return fmt.Errorf("entry %q: %w", e.id, ErrEmptySequence)
	}
	e.override = seq.Clone()
	return nil
}

// ResetToDefault clears the override, reverting to the default
// sequence. Idempotent.
func (e *Entry) ResetToDefault() {
	e.override = nil
}

// Overridden reports whether an override is in effect. It is a
// presence flag: an override equal to the default still counts.
func (e *Entry) Overridden() bool {
	return e.override != nil
}

// Invoke dispatches the target with the given arguments.
func (e *Entry) Invoke(args Args) {
	e.invoke(args)
}
