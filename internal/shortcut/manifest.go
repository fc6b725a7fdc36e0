package shortcut

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keybind/internal/key"
)

// Manifest build errors.
var (
	ErrUnknownKind = errors.New("unknown shortcut kind")
	ErrNoTarget    = errors.New("no target for identifier")
)

// Descriptor declares one shortcut in a manifest file. Keys holds the
// default sequence in spec form ("ctrl+k ctrl+s"). LegacyPref and
// LegacyDefault name an older single-key preference and its declared
// default, enabling one-time migration of stored values.
type Descriptor struct {
	ID            string `toml:"id"`
	Keys          string `toml:"keys"`
	Context       string `toml:"context"`
	Kind          string `toml:"kind"`
	LegacyPref    string `toml:"legacy_pref"`
	LegacyDefault string `toml:"legacy_default"`
}

// Manifest is the on-disk declaration of a shortcut set.
type Manifest struct {
	Shortcuts []Descriptor `toml:"shortcut"`
}

// LoadManifest reads a TOML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil // File doesn't exist, nothing declared
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Resolver maps a declared identifier to its invocation target. The
// returned value may be any shape NewEntry accepts.
type Resolver func(Identifier) (any, bool)

// PrefReader reads string values from an older preference store during
// migration.
type PrefReader interface {
	Get(name string) (string, bool)
}

// Build registers every declared shortcut into a fresh registry.
// resolve supplies targets; prefs, when non-nil, feeds one-time legacy
// migration. Declaration mistakes (bad keys, unknown kind, missing
// target) are errors; stale stored preference values are not.
func Build(m *Manifest, resolve Resolver, prefs PrefReader) (*Registry, error) {
	reg := NewRegistry()
	for _, d := range m.Shortcuts {
		e, err := buildEntry(d, resolve, prefs)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(e); err != nil {
			return nil, err
		}
	}

	// Migrated values seed the override layer only after every default
	// is registered, so conflict checks see the whole set. A legacy
	// value that collides with another entry is dropped rather than
	// allowed to break startup.
	for _, e := range reg.Entries() {
		c, ok := e.Migrated()
		if !ok {
			continue
		}
		if err := reg.ApplyOverride(e.ID(), key.Sequence{c}); err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				continue
			}
			return nil, err
		}
	}
	return reg, nil
}

func buildEntry(d Descriptor, resolve Resolver, prefs PrefReader) (*Entry, error) {
	id := Identifier(d.ID)

	seq, err := key.ParseSequence(d.Keys)
	if err != nil {
		return nil, fmt.Errorf("shortcut %q: keys %q: %w", id, d.Keys, err)
	}

	fn, ok := resolve(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, id)
	}

	kind, err := parseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("shortcut %q: %w", id, err)
	}

	opts := []Option{WithContext(Context(d.Context)), WithKind(kind)}

	if d.LegacyPref != "" && prefs != nil {
		opt, err := legacyOption(d, prefs)
		if err != nil {
			return nil, fmt.Errorf("shortcut %q: %w", id, err)
		}
		if opt != nil {
			opts = append(opts, opt)
		}
	}

	return NewEntry(id, seq, fn, opts...)
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "", "action":
		return KindAction, nil
	case "clutch":
		return KindClutch, nil
	default:
		return KindAction, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// legacyOption consults the old preference store and returns the
// option carrying the migrated combination, or nil when there is
// nothing to carry over. The declared legacy default is authored by
// the embedder, so it must parse; the stored user value is not trusted
// the same way and fails soft.
func legacyOption(d Descriptor, prefs PrefReader) (Option, error) {
	declared, err := key.Parse(d.LegacyDefault)
	if err != nil {
		return nil, fmt.Errorf("legacy default %q: %w", d.LegacyDefault, err)
	}
	raw, ok := prefs.Get(d.LegacyPref)
	if !ok {
		return nil, nil
	}
	c, ok := MigrateLegacy(raw, declared)
	if !ok {
		return nil, nil
	}
	return WithMigratedLegacy(c), nil
}
