package shortcut

import (
	"testing"

	"github.com/dshills/keybind/internal/key"
)

func TestMigrateLegacy(t *testing.T) {
	declared := key.MustParse("f1")

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "stored value differs from declared default",
			raw:  "shift+f1",
			want: "shift+f1",
			ok:   true,
		},
		{
			name: "stored value equals declared default",
			raw:  "f1",
			ok:   false,
		},
		{
			name: "equality survives spelling differences",
			raw:  "F1",
			ok:   false,
		},
		{
			name: "malformed value is skipped",
			raw:  "not a key",
			ok:   false,
		},
		{
			name: "empty value is skipped",
			raw:  "",
			ok:   false,
		},
		{
			name: "remapped to plain character",
			raw:  "ctrl+m",
			want: "ctrl+m",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MigrateLegacy(tt.raw, declared)
			if ok != tt.ok {
				t.Fatalf("MigrateLegacy(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != key.MustParse(tt.want) {
				t.Errorf("MigrateLegacy(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestMigrateLegacySeedsOverride walks the full path: a manifest entry
// declares a legacy preference, the stored value differs from the old
// default, and the migrated value surfaces as the entry's override.
func TestMigrateLegacySeedsOverride(t *testing.T) {
	e, err := NewEntry("mytool.action", key.MustParseSequence("f1"), nopTarget,
		WithMigratedLegacy(key.MustParse("shift+f1")))
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}

	reg := NewRegistry()
	if err := reg.Register(e); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	c, ok := e.Migrated()
	if !ok {
		t.Fatal("Migrated() = false, want recorded combination")
	}
	if err := reg.ApplyOverride(e.ID(), key.Sequence{c}); err != nil {
		t.Fatalf("ApplyOverride() error = %v", err)
	}

	if !e.Overridden() {
		t.Error("Overridden() = false after seeding migrated value")
	}
	if got := e.Active().String(); got != "shift+f1" {
		t.Errorf("Active() = %q, want %q", got, "shift+f1")
	}
	if got := e.Default().String(); got != "f1" {
		t.Errorf("Default() = %q, want %q", got, "f1")
	}
}
