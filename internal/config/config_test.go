package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keybind/internal/key"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ManifestPath != "shortcuts.toml" {
		t.Errorf("ManifestPath = %q, want %q", cfg.ManifestPath, "shortcuts.toml")
	}
	if cfg.ScriptPath != "shortcuts.lua" {
		t.Errorf("ScriptPath = %q, want %q", cfg.ScriptPath, "shortcuts.lua")
	}
	if cfg.OverridesPath != "overrides.json" {
		t.Errorf("OverridesPath = %q, want %q", cfg.OverridesPath, "overrides.json")
	}
	if cfg.ChordTimeout.Std() != 2*time.Second {
		t.Errorf("ChordTimeout = %v, want %v", cfg.ChordTimeout.Std(), 2*time.Second)
	}
	if !cfg.LiveReload {
		t.Error("LiveReload should default to true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid defaults", func(c *Config) {}, nil},
		{"mac platform", func(c *Config) { c.Platform = "mac" }, nil},
		{"pc platform", func(c *Config) { c.Platform = "pc" }, nil},
		{"bad platform", func(c *Config) { c.Platform = "amiga" }, ErrBadPlatform},
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, nil},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, ErrBadLogLevel},
		{"negative timeout", func(c *Config) { c.ChordTimeout = Duration(-time.Second) }, ErrNegativeTimeout},
		{"zero timeout", func(c *Config) { c.ChordTimeout = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ManifestPath != Default().ManifestPath {
		t.Errorf("missing file should yield defaults, got manifest %q", cfg.ManifestPath)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	content := `
manifest = "my/shortcuts.toml"
script = ""
overrides = "my/overrides.json"
legacy_prefs = "old-prefs.json"
platform = "mac"
chord_timeout = "750ms"
live_reload = false
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ManifestPath != "my/shortcuts.toml" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.ScriptPath != "" {
		t.Errorf("ScriptPath = %q, want empty", cfg.ScriptPath)
	}
	if cfg.OverridesPath != "my/overrides.json" {
		t.Errorf("OverridesPath = %q", cfg.OverridesPath)
	}
	if cfg.LegacyPrefsPath != "old-prefs.json" {
		t.Errorf("LegacyPrefsPath = %q", cfg.LegacyPrefsPath)
	}
	if cfg.Platform != "mac" {
		t.Errorf("Platform = %q", cfg.Platform)
	}
	if cfg.ChordTimeout.Std() != 750*time.Millisecond {
		t.Errorf("ChordTimeout = %v", cfg.ChordTimeout.Std())
	}
	if cfg.LiveReload {
		t.Error("LiveReload should be false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	if err := os.WriteFile(path, []byte("manifest = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	if err := os.WriteFile(path, []byte(`platform = "vax"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrBadPlatform) {
		t.Errorf("Load() = %v, want ErrBadPlatform", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KEYBIND_MANIFEST", "env/shortcuts.toml")
	t.Setenv("KEYBIND_PLATFORM", "pc")
	t.Setenv("KEYBIND_CHORD_TIMEOUT", "5s")
	t.Setenv("KEYBIND_LIVE_RELOAD", "off")
	t.Setenv("KEYBIND_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ManifestPath != "env/shortcuts.toml" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.Platform != "pc" {
		t.Errorf("Platform = %q", cfg.Platform)
	}
	if cfg.ChordTimeout.Std() != 5*time.Second {
		t.Errorf("ChordTimeout = %v", cfg.ChordTimeout.Std())
	}
	if cfg.LiveReload {
		t.Error("LiveReload should be off")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	if err := os.WriteFile(path, []byte(`log_level = "error"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYBIND_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, environment should win over file", cfg.LogLevel)
	}
}

func TestEnvBadDuration(t *testing.T) {
	t.Setenv("KEYBIND_CHORD_TIMEOUT", "soonish")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load() should fail on unparseable KEYBIND_CHORD_TIMEOUT")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		prev bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"off", true, false},
		{"0", true, false},
		{" true ", false, true},
		{"maybe", true, true},
		{"maybe", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := parseBool(tt.in, tt.prev); got != tt.want {
			t.Errorf("parseBool(%q, %v) = %v, want %v", tt.in, tt.prev, got, tt.want)
		}
	}
}

func TestDisplayPlatform(t *testing.T) {
	cfg := Default()

	cfg.Platform = "mac"
	if got := cfg.DisplayPlatform(); got.Name != key.Mac.Name {
		t.Errorf("DisplayPlatform() = %q, want %q", got.Name, key.Mac.Name)
	}

	cfg.Platform = "pc"
	if got := cfg.DisplayPlatform(); got.Name != key.PC.Name {
		t.Errorf("DisplayPlatform() = %q, want %q", got.Name, key.PC.Name)
	}

	cfg.Platform = ""
	if got := cfg.DisplayPlatform(); got.Name != key.Native().Name {
		t.Errorf("DisplayPlatform() = %q, want native %q", got.Name, key.Native().Name)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1500ms")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if d.Std() != 1500*time.Millisecond {
		t.Errorf("Std() = %v", d.Std())
	}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "1.5s" {
		t.Errorf("MarshalText() = %q, want %q", text, "1.5s")
	}

	if err := d.UnmarshalText([]byte("fast")); err == nil {
		t.Error("UnmarshalText should reject non-durations")
	}
}
