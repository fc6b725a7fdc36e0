// Package config holds the application settings: where shortcut
// declarations, user overrides, and legacy preferences live, and how
// the session behaves. Settings load from a TOML file with environment
// overrides on top.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/keybind/internal/key"
)

// Validation errors.
var (
	ErrBadPlatform     = errors.New(`platform must be "mac", "pc", or empty`)
	ErrBadLogLevel     = errors.New("unknown log level")
	ErrNegativeTimeout = errors.New("chord timeout cannot be negative")
)

// Duration wraps time.Duration so TOML and environment values can use
// Go duration syntax ("1500ms", "2s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the application configuration.
type Config struct {
	// ManifestPath is the TOML shortcut declaration file.
	ManifestPath string `toml:"manifest"`

	// ScriptPath is a Lua declaration file, run after the manifest.
	ScriptPath string `toml:"script"`

	// OverridesPath is the JSON file holding user overrides.
	OverridesPath string `toml:"overrides"`

	// LegacyPrefsPath points at an old preference file whose stored
	// keys are migrated on startup. Empty disables migration.
	LegacyPrefsPath string `toml:"legacy_prefs"`

	// Platform forces a display family, "mac" or "pc". Empty follows
	// the host.
	Platform string `toml:"platform"`

	// ChordTimeout bounds how long a partial sequence waits for its
	// next combination. Zero waits forever.
	ChordTimeout Duration `toml:"chord_timeout"`

	// LiveReload re-applies overrides when the overrides file changes
	// on disk.
	LiveReload bool `toml:"live_reload"`

	// LogLevel controls verbosity: debug, info, warn, or error.
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ManifestPath:  "shortcuts.toml",
		ScriptPath:    "shortcuts.lua",
		OverridesPath: "overrides.json",
		ChordTimeout:  Duration(2 * time.Second),
		LiveReload:    true,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	switch c.Platform {
	case "", "mac", "pc":
	default:
		return fmt.Errorf("%w: %q", ErrBadPlatform, c.Platform)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.LogLevel)
	}

	if c.ChordTimeout < 0 {
		return ErrNegativeTimeout
	}
	return nil
}

// DisplayPlatform resolves the configured platform family, falling
// back to the host's.
func (c Config) DisplayPlatform() key.Platform {
	switch c.Platform {
	case "mac":
		return key.Mac
	case "pc":
		return key.PC
	}
	return key.Native()
}
