package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Load reads the configuration file at path, applies environment
// overrides, and validates the result. A missing file is not an
// error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		// File doesn't exist, defaults plus environment apply.
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays KEYBIND_* environment variables onto the
// configuration. Each variable maps to exactly one field.
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("KEYBIND_MANIFEST"); ok {
		c.ManifestPath = v
	}
	if v, ok := os.LookupEnv("KEYBIND_SCRIPT"); ok {
		c.ScriptPath = v
	}
	if v, ok := os.LookupEnv("KEYBIND_OVERRIDES"); ok {
		c.OverridesPath = v
	}
	if v, ok := os.LookupEnv("KEYBIND_LEGACY_PREFS"); ok {
		c.LegacyPrefsPath = v
	}
	if v, ok := os.LookupEnv("KEYBIND_PLATFORM"); ok {
		c.Platform = v
	}
	if v, ok := os.LookupEnv("KEYBIND_CHORD_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing KEYBIND_CHORD_TIMEOUT: %w", err)
		}
		c.ChordTimeout = Duration(d)
	}
	if v, ok := os.LookupEnv("KEYBIND_LIVE_RELOAD"); ok {
		c.LiveReload = parseBool(v, c.LiveReload)
	}
	if v, ok := os.LookupEnv("KEYBIND_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// parseBool accepts the usual spellings of a boolean. Anything else
// keeps the previous value.
func parseBool(s string, prev bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return prev
}
