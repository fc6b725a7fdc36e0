package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keybind/internal/config"
)

const demoManifest = `
[[shortcut]]
id = "file.save"
keys = "ctrl+s"
context = "editor"

[[shortcut]]
id = "file.saveAll"
keys = "ctrl+k ctrl+s"

[[shortcut]]
id = "nav.scroll"
keys = "ctrl+space"
kind = "clutch"

[[shortcut]]
id = "app.quit"
keys = "ctrl+q"

[[shortcut]]
id = "app.rebind"
keys = "ctrl+r"
`

// testConfig writes the demo manifest into a temp dir and returns a
// config pointing at it. Live reload is off so tests stay synchronous.
func testConfig(t *testing.T) (config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.ManifestPath = filepath.Join(dir, "shortcuts.toml")
	cfg.ScriptPath = ""
	cfg.OverridesPath = filepath.Join(dir, "overrides.json")
	cfg.Platform = "pc"
	cfg.LiveReload = false

	if err := os.WriteFile(cfg.ManifestPath, []byte(demoManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg, dir
}

func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	a, err := New(cfg, NullLogger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_New(t *testing.T) {
	cfg, _ := testConfig(t)

	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	a, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if a.Registry().Len() != 5 {
		t.Errorf("Len() = %d, want 5", a.Registry().Len())
	}
	e, ok := a.Registry().Lookup("file.save")
	if !ok {
		t.Fatal("file.save not registered")
	}
	if e.Context() != "editor" {
		t.Errorf("Context() = %q", e.Context())
	}
	if a.FocusedWindow().Title() != "editor: main.go" {
		t.Errorf("FocusedWindow() = %q", a.FocusedWindow().Title())
	}
	if !strings.Contains(buf.String(), "registered 5 shortcuts") {
		t.Errorf("expected registration log, got: %s", buf.String())
	}
}

func TestApp_New_MissingManifest(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.ManifestPath = filepath.Join(dir, "absent.toml")

	a := newTestApp(t, cfg)
	if a.Registry().Len() != 0 {
		t.Errorf("Len() = %d, want 0", a.Registry().Len())
	}
}

func TestApp_New_BadManifest(t *testing.T) {
	cfg, _ := testConfig(t)
	if err := os.WriteFile(cfg.ManifestPath, []byte("[[shortcut"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(cfg, NullLogger)
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("New() error = %v, want InitError", err)
	}
	if initErr.Component != "manifest" {
		t.Errorf("Component = %q, want manifest", initErr.Component)
	}
}

func TestApp_New_Script(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.ScriptPath = filepath.Join(dir, "shortcuts.lua")
	script := `keybind.bind("script.hello", "f6")`
	if err := os.WriteFile(cfg.ScriptPath, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	if a.Registry().Len() != 6 {
		t.Errorf("Len() = %d, want 6", a.Registry().Len())
	}
	if _, ok := a.Registry().Lookup("script.hello"); !ok {
		t.Error("script.hello not registered")
	}
}

func TestApp_New_BadScript(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.ScriptPath = filepath.Join(dir, "shortcuts.lua")
	script := `keybind.bind("script.bad", "wat+q")`
	if err := os.WriteFile(cfg.ScriptPath, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(cfg, NullLogger)
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("New() error = %v, want InitError", err)
	}
	if initErr.Component != "script" {
		t.Errorf("Component = %q, want script", initErr.Component)
	}
}

func TestApp_New_MissingScriptSkipped(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.ScriptPath = filepath.Join(dir, "absent.lua")

	a := newTestApp(t, cfg)
	if a.Registry().Len() != 5 {
		t.Errorf("Len() = %d, want 5", a.Registry().Len())
	}
}

func TestApp_New_OverridesApplied(t *testing.T) {
	cfg, _ := testConfig(t)
	if err := os.WriteFile(cfg.OverridesPath, []byte(`{"file.save":"alt+s"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	e, _ := a.Registry().Lookup("file.save")
	if !e.Overridden() {
		t.Fatal("expected stored override applied")
	}
	if e.Active().String() != "alt+s" {
		t.Errorf("Active() = %q, want alt+s", e.Active().String())
	}
}

func TestApp_New_OverrideConflictSkipped(t *testing.T) {
	cfg, _ := testConfig(t)
	// ctrl+s is file.save's active sequence in an overlapping scope.
	if err := os.WriteFile(cfg.OverridesPath, []byte(`{"file.saveAll":"ctrl+s"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	a, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	e, _ := a.Registry().Lookup("file.saveAll")
	if e.Overridden() {
		t.Error("conflicting override should be skipped")
	}
	if !strings.Contains(buf.String(), "rejected") {
		t.Errorf("expected rejection warning, got: %s", buf.String())
	}
}

func TestApp_New_MalformedOverrideSkipped(t *testing.T) {
	cfg, _ := testConfig(t)
	if err := os.WriteFile(cfg.OverridesPath, []byte(`{"file.save":"wat+x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	e, _ := a.Registry().Lookup("file.save")
	if e.Overridden() {
		t.Error("unparseable override should be skipped")
	}
}

func TestApp_New_LegacyMigration(t *testing.T) {
	cfg, dir := testConfig(t)
	manifest := `
[[shortcut]]
id = "legacy.save"
keys = "f1"
legacy_pref = "mytool.keys.save"
legacy_default = "f1"
`
	if err := os.WriteFile(cfg.ManifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.LegacyPrefsPath = filepath.Join(dir, "legacy.json")
	if err := os.WriteFile(cfg.LegacyPrefsPath, []byte(`{"mytool.keys.save":"shift+f1"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	e, _ := a.Registry().Lookup("legacy.save")
	if !e.Overridden() {
		t.Fatal("expected migrated override")
	}
	if e.Active().String() != "shift+f1" {
		t.Errorf("Active() = %q, want shift+f1", e.Active().String())
	}

	// Migration lands in the overrides store so it survives restarts.
	if raw, ok := a.overrides.Get("legacy.save"); !ok || raw != "shift+f1" {
		t.Errorf("overrides store = %q, %v; want shift+f1 present", raw, ok)
	}
}

func TestApp_New_StoredOverrideWinsOverMigration(t *testing.T) {
	cfg, dir := testConfig(t)
	manifest := `
[[shortcut]]
id = "legacy.save"
keys = "f1"
legacy_pref = "mytool.keys.save"
legacy_default = "f1"
`
	if err := os.WriteFile(cfg.ManifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.LegacyPrefsPath = filepath.Join(dir, "legacy.json")
	if err := os.WriteFile(cfg.LegacyPrefsPath, []byte(`{"mytool.keys.save":"shift+f1"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.OverridesPath, []byte(`{"legacy.save":"f2"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	e, _ := a.Registry().Lookup("legacy.save")
	if e.Active().String() != "f2" {
		t.Errorf("Active() = %q, want stored f2 over migrated shift+f1", e.Active().String())
	}
	if raw, _ := a.overrides.Get("legacy.save"); raw != "f2" {
		t.Errorf("overrides store = %q, want f2 untouched", raw)
	}
}

func TestApp_New_MalformedLegacyPrefsIgnored(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.LegacyPrefsPath = filepath.Join(dir, "legacy.json")
	if err := os.WriteFile(cfg.LegacyPrefsPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	if a.Registry().Len() != 5 {
		t.Errorf("Len() = %d, want 5", a.Registry().Len())
	}
}

func TestApp_CycleFocus(t *testing.T) {
	cfg, _ := testConfig(t)
	a := newTestApp(t, cfg)

	first := a.FocusedWindow()
	a.CycleFocus()
	second := a.FocusedWindow()
	if first.ID() == second.ID() {
		t.Error("focus did not move")
	}
	if a.session.Window() != second {
		t.Error("session focus did not follow")
	}

	a.CycleFocus()
	a.CycleFocus()
	if a.FocusedWindow().ID() != first.ID() {
		t.Error("focus should wrap around to the first window")
	}
}

func TestApp_Quit(t *testing.T) {
	cfg, _ := testConfig(t)
	a := newTestApp(t, cfg)

	a.Quit()
	a.Quit() // safe to repeat

	select {
	case <-a.quitCh:
	default:
		t.Error("quit channel should be closed")
	}
}

func TestApp_Close_WithWatcher(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.LiveReload = true

	a, err := New(cfg, NullLogger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.watcher == nil {
		t.Fatal("expected a watcher with live reload on")
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
