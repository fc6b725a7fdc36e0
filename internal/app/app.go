package app

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/prefstore"
	"github.com/dshills/keybind/internal/script"
	"github.com/dshills/keybind/internal/shortcut"
)

// App hosts the shortcut engine in a terminal. It loads declarations
// from the manifest and script, builds the registry, applies persisted
// overrides, and feeds decoded key events through a session.
//
// Apart from the input-polling goroutine and the override watcher, all
// state is touched from the event loop goroutine only.
type App struct {
	cfg      config.Config
	logger   *Logger
	platform key.Platform

	registry *shortcut.Registry
	session  *shortcut.Session

	overrides *prefstore.File
	watcher   *prefstore.Watcher

	windows []*Window
	focus   int

	actions map[shortcut.Identifier]shortcut.Target

	screen tcell.Screen

	running  atomic.Bool
	quitCh   chan struct{}
	quitOnce sync.Once
	reloadCh chan struct{}

	capture *capture
	status  string
}

// New builds the application from the given configuration. A nil
// logger gets the default stderr logger at the configured level.
func New(cfg config.Config, logger *Logger) (*App, error) {
	if logger == nil {
		lc := DefaultLoggerConfig()
		lc.Level = ParseLogLevel(cfg.LogLevel)
		logger = NewLogger(lc)
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		platform: cfg.DisplayPlatform(),
		quitCh:   make(chan struct{}),
		reloadCh: make(chan struct{}, 1),
		windows: []*Window{
			NewWindow("editor: main.go", "editor"),
			NewWindow("terminal: shell", "terminal"),
			NewWindow("editor: split diff", "split", "editor"),
		},
	}
	a.actions = map[shortcut.Identifier]shortcut.Target{
		"app.quit":      func(shortcut.Args) { a.Quit() },
		"app.focusNext": func(shortcut.Args) { a.CycleFocus() },
		"app.rebind":    func(shortcut.Args) { a.startRebind() },
	}

	manifest, err := a.loadDeclarations()
	if err != nil {
		return nil, err
	}

	var prefs shortcut.PrefReader
	if cfg.LegacyPrefsPath != "" {
		legacy, err := prefstore.Open(cfg.LegacyPrefsPath)
		if err != nil {
			// A stale or mangled legacy file never blocks startup.
			logger.Warn("legacy preferences %s: %v", cfg.LegacyPrefsPath, err)
		} else {
			prefs = legacy
		}
	}

	a.registry, err = shortcut.Build(manifest, a.resolve, prefs)
	if err != nil {
		return nil, &InitError{Component: "registry", Err: err}
	}

	a.overrides, err = prefstore.Open(cfg.OverridesPath)
	if err != nil {
		return nil, &InitError{Component: "overrides", Err: err}
	}
	a.persistMigrations()
	a.syncOverrides()

	a.session = shortcut.NewSession(a.registry)
	a.session.Focus(a.windows[0])

	if cfg.LiveReload {
		a.watcher, err = prefstore.NewWatcher(cfg.OverridesPath, a.notifyReload)
		if err != nil {
			// Live reload is a convenience; run without it.
			logger.Warn("watching %s: %v", cfg.OverridesPath, err)
			a.watcher = nil
		}
	}

	logger.Info("registered %d shortcuts", a.registry.Len())
	return a, nil
}

// loadDeclarations reads the TOML manifest and, when present, runs the
// Lua script, merging both descriptor sets.
func (a *App) loadDeclarations() (*shortcut.Manifest, error) {
	manifest, err := shortcut.LoadManifest(a.cfg.ManifestPath)
	if err != nil {
		return nil, &InitError{Component: "manifest", Err: err}
	}

	if a.cfg.ScriptPath != "" {
		if _, err := os.Stat(a.cfg.ScriptPath); err == nil {
			feed := script.NewFeed()
			defer feed.Close()
			if err := feed.RunFile(a.cfg.ScriptPath); err != nil {
				return nil, &InitError{Component: "script", Err: err}
			}
			manifest.Shortcuts = append(manifest.Shortcuts, feed.Shortcuts()...)
		}
	}
	return manifest, nil
}

// resolve maps identifiers to targets. Identifiers without a built-in
// action get an announcing target, so any manifest is demoable.
func (a *App) resolve(id shortcut.Identifier) (any, bool) {
	if t, ok := a.actions[id]; ok {
		return t, true
	}
	return shortcut.Target(func(args shortcut.Args) { a.announce(id, args) }), true
}

// announce is the default target body: show what fired.
func (a *App) announce(id shortcut.Identifier, args shortcut.Args) {
	if args.Phase == shortcut.PhaseEnd {
		a.setStatus(fmt.Sprintf("%s released", id))
		return
	}
	a.setStatus(fmt.Sprintf("%s fired", id))
}

// notifyReload is called from the watcher goroutine; the event loop
// drains reloadCh and does the actual work.
func (a *App) notifyReload() {
	select {
	case a.reloadCh <- struct{}{}:
	default:
	}
}

// Quit requests a normal shutdown. Safe to call more than once and
// from any goroutine.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quitCh) })
}

// Close releases background resources. The screen is owned by Run.
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// CycleFocus moves focus to the next demo window.
func (a *App) CycleFocus() {
	a.focus = (a.focus + 1) % len(a.windows)
	win := a.windows[a.focus]
	a.session.Focus(win)
	a.setStatus(fmt.Sprintf("focus: %s", win.Title()))
}

// FocusedWindow returns the window shortcuts currently fire against.
func (a *App) FocusedWindow() *Window {
	return a.windows[a.focus]
}

// Registry exposes the built registry.
func (a *App) Registry() *shortcut.Registry {
	return a.registry
}

// IsRunning reports whether the event loop is active.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

// Status returns the last status line.
func (a *App) Status() string {
	return a.status
}

func (a *App) setStatus(msg string) {
	a.status = msg
}

func joinIDs(entries []*shortcut.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.ID().String()
	}
	return strings.Join(parts, ", ")
}
