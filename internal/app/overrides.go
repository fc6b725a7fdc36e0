package app

import (
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/shortcut"
)

// syncOverrides brings the registry in line with the overrides store:
// stored names are applied, absent names fall back to defaults. Bad
// specs and conflicts are logged and skipped, so a hand-edited file
// never takes the running set down.
func (a *App) syncOverrides() {
	log := a.logger.WithComponent("overrides")
	for _, e := range a.registry.Entries() {
		id := e.ID()
		raw, ok := a.overrides.Get(id.String())
		if !ok {
			a.registry.ResetOverride(id)
			continue
		}
		seq, err := key.ParseSequence(raw)
		if err != nil {
			log.Warn("override for %s: %v", id, err)
			continue
		}
		if err := a.registry.ApplyOverride(id, seq); err != nil {
			log.Warn("override for %s rejected: %v", id, err)
		}
	}
}

// persistMigrations completes legacy migration by writing overrides
// seeded at build time into the overrides store. A value already
// stored under the identifier wins over migration.
func (a *App) persistMigrations() {
	for _, e := range a.registry.Entries() {
		c, ok := e.Migrated()
		if !ok || !e.Overridden() {
			continue
		}
		id := e.ID()
		if _, exists := a.overrides.Get(id.String()); exists {
			continue
		}
		if err := a.persistOverride(id, key.Sequence{c}); err != nil {
			a.logger.Warn("migrating %s: %v", id, err)
		}
	}
}

// reloadOverrides re-reads the file after an external change and
// re-syncs. Our own saves also land here through the watcher; applying
// the same values again is a no-op.
func (a *App) reloadOverrides() {
	if err := a.overrides.Reload(); err != nil {
		a.logger.Warn("reloading overrides: %v", err)
		return
	}
	a.syncOverrides()
	a.setStatus("overrides reloaded")
}

// persistOverride saves one override under the entry's identifier.
func (a *App) persistOverride(id shortcut.Identifier, seq key.Sequence) error {
	return a.overrides.Set(id.String(), seq.String())
}
