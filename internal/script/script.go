// Package script runs Lua declaration files that bind shortcuts. A
// script calls the keybind module to declare entries; the collected
// descriptors then flow through the same build path as a TOML
// manifest.
//
// Example script:
//
//	keybind.bind("file.saveAll", "ctrl+k ctrl+s", { context = "editor" })
//	keybind.bind("voice.pushToTalk", "ctrl+space", { kind = "clutch" })
//	if keybind.platform() == "mac" then
//	    keybind.bind("app.quit", "ctrl+q")
//	end
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/shortcut"
)

// Feed owns a Lua state with the keybind module installed and collects
// the shortcuts scripts declare through it.
type Feed struct {
	L     *lua.LState
	descs []shortcut.Descriptor
}

// NewFeed creates a feed with a sandboxed Lua state.
func NewFeed() *Feed {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})

	// Base plus the safe value-manipulation libraries. io, os, debug,
	// and package stay closed: declaration scripts have no business
	// touching the host.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	f := &Feed{L: L}
	f.register()
	return f
}

// Close releases the Lua state.
func (f *Feed) Close() {
	f.L.Close()
}

// Shortcuts returns the descriptors declared so far, in declaration
// order.
func (f *Feed) Shortcuts() []shortcut.Descriptor {
	out := make([]shortcut.Descriptor, len(f.descs))
	copy(out, f.descs)
	return out
}

// RunFile executes a Lua declaration file.
func (f *Feed) RunFile(path string) error {
	if err := f.L.DoFile(path); err != nil {
		return fmt.Errorf("running shortcut script %s: %w", path, err)
	}
	return nil
}

// RunString executes inline Lua source.
func (f *Feed) RunString(src string) error {
	if err := f.L.DoString(src); err != nil {
		return fmt.Errorf("running shortcut script: %w", err)
	}
	return nil
}

// register installs the keybind module into the Lua state.
func (f *Feed) register() {
	mod := f.L.NewTable()

	f.L.SetField(mod, "bind", f.L.NewFunction(f.bind))
	f.L.SetField(mod, "platform", f.L.NewFunction(f.platform))

	f.L.SetGlobal("keybind", mod)
}

// bind(id, keys, opts?) -> nil
// Declares a shortcut. opts can include: context, kind, legacy_pref,
// legacy_default.
func (f *Feed) bind(L *lua.LState) int {
	id := L.CheckString(1)
	keys := L.CheckString(2)

	if id == "" {
		L.ArgError(1, "id cannot be empty")
		return 0
	}
	if keys == "" {
		L.ArgError(2, "keys cannot be empty")
		return 0
	}

	// Validate eagerly so the script author sees the failing line, not
	// a build error long after the state is gone.
	if _, err := key.ParseSequence(keys); err != nil {
		L.RaiseError("bind: invalid keys %q: %v", keys, err)
		return 0
	}

	d := shortcut.Descriptor{ID: id, Keys: keys}

	if L.GetTop() >= 3 {
		opts := L.CheckTable(3)
		d.Context = getTableString(L, opts, "context")
		d.Kind = getTableString(L, opts, "kind")
		d.LegacyPref = getTableString(L, opts, "legacy_pref")
		d.LegacyDefault = getTableString(L, opts, "legacy_default")
	}

	f.descs = append(f.descs, d)
	return 0
}

// platform() -> string
// Returns the host platform family, "mac" or "pc", so scripts can
// branch on it.
func (f *Feed) platform(L *lua.LState) int {
	L.Push(lua.LString(key.Native().Name))
	return 1
}

// getTableString gets a string field from a Lua table.
func getTableString(L *lua.LState, tbl *lua.LTable, field string) string {
	val := L.GetField(tbl, field)
	if str, ok := val.(lua.LString); ok {
		return string(str)
	}
	return ""
}
