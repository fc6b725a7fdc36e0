// Package key provides the value types for keyboard shortcuts: single
// key combinations, multi-key sequences, and their platform-aware
// rendering.
//
// A Combination pairs one physical key with a modifier set. The control
// and command keys collapse into the single logical ModPrimary flag, so
// stored bindings are platform-neutral; rendering and event synthesis
// reintroduce the platform through an injected Platform value.
//
// # Specifications
//
// Combinations have a canonical textual form used by manifests and
// preference files:
//
//   - Single keys: "a", "f5", "escape", "space"
//   - With modifiers: "ctrl+s", "alt+f4", "ctrl+shift+p"
//   - Sequences, space-separated: "ctrl+k ctrl+s"
//
// "ctrl", "cmd", and "primary" are interchangeable names for the
// primary modifier; the parsed value is identical on every platform.
package key
