// Package shortcut implements the keybinding registry: entries that map
// opaque action identifiers to key sequences, prefix and full matching
// over a live candidate sequence, user overrides with conflict
// detection, and migration of legacy single-key preferences.
//
// Entries are built once at registration time, usually from a TOML
// manifest or a script feed, and live until process teardown. Matching
// is driven by a Session, which accumulates pressed combinations and
// dispatches targets. The Registry itself only reports facts, the full
// matches and the still-reachable entries for a candidate sequence, and
// never arbitrates between them; tie-break policy belongs to the
// embedder.
package shortcut
