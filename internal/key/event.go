package key

// Event is a raw key press as delivered by an input backend. The
// physical control and command keys are reported separately; deriving a
// Combination collapses them into the single ModPrimary flag.
type Event struct {
	// Key identifies the key pressed. Printable keys use KeyRune.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifier key states as reported by the backend.
	Shift bool
	Alt   bool
	Ctrl  bool
	Cmd   bool
}

// FromEvent derives the combination for a raw event. Control and
// command both map to ModPrimary; the combination itself is
// platform-neutral.
func FromEvent(ev Event) Combination {
	var mod Modifier
	if ev.Shift {
		mod = mod.With(ModShift)
	}
	if ev.Alt {
		mod = mod.With(ModAlt)
	}
	if ev.Ctrl || ev.Cmd {
		mod = mod.With(ModPrimary)
	}
	if ev.Key == KeyRune {
		return NewRune(ev.Rune, mod)
	}
	return NewSpecial(ev.Key, mod)
}

// Event converts the combination back to a raw event for programmatic
// replay. ModPrimary becomes the command key on platforms where command
// is the primary modifier, the control key otherwise.
func (c Combination) Event(p Platform) Event {
	ev := Event{
		Key:   c.Key,
		Rune:  c.Rune,
		Shift: c.Mod.HasShift(),
		Alt:   c.Mod.HasAlt(),
	}
	if c.Mod.HasPrimary() {
		if p.PrimaryIsCommand {
			ev.Cmd = true
		} else {
			ev.Ctrl = true
		}
	}
	return ev
}
