package key

import (
	"runtime"
	"strings"
)

// Platform describes how combinations render on a host platform family:
// the modifier ordering, the modifier symbols, and the glyphs used for
// special keys. Rendering is a pure function of the combination and the
// platform value, never of a global flag, so tests can exercise every
// family on any host.
type Platform struct {
	// Name identifies the family, "mac" or "pc".
	Name string

	// ModifierOrder lists modifiers in display order.
	ModifierOrder []Modifier

	// ModifierText maps each modifier to its display form.
	ModifierText map[Modifier]string

	// KeyGlyphs remaps special keys for display. Keys absent from the
	// map fall back to Key.String.
	KeyGlyphs map[Key]string

	// Separator joins modifier symbols and the key label.
	Separator string

	// PrimaryIsCommand selects the physical key substituted for
	// ModPrimary when synthesizing events.
	PrimaryIsCommand bool
}

// Mac renders with the macOS symbol family: option, shift, command in
// that order, no separator, and glyphs for the special keys. The glyph
// tables are fixed; display strings must not vary between releases.
var Mac = Platform{
	Name:          "mac",
	ModifierOrder: []Modifier{ModAlt, ModShift, ModPrimary},
	ModifierText: map[Modifier]string{
		ModAlt:     "⌥",
		ModShift:   "⇧",
		ModPrimary: "⌘",
	},
	KeyGlyphs: map[Key]string{
		KeyEnter:     "↩",
		KeyBackspace: "⌫",
		KeyDelete:    "⌦",
		KeyEscape:    "⎋",
		KeyUp:        "↑",
		KeyDown:      "↓",
		KeyLeft:      "←",
		KeyRight:     "→",
		KeyPageUp:    "⇞",
		KeyPageDown:  "⇟",
		KeyHome:      "↖",
		KeyEnd:       "↘",
		KeyTab:       "⇥",
	},
	PrimaryIsCommand: true,
}

// PC renders with the textual family used on Windows and Linux:
// "Ctrl+Alt+Shift+" prefixes and plain key names.
var PC = Platform{
	Name:          "pc",
	ModifierOrder: []Modifier{ModPrimary, ModAlt, ModShift},
	ModifierText: map[Modifier]string{
		ModPrimary: "Ctrl",
		ModAlt:     "Alt",
		ModShift:   "Shift",
	},
	Separator: "+",
}

// Native returns the platform for the current host.
func Native() Platform {
	if runtime.GOOS == "darwin" {
		return Mac
	}
	return PC
}

// Label renders the combination for display on the given platform:
// modifier symbols in platform order, then the key label.
func (c Combination) Label(p Platform) string {
	var sb strings.Builder
	for _, m := range p.ModifierOrder {
		if !c.Mod.Has(m) {
			continue
		}
		sb.WriteString(p.ModifierText[m])
		sb.WriteString(p.Separator)
	}
	sb.WriteString(c.keyLabel(p))
	return sb.String()
}

// keyLabel renders the key part: glyph-mapped special keys, uppercase
// characters, "Space" for the space rune.
func (c Combination) keyLabel(p Platform) string {
	if c.Key == KeyRune {
		if c.Rune == ' ' {
			return "Space"
		}
		return strings.ToUpper(string(c.Rune))
	}
	if glyph, ok := p.KeyGlyphs[c.Key]; ok {
		return glyph
	}
	return c.Key.String()
}
