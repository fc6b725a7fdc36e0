package key

import (
	"strings"
	"unicode"
)

// Combination is one physical key press plus a modifier set, the atomic
// unit of a shortcut. It is a comparable value: two combinations are
// equal under == exactly when key, rune, and modifiers are identical,
// regardless of how each was constructed.
type Combination struct {
	// Key identifies the key pressed. Printable keys use KeyRune.
	Key Key

	// Rune is the character for KeyRune combinations.
	Rune rune

	// Mod contains the active modifier flags.
	Mod Modifier
}

// NewRune creates a combination for a character key. Uppercase letters
// normalize to the lowercase rune plus ModShift so that every
// construction path yields the same value for the same press.
func NewRune(r rune, mod Modifier) Combination {
	if unicode.IsUpper(r) {
		r = unicode.ToLower(r)
		mod = mod.With(ModShift)
	}
	return Combination{Key: KeyRune, Rune: r, Mod: mod}
}

// NewSpecial creates a combination for a non-character key.
func NewSpecial(k Key, mod Modifier) Combination {
	return Combination{Key: k, Mod: mod}
}

// IsRune returns true if this is a character combination.
func (c Combination) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsZero returns true for the zero combination, which names no key.
func (c Combination) IsZero() bool {
	return c == Combination{}
}

// String returns the canonical specification form, like "ctrl+shift+s"
// or "alt+f4". Parse inverts it.
func (c Combination) String() string {
	var sb strings.Builder
	if !c.Mod.IsEmpty() {
		sb.WriteString(c.Mod.String())
		sb.WriteString("+")
	}
	sb.WriteString(c.specKeyName())
	return sb.String()
}

// specKeyName returns the canonical name of the key part.
func (c Combination) specKeyName() string {
	if c.Key != KeyRune {
		return c.Key.specName()
	}
	switch c.Rune {
	case ' ':
		return "space"
	case '+':
		return "plus"
	case '<':
		return "lt"
	case '>':
		return "gt"
	case '|':
		return "bar"
	case '\\':
		return "bslash"
	default:
		return string(c.Rune)
	}
}
