package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a combination specification string.
//
// Supported formats:
//   - Single character: "a", "1", "@"
//   - Special keys: "enter", "escape", "tab", "backspace", "space"
//   - With modifiers: "ctrl+s", "alt+f4", "ctrl+shift+p"
//
// Names are case-insensitive. "ctrl", "cmd", and "primary" all name the
// primary modifier. An uppercase letter is shorthand for shift plus the
// lowercase letter.
func Parse(spec string) (Combination, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combination{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")

	var mod Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		m := ModifierFromName(p)
		if m == ModNone {
			return Combination{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mod = mod.With(m)
	}

	return parseKeyPart(parts[len(parts)-1], mod)
}

// parseKeyPart parses the key component with already-known modifiers.
func parseKeyPart(keyPart string, mod Modifier) (Combination, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Combination{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	lower := strings.ToLower(keyPart)

	// Aliases for characters that collide with the spec syntax.
	switch lower {
	case "space":
		return NewRune(' ', mod), nil
	case "plus":
		return NewRune('+', mod), nil
	case "lt":
		return NewRune('<', mod), nil
	case "gt":
		return NewRune('>', mod), nil
	case "bar":
		return NewRune('|', mod), nil
	case "bslash":
		return NewRune('\\', mod), nil
	}

	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecial(k, mod), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		return NewRune(runes[0], mod), nil
	}

	return Combination{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a combination specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Combination {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}
