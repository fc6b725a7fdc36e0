package shortcut

import (
	"github.com/dshills/keybind/internal/key"
)

// MigrateLegacy inspects a raw value from an older preference format
// that stored a single combination as text. It returns the parsed
// combination and true only when the stored value is valid and differs
// from the declared legacy default; the caller then seeds that
// combination as an override. A missing, malformed, or
// default-equal value yields false, meaning nothing to carry over. A
// malformed value is never an error: stale preference files must not
// break startup.
func MigrateLegacy(raw string, declared key.Combination) (key.Combination, bool) {
	c, err := key.Parse(raw)
	if err != nil {
		return key.Combination{}, false
	}
	if c == declared {
		return key.Combination{}, false
	}
	return c, true
}
