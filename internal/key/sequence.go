package key

import "strings"

// Sequence is an ordered list of combinations that together must be
// typed to trigger an action. A chord like "ctrl+k ctrl+s" is a
// two-element sequence.
type Sequence []Combination

// Equal returns true if both sequences hold identical combinations in
// the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		if c != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if s begins with the given prefix. An empty
// prefix matches every sequence.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, c := range prefix {
		if c != s[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// String returns the canonical space-separated specification, like
// "ctrl+k ctrl+s". ParseSequence inverts it.
func (s Sequence) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Label renders the sequence for display on the given platform, the
// combinations joined by ", ". An empty sequence renders as the empty
// string.
func (s Sequence) Label(p Platform) string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.Label(p)
	}
	return strings.Join(parts, ", ")
}

// ParseSequence parses a space-separated sequence specification like
// "ctrl+k ctrl+s". An empty string parses as an empty sequence.
func ParseSequence(spec string) (Sequence, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	fields := strings.Fields(spec)
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, c)
	}
	return seq, nil
}

// MustParseSequence parses a sequence specification and panics on
// error. Use only for known-valid sequences in initialization code.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic("invalid key sequence: " + spec + ": " + err.Error())
	}
	return seq
}
