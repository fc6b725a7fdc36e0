package shortcut

// Identifier is the opaque handle naming a registered action. It is
// unique within a registry and is only ever compared, never parsed.
type Identifier string

// String returns the identifier text.
func (id Identifier) String() string {
	return string(id)
}

// Context tags the focus scope an entry is limited to. The empty
// context is global: such entries are eligible regardless of focus.
type Context string

// Kind classifies how an entry dispatches.
type Kind int

const (
	// KindAction fires once when its sequence completes.
	KindAction Kind = iota

	// KindClutch stays engaged from the completing press until the
	// embedder signals release: the target runs with PhaseBegin, then
	// again with PhaseEnd.
	KindClutch
)

// String returns the manifest name of the kind.
func (k Kind) String() string {
	if k == KindClutch {
		return "clutch"
	}
	return "action"
}
