package sem

// Enumeration of binding kinds.
const (
	BindGlobal = iota // Bound in a module's top-level namespace.
	BindMember        // Bound in a type body's namespace.
	BindLocal         // Bound in a function's local namespace.
)

// Binding associates a short name in a namespace with a definition.  The
// binding carries the visibility of the name, not of the definition: the same
// definition may be bound publicly in one namespace and hidden in another
// (eg. an import alias).
type Binding struct {
	// The binding kind.  Must be one of the enumerated binding kinds.
	Kind int

	// The arena entry holding the bound definition.
	Entry *DefEntry

	// Whether the name is visible to other modules.
	Public bool

	// Whether the name is hidden from ordinary lookups (eg. a preserved
	// shadowed redefinition).
	Hidden bool

	// Whether the binding should be included when the namespace is exported
	// or persisted.  Synthesized redefinition keys are never serialized.
	Serializable bool
}

// Def returns the definition currently held by the binding's arena entry.
func (b *Binding) Def() Definition {
	return b.Entry.Def
}

// IsPlaceholder returns whether the binding currently resolves to a
// placeholder definition.
func (b *Binding) IsPlaceholder() bool {
	_, ok := b.Entry.Def.(*Placeholder)
	return ok
}
