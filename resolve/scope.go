package resolve

import "sable/sem"

// Enumeration of scope kinds.
const (
	ScopeModule    = iota // A module's top level.
	ScopeTypeBody         // The body of a class definition.
	ScopeFunc             // A function or method body.
	ScopeComp             // A comprehension.
	ScopeTypeParam        // The type-parameter scope of a generic definition.
)

// Scope is one frame of the walker's scope stack.  Each scope owns a
// namespace; lookups traverse the stack innermost-first according to the
// rules in lookup.go.
type Scope struct {
	// The scope kind.  Must be one of the enumerated scope kinds.
	Kind int

	// The namespace owned by the scope.
	NS *sem.Namespace

	// The class whose body this scope is, for type-body scopes.
	Class *sem.TypeDef

	// The names bound so far during the current walk of a type body.  A
	// member is only visible to references textually after it, except
	// type-like members which may be forward-referenced.
	boundThisWalk map[string]struct{}

	// The escape declarations in effect in a function scope: name to escape
	// kind.
	escapes map[string]int
}

// newScope creates a scope of the given kind over the given namespace.
func newScope(kind int, ns *sem.Namespace) *Scope {
	s := &Scope{Kind: kind, NS: ns}

	switch kind {
	case ScopeTypeBody:
		s.boundThisWalk = make(map[string]struct{})
	case ScopeFunc:
		s.escapes = make(map[string]int)
	}

	return s
}

// markBound records that a member name has been bound during the current walk
// of a type body, making it visible to textually later references.
func (s *Scope) markBound(name string) {
	if s.boundThisWalk != nil {
		s.boundThisWalk[name] = struct{}{}
	}
}

// textuallyPrior returns whether a member name was bound textually before the
// current reference point.
func (s *Scope) textuallyPrior(name string) bool {
	_, ok := s.boundThisWalk[name]
	return ok
}
