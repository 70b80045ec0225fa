package sem

import "sable/util"

// Namespace maps short names to bindings within one scope: a module top
// level, a type body, or a function body.  A name maps to at most one
// authoritative binding; legitimately shadowed redefinitions are preserved
// under synthesized keys so later passes can still analyze their bodies.
type Namespace struct {
	// The full name of the entity owning this namespace: a module, a type, or
	// a function.
	Owner string

	// Incomplete indicates that the namespace is still being populated during
	// the current pass.  Lookups that land in an incomplete namespace must
	// defer rather than conclude a name is missing.
	Incomplete bool

	bindings map[string]*Binding

	// missing is the set of names found absent from this namespace earlier in
	// the current pass.  A name marked missing may not be bound until the next
	// pass: first definition wins and earlier partial progress is never
	// clobbered.
	missing map[string]struct{}

	// redefCount tracks how many shadowed redefinitions of each name have
	// been preserved.
	redefCount map[string]int
}

// NewNamespace creates a new empty namespace owned by the given full name.
func NewNamespace(owner string) *Namespace {
	return &Namespace{
		Owner:      owner,
		bindings:   make(map[string]*Binding),
		missing:    make(map[string]struct{}),
		redefCount: make(map[string]int),
	}
}

// Get retrieves the authoritative binding for a name if one exists.  Hidden
// bindings are not returned.
func (ns *Namespace) Get(name string) (*Binding, bool) {
	if b, ok := ns.bindings[name]; ok && !b.Hidden {
		return b, true
	}

	return nil, false
}

// GetAny retrieves a binding for a name including hidden ones.
func (ns *Namespace) GetAny(name string) (*Binding, bool) {
	b, ok := ns.bindings[name]
	return b, ok
}

// set installs a binding unconditionally.  Callers outside this package go
// through the registry so the replacement rules are enforced.
func (ns *Namespace) set(name string, b *Binding) {
	ns.bindings[name] = b
}

// MarkMissing records that a lookup found the name absent during the current
// pass.
func (ns *Namespace) MarkMissing(name string) {
	ns.missing[name] = struct{}{}
}

// MissedThisPass returns whether the name was found absent earlier in the
// current pass.
func (ns *Namespace) MissedThisPass(name string) bool {
	_, ok := ns.missing[name]
	return ok
}

// BeginPass clears the per-pass bookkeeping.  The driver calls this at the
// start of every pass.
func (ns *Namespace) BeginPass() {
	ns.missing = make(map[string]struct{})
}

// Names returns the sorted list of visible names bound in the namespace.
func (ns *Namespace) Names() []string {
	var names []string
	for _, name := range util.OrderedKeys(ns.bindings) {
		if !ns.bindings[name].Hidden {
			names = append(names, name)
		}
	}

	return names
}

// AllBindings returns the full binding map, including hidden entries.  The
// map must not be mutated by the caller.
func (ns *Namespace) AllBindings() map[string]*Binding {
	return ns.bindings
}

// Snapshot returns a shallow copy of the namespace's bindings.  Function
// targets snapshot their local namespaces so state persists across passes.
func (ns *Namespace) Snapshot() map[string]*Binding {
	snap := make(map[string]*Binding, len(ns.bindings))
	for name, b := range ns.bindings {
		snap[name] = b
	}

	return snap
}

// Restore replaces the namespace's bindings with a previously taken snapshot.
func (ns *Namespace) Restore(snap map[string]*Binding) {
	ns.bindings = make(map[string]*Binding, len(snap))
	for name, b := range snap {
		ns.bindings[name] = b
	}
}
