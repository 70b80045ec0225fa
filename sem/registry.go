package sem

import (
	"fmt"

	"sable/report"
)

// Registry manages the lifecycle of placeholder definitions and enforces the
// monotonic-replacement rule: across passes, information about a name may only
// increase, never regress.  All binding insertion goes through the registry.
//
// The registry also maintains the driver's progress counter: it increments
// whenever real information is added (a new non-placeholder binding, a
// placeholder replaced by a real definition, or a becomes-type-like hint
// upgraded).  Creating a fresh placeholder is deliberately not progress: a
// pass that only produces placeholders has not advanced resolution.
type Registry struct {
	arena *Arena

	// progress counts information-increasing mutations since creation.
	progress int
}

// NewRegistry creates a new registry backed by the given arena.
func NewRegistry(arena *Arena) *Registry {
	return &Registry{arena: arena}
}

// Arena returns the definition arena backing the registry.
func (r *Registry) Arena() *Arena {
	return r.arena
}

// Progress returns the registry's monotonically increasing progress counter.
func (r *Registry) Progress() int {
	return r.progress
}

// AddBinding installs a binding for a name in a namespace.  It returns false
// without inserting when:
//
//   - the name was already found absent from the namespace earlier in the
//     current pass (first definition wins: later passes may not clobber
//     earlier partial progress), or
//   - an existing non-placeholder binding conflicts and the new definition is
//     not provably the same entity.
//
// The caller decides whether a false return is a deferral or a redefinition
// diagnostic.  On success the definition is stored in the arena and the
// binding's entry points at its cell.
func (r *Registry) AddBinding(ns *Namespace, name string, b *Binding, def Definition) bool {
	if ns.MissedThisPass(name) {
		return false
	}

	if existing, ok := ns.GetAny(name); ok && !existing.Hidden {
		old := existing.Def()

		if _, isPlaceholder := old.(*Placeholder); isPlaceholder {
			if !r.IsValidReplacement(old, def) {
				// The new definition carries no more information than the
				// placeholder already does; keep what we have.
				return true
			}

			// Swap the definition into the existing cell so every holder of
			// the entry observes the replacement.
			existing.Entry.Def = def
			existing.Kind = b.Kind
			existing.Public = b.Public
			r.progress++
			return true
		}

		if SameEntity(old, def) {
			// Re-analysis of the same definition on a later pass: refresh the
			// cell in place, same identity, richer content.
			existing.Entry.Def = def
			return true
		}

		return false
	}

	b.Entry = r.arena.Put(def)
	ns.set(name, b)

	// Local namespaces of inline-analyzed bodies are rebuilt on every pass, so
	// local bindings never count as progress; target completion covers them.
	if _, isPlaceholder := def.(*Placeholder); !isPlaceholder && b.Kind != BindLocal {
		r.progress++
	}

	return true
}

// IsValidReplacement reports whether `new` may replace `old` under the
// monotonic-replacement rule: `old` must be a placeholder, and `new` must
// either be fully resolved or be a placeholder whose becomes-type-like hint is
// strictly truer (false to true only).  Oscillation between passes is thereby
// impossible.
func (r *Registry) IsValidReplacement(old, new Definition) bool {
	oldPh, ok := old.(*Placeholder)
	if !ok {
		return false
	}

	if newPh, ok := new.(*Placeholder); ok {
		return newPh.BecomesTypeLike && !oldPh.BecomesTypeLike
	}

	return true
}

// AddImported installs a binding that shares an existing arena entry, as
// produced by from-imports: the importing namespace re-exports the very cell
// of the source definition, so a placeholder replaced in the source module is
// observed by every importer without re-binding.  It returns false on a
// conflicting existing binding.
func (r *Registry) AddImported(ns *Namespace, name string, b *Binding, entry *DefEntry) bool {
	if ns.MissedThisPass(name) {
		return false
	}

	if existing, ok := ns.GetAny(name); ok && !existing.Hidden {
		if existing.Entry == entry {
			return true
		}

		if existing.IsPlaceholder() {
			existing.Entry = entry
			existing.Kind = b.Kind
			existing.Public = b.Public
			r.progress++
			return true
		}

		return false
	}

	b.Entry = entry
	ns.set(name, b)

	if _, isPlaceholder := entry.Def.(*Placeholder); !isPlaceholder && b.Kind != BindLocal {
		r.progress++
	}

	return true
}

// RecordRedefinition preserves the currently bound definition of a name under
// a synthesized, decorated key and installs the new binding as authoritative.
// The preserved binding remains reachable for downstream analysis but is
// hidden from lookups and excluded from export.
func (r *Registry) RecordRedefinition(ns *Namespace, name string, b *Binding, def Definition) {
	old, ok := ns.GetAny(name)
	if ok {
		ns.redefCount[name]++
		decorated := fmt.Sprintf("%s'%d", name, ns.redefCount[name])

		old.Hidden = true
		old.Serializable = false
		ns.set(decorated, old)
	}

	b.Entry = r.arena.Put(def)
	ns.set(name, b)

	if b.Kind != BindLocal {
		r.progress++
	}
}

// Refresh swaps a re-derived definition into an existing binding's cell.
// Destroying a placeholder this way is progress just like replacement through
// AddBinding; re-deriving an already-real definition is not.
func (r *Registry) Refresh(b *Binding, def Definition) {
	if b.IsPlaceholder() && b.Kind != BindLocal {
		if _, stillPlaceholder := def.(*Placeholder); !stillPlaceholder {
			r.progress++
		}
	}

	b.Entry.Def = def
}

// FindBySpan searches the authoritative binding for a name and all of its
// preserved redefinitions for one whose definition occurs at the given span.
// Later passes use this to recognize a statement they have already analyzed:
// AST spans are stable across passes, so pointer identity suffices.
func (r *Registry) FindBySpan(ns *Namespace, name string, span *report.TextSpan) (*Binding, bool) {
	if span == nil {
		return nil, false
	}

	if b, ok := ns.GetAny(name); ok && b.Def().DefSpan() == span {
		return b, true
	}

	for i := ns.redefCount[name]; i > 0; i-- {
		decorated := fmt.Sprintf("%s'%d", name, i)
		if b, ok := ns.GetAny(decorated); ok && b.Def().DefSpan() == span {
			return b, true
		}
	}

	return nil, false
}

// SameEntity reports whether two definitions provably describe the same
// entity: the same full name, defined as the same kind of thing, at the same
// source location.
func SameEntity(a, b Definition) bool {
	if a.DefFullName() != b.DefFullName() || a.DefSpan() != b.DefSpan() {
		return false
	}

	switch a.(type) {
	case *VarDef:
		_, ok := b.(*VarDef)
		return ok
	case *FuncDef:
		_, ok := b.(*FuncDef)
		return ok
	case *TypeDef:
		_, ok := b.(*TypeDef)
		return ok
	case *AliasDef:
		_, ok := b.(*AliasDef)
		return ok
	case *TypeVarDef:
		_, ok := b.(*TypeVarDef)
		return ok
	case *ModuleRef:
		_, ok := b.(*ModuleRef)
		return ok
	default:
		return false
	}
}
