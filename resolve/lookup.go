package resolve

import (
	"sable/ast"
	"sable/common"
	"sable/sem"
	"sable/types"
)

// Enumeration of lookup outcomes.
const (
	lookupFound    = iota // The name resolved to a binding.
	lookupMissing         // A concrete namespace genuinely lacks the name.
	lookupDeferred        // Resolution is blocked on an incomplete namespace.
	lookupDynamic         // The reference projects through a dynamic value.
)

// lookupName resolves an unqualified name against the scope stack: escape
// declarations first, then enclosing type-body members (only those textually
// prior to the reference point, except type-like members which may be
// forward-referenced), then enclosing locals innermost-first, then module
// globals, then builtins.
//
// A miss reports `lookupDeferred` if any namespace on the path is still
// incomplete and `lookupMissing` only when every candidate namespace is
// complete.  During the final pass a miss additionally marks the name absent
// so a later definition this pass cannot clobber the conclusion; the caller
// converts a final-pass deferral into a cyclic-definition diagnostic.
func (w *Walker) lookupName(name string) (*sem.Binding, int) {
	sawIncomplete := false

	for i := len(w.scopes) - 1; i >= 0; i-- {
		s := w.scopes[i]

		if s.Kind == ScopeFunc {
			if esc, ok := s.escapes[name]; ok {
				if esc == ast.EscapeGlobal {
					return w.lookupGlobal(name)
				}

				// `outer`: the name lives in an enclosing function scope; skip
				// this scope's locals entirely.
				continue
			}
		}

		switch s.Kind {
		case ScopeTypeBody:
			if b, ok := s.NS.Get(name); ok {
				if s.textuallyPrior(name) || sem.IsTypeLike(b.Def()) {
					w.noteUse(b)
					return b, lookupFound
				}
			} else if s.NS.Incomplete {
				sawIncomplete = true
			}
		case ScopeModule:
			if b, ok := s.NS.Get(name); ok {
				w.noteUse(b)
				return b, lookupFound
			}

			if s.NS.Incomplete {
				sawIncomplete = true
			}
		default:
			// Function, comprehension, and type-parameter scopes.
			if b, ok := s.NS.Get(name); ok {
				w.noteUse(b)
				return b, lookupFound
			}
		}
	}

	if b, ok := w.proj.Builtins.Get(name); ok {
		w.noteUse(b)
		return b, lookupFound
	}

	if w.final {
		w.mod.Globals.MarkMissing(name)
	}

	if sawIncomplete {
		w.recordIncomplete()
		return nil, lookupDeferred
	}

	return nil, lookupMissing
}

// lookupGlobal resolves a name against module globals and builtins only, as
// required by a `global` escape declaration.
func (w *Walker) lookupGlobal(name string) (*sem.Binding, int) {
	if b, ok := w.mod.Globals.Get(name); ok {
		w.noteUse(b)
		return b, lookupFound
	}

	if b, ok := w.proj.Builtins.Get(name); ok {
		w.noteUse(b)
		return b, lookupFound
	}

	if w.final {
		w.mod.Globals.MarkMissing(name)
	}

	if w.mod.Globals.Incomplete {
		w.recordIncomplete()
		return nil, lookupDeferred
	}

	return nil, lookupMissing
}

// lookupQualified resolves a dotted reference: the first segment is looked up
// unqualified and every later segment is projected through the definition so
// far.  Module references project into the module's globals and type
// definitions into their member namespaces; projecting through a dynamic
// value reports `lookupDynamic`, which callers treat permissively.
func (w *Walker) lookupQualified(names []string) (*sem.Binding, int) {
	b, res := w.lookupName(names[0])
	if res != lookupFound {
		return nil, res
	}

	for _, seg := range names[1:] {
		def := b.Def()

		if _, ok := def.(*sem.Placeholder); ok {
			// An incomplete definition cannot be projected through yet.
			w.recordIncomplete()
			return nil, lookupDeferred
		}

		ns, ok := w.projectNamespace(def)
		if !ok {
			return nil, lookupDynamic
		}

		nb, ok := ns.Get(seg)
		if !ok {
			if w.final {
				ns.MarkMissing(seg)
			}

			if ns.Incomplete {
				w.recordIncomplete()
				return nil, lookupDeferred
			}

			return nil, lookupMissing
		}

		b = nb
		w.noteUse(b)
	}

	return b, lookupFound
}

// projectNamespace returns the namespace a qualified reference projects into
// through the given definition, if the definition has one.
func (w *Walker) projectNamespace(def sem.Definition) (*sem.Namespace, bool) {
	switch v := def.(type) {
	case *sem.ModuleRef:
		if v.ModName == common.BuiltinModName {
			return w.proj.Builtins, true
		}

		if m, ok := w.proj.Modules[v.ModName]; ok {
			return m.Globals, true
		}

		return nil, false
	case *sem.TypeDef:
		return v.Members, v.Members != nil
	case *sem.AliasDef:
		if ct, ok := types.Unwrap(v.Target).(*types.ClassType); ok {
			if entry, ok := w.proj.Arena.Get(ct.FullName); ok {
				if td, ok := entry.Def.(*sem.TypeDef); ok && td.Members != nil {
					return td.Members, true
				}
			}
		}

		return nil, false
	default:
		// Variables, functions, and type variables project dynamically.
		return nil, false
	}
}

// noteUse records a dependency edge from the used definition to the current
// target.  Local uses are not interesting across targets and are skipped.
func (w *Walker) noteUse(b *sem.Binding) {
	if b.Kind != sem.BindLocal {
		w.recordDep(b.Def().DefFullName())
	}
}
