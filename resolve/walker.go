package resolve

import (
	"strings"

	"sable/depm"
	"sable/plugin"
	"sable/report"
	"sable/sem"
)

// Walker analyzes a single target during one pass: it classifies the target's
// binding statements, resolves its type references, and installs bindings
// through the placeholder registry.  A fresh walker is created for every
// visit; all state that must survive between passes lives on the target and
// in the project.
type Walker struct {
	// The project being bound.
	proj *depm.Project

	// The registered hook providers.
	plugins *plugin.Registry

	// The target being analyzed.
	target *depm.Target

	// The module the target belongs to.
	mod *depm.Module

	// Whether the current pass is the final one.  During the final pass
	// nothing may defer: every pending reference resolves to a diagnostic and
	// an error type instead.
	final bool

	// Whether the target must be deferred to the next pass.
	deferred bool

	// Whether an error diagnostic was produced for this target during the
	// final pass.
	errored bool

	// The process-local incomplete-reference counter, shared across all
	// walkers of one driver run.
	inc *int

	// The full names error-substituted during the final pass, shared across
	// all walkers of one driver run.
	errorSubs map[string]struct{}

	// The stack of lexical scopes, outermost first.
	scopes []*Scope
}

// newWalker creates a walker for one visit of a target.
func newWalker(proj *depm.Project, plugins *plugin.Registry, t *depm.Target, final bool, inc *int, errorSubs map[string]struct{}) *Walker {
	return &Walker{
		proj:      proj,
		plugins:   plugins,
		target:    t,
		mod:       t.Mod,
		final:     final,
		inc:       inc,
		errorSubs: errorSubs,
	}
}

// walkTarget runs one visit of the walker's target and updates the target's
// state machine accordingly.
func (w *Walker) walkTarget(drv *Driver) {
	t := w.target
	t.State = depm.StateAnalyzing
	t.VisitCount++
	t.Deferred = false

	w.scopes = []*Scope{newScope(ScopeModule, w.mod.Globals)}

	switch t.Kind {
	case depm.TargetModuleTop:
		for _, stmt := range t.Mod.AST {
			w.walkTopStmt(drv, stmt)
		}
	case depm.TargetFuncBody:
		t.RestoreLocals()
		w.walkFuncTarget(drv, t)
	}

	if w.deferred && !w.final {
		t.State = depm.StateDeferred
		t.Deferred = true
		t.SaveLocals()
		return
	}

	if w.errored {
		// The target substituted error types for what it could not resolve;
		// it is terminal, but its namespaces are still as complete as they
		// will ever be, so dependents must not keep waiting on them.
		t.State = depm.StateError
	} else {
		t.State = depm.StateComplete
	}

	if t.Kind == depm.TargetModuleTop {
		w.completeModule()
	}
}

// completeModule marks a module's namespaces complete after its top level
// finished without deferral.
func (w *Walker) completeModule() {
	w.mod.Completed = true
	w.mod.Globals.Incomplete = false

	for _, b := range w.mod.Globals.AllBindings() {
		markMembersComplete(b.Def())
	}
}

// markMembersComplete recursively marks the member namespaces of a completed
// module's type definitions complete.
func markMembersComplete(def sem.Definition) {
	td, ok := def.(*sem.TypeDef)
	if !ok || td.Members == nil {
		return
	}

	td.Members.Incomplete = false

	for _, b := range td.Members.AllBindings() {
		markMembersComplete(b.Def())
	}
}

// -----------------------------------------------------------------------------

// currentScope returns the innermost scope.
func (w *Walker) currentScope() *Scope {
	return w.scopes[len(w.scopes)-1]
}

// pushScope pushes a scope onto the scope stack.
func (w *Walker) pushScope(s *Scope) {
	w.scopes = append(w.scopes, s)
}

// popScope removes the innermost scope from the scope stack.
func (w *Walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// bindingContext returns the namespace new definitions are bound into and the
// binding kind they receive, based on the innermost binding scope.
func (w *Walker) bindingContext() (*sem.Namespace, int) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		switch w.scopes[i].Kind {
		case ScopeModule:
			return w.scopes[i].NS, sem.BindGlobal
		case ScopeTypeBody:
			return w.scopes[i].NS, sem.BindMember
		case ScopeFunc, ScopeComp:
			return w.scopes[i].NS, sem.BindLocal
		}
	}

	// Unreachable: the bottom of the stack is always a module scope.
	return w.mod.Globals, sem.BindGlobal
}

// fullNameOf computes the stable full name a definition with the given short
// name receives in the current binding context.
func (w *Walker) fullNameOf(name string) string {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		switch s := w.scopes[i]; s.Kind {
		case ScopeModule:
			return w.mod.Name + "." + name
		case ScopeTypeBody:
			return s.Class.FullName + "." + name
		case ScopeFunc, ScopeComp:
			if s.NS.Owner != "" {
				return s.NS.Owner + "." + name
			}

			return w.target.FullName + "." + name
		}
	}

	return w.mod.Name + "." + name
}

// -----------------------------------------------------------------------------

// recordIncomplete notes that resolution touched a dependency living in an
// incomplete namespace.  Callers snapshot this counter around sub-resolutions:
// any change means the enclosing target must defer.
func (w *Walker) recordIncomplete() {
	*w.inc++
}

// deferTarget marks the target for re-analysis on the next pass.  Deferral is
// illegal during the final pass; the walker's callers guarantee every pending
// reference has already been converted to a diagnostic by then.
func (w *Walker) deferTarget() {
	if !w.final {
		w.deferred = true
	}
}

// recordDep records that the current target depends on the given trigger
// name.
func (w *Walker) recordDep(trigger string) {
	w.proj.Deps.Record(trigger, w.target.FullName)
}

// markErrorSubstituted records that a name's placeholder was destroyed by an
// error-typed stand-in during the final pass.
func (w *Walker) markErrorSubstituted(fullName string) {
	w.errorSubs[fullName] = struct{}{}
}

// wasErrorSubstituted returns whether a definition is the error-typed stand-in
// for a name that failed to resolve earlier in the final pass.  Such a name is
// still unresolved as far as the rest of the pass is concerned: statements
// defined in terms of it behave exactly as if the placeholder had survived, so
// every participant of a definition cycle reports its own diagnostic.
func (w *Walker) wasErrorSubstituted(def sem.Definition) bool {
	_, ok := w.errorSubs[def.DefFullName()]
	return ok
}

// -----------------------------------------------------------------------------

// error raises a local analysis error that aborts the current statement.
func (w *Walker) error(code string, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(code, span, msg, args...))
}

// recError reports a recoverable error without aborting the current
// statement.
func (w *Walker) recError(code string, span *report.TextSpan, msg string, args ...interface{}) {
	w.proj.Reporter.Error(w.mod.Name, w.mod.ReprPath, code, span, msg, args...)
	w.errored = true
}

// catchStmtErrors recovers any error raised while analyzing a single
// statement, converts it into a diagnostic, and lets analysis continue with
// the next statement.
// NB: This function must ALWAYS be deferred.
func (w *Walker) catchStmtErrors() {
	if x := recover(); x != nil {
		w.errored = true

		if lerr, ok := x.(*report.LocalError); ok {
			w.proj.Reporter.Error(w.mod.Name, w.mod.ReprPath, lerr.Code, lerr.Span, "%s", lerr.Message)
		} else if serr, ok := x.(error); ok {
			w.proj.Reporter.Error(w.mod.Name, w.mod.ReprPath, report.CodeInternal, nil,
				"internal binder error: %s", serr)
		} else {
			w.proj.Reporter.Error(w.mod.Name, w.mod.ReprPath, report.CodeInternal, nil,
				"internal binder error: %v", x)
		}
	}
}

// isPublicName returns whether a name is externally visible by convention:
// names beginning with an underscore are module-private.
func isPublicName(name string) bool {
	return !strings.HasPrefix(name, "_")
}
