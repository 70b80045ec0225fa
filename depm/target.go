package depm

import (
	"sable/ast"
	"sable/sem"
)

// Enumeration of target kinds.
const (
	TargetModuleTop = iota // A module's top level.
	TargetFuncBody         // A single function or method body.
)

// Enumeration of target states.
const (
	StatePending = iota
	StateAnalyzing
	StateDeferred
	StateComplete
	StateError
)

// Target is an independently deferrable analysis unit: either a module's top
// level or one function/method body.  Targets survive across passes; a
// function target keeps its local namespace so no state is lost when its body
// is revisited.
type Target struct {
	// The target kind.  Must be one of the enumerated target kinds.
	Kind int

	// The target's state.  Must be one of the enumerated target states.
	State int

	// The module this target belongs to.
	Mod *Module

	// The stable full name identifying the target: the module name for a top
	// level, the function's full name for a body.
	FullName string

	// The function definition being analyzed, for function-body targets.
	Func *sem.FuncDef

	// The enclosing class of the function, for method bodies.  Nil otherwise.
	Class *sem.TypeDef

	// The function's persistent local namespace, for function-body targets.
	Locals *sem.Namespace

	// SigPending indicates that the function's signature was still partially
	// unresolved when the body was scheduled.  The body is re-analyzed once
	// the signature completes.
	SigPending bool

	// The number of passes that have visited this target.
	VisitCount int

	// Deferred indicates the most recent visit could not finish.
	Deferred bool

	// localSnapshot preserves the local namespace between passes.
	localSnapshot map[string]*sem.Binding
}

// NewModuleTarget creates the top-level target for a module.
func NewModuleTarget(mod *Module) *Target {
	return &Target{
		Kind:     TargetModuleTop,
		State:    StatePending,
		Mod:      mod,
		FullName: mod.Name,
	}
}

// NewFuncTarget creates a body target for a function defined in a module,
// optionally enclosed by a class.
func NewFuncTarget(mod *Module, fn *sem.FuncDef, class *sem.TypeDef) *Target {
	return &Target{
		Kind:     TargetFuncBody,
		State:    StatePending,
		Mod:      mod,
		FullName: fn.FullName,
		Func:     fn,
		Class:    class,
		Locals:   sem.NewNamespace(fn.FullName),
	}
}

// Body returns the statements this target analyzes.
func (t *Target) Body() []ast.Stmt {
	if t.Kind == TargetModuleTop {
		return t.Mod.AST
	}

	return t.Func.AST.Body
}

// SaveLocals snapshots the target's local namespace at the end of a deferred
// visit.
func (t *Target) SaveLocals() {
	if t.Locals != nil {
		t.localSnapshot = t.Locals.Snapshot()
	}
}

// RestoreLocals restores the local namespace snapshot at the start of a
// revisit, if one was taken.
func (t *Target) RestoreLocals() {
	if t.Locals != nil && t.localSnapshot != nil {
		t.Locals.Restore(t.localSnapshot)
	}
}

// Done returns whether the target needs no further passes.
func (t *Target) Done() bool {
	return t.State == StateComplete || t.State == StateError
}
