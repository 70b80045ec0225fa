package resolve

import (
	"sable/ast"
	"sable/depm"
	"sable/plugin"
	"sable/report"
	"sable/sem"
	"sable/util"
)

// DefaultMaxPasses is the iteration cap of the fixed-point loop.  Real
// programs converge in a handful of passes; the cap only exists so a binder
// bug can never hang the compiler.
const DefaultMaxPasses = 20

// Driver runs the fixed-point binding loop: modules are partitioned into
// import components and each component is analyzed to a fixed point, one pass
// at a time.  Every pass walks all module top levels first and then all
// discovered function bodies.  The loop ends with a final pass on which
// nothing may defer: it is scheduled when a pass makes no progress, or
// unconditionally at the iteration cap.
type Driver struct {
	proj    *depm.Project
	plugins *plugin.Registry

	// The iteration cap.
	maxPasses int

	// The process-local incomplete-reference counter shared by all walkers.
	incompleteRefs int

	// The current component's top-level and body targets.  Body targets are
	// discovered while walking and appended in encounter order.
	tops   []*depm.Target
	bodies []*depm.Target

	// bodyTargets deduplicates body targets by their defining AST node, which
	// is stable across passes.
	bodyTargets map[*ast.FuncDef]*depm.Target

	// errorSubs records the full names whose placeholders were destroyed by
	// error-typed stand-ins during the final pass.  Later statements of the
	// same pass keep treating them as unresolved, so every participant of a
	// definition cycle reports its own diagnostic.
	errorSubs map[string]struct{}
}

// NewDriver creates a driver for a project.  A non-positive maxPasses selects
// the default cap.
func NewDriver(proj *depm.Project, plugins *plugin.Registry, maxPasses int) *Driver {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	if plugins == nil {
		plugins = plugin.NewRegistry()
	}

	return &Driver{
		proj:      proj,
		plugins:   plugins,
		maxPasses: maxPasses,
	}
}

// Bind runs name resolution over a whole project and returns whether binding
// succeeded without errors.
func Bind(proj *depm.Project, plugins *plugin.Registry, maxPasses int) bool {
	return NewDriver(proj, plugins, maxPasses).Resolve()
}

// Resolve binds every module of the project, one import component at a time
// in dependency order.  It returns whether the project is error-free.
func (d *Driver) Resolve() bool {
	d.applyPluginDeps()

	for _, scc := range d.proj.SCCs() {
		d.resolveComponent(scc)
	}

	return d.proj.Reporter.ShouldProceed()
}

// applyPluginDeps extends module import lists with the additional dependencies
// contributed by plugins so component partitioning sees them.
func (d *Driver) applyPluginDeps() {
	for _, name := range util.OrderedKeys(d.proj.Modules) {
		mod := d.proj.Modules[name]
		for _, dep := range d.plugins.AdditionalDeps(name) {
			if !util.Contains(mod.Imports, dep) {
				mod.Imports = append(mod.Imports, dep)
			}
		}
	}
}

// resolveComponent runs the fixed-point loop over one import component.
func (d *Driver) resolveComponent(scc []*depm.Module) {
	d.tops = nil
	d.bodies = nil
	d.bodyTargets = make(map[*ast.FuncDef]*depm.Target)
	d.errorSubs = make(map[string]struct{})

	for _, mod := range scc {
		mod.Globals.Incomplete = true
		d.tops = append(d.tops, depm.NewModuleTarget(mod))
	}

	final := false
	for pass := 1; ; pass++ {
		d.beginPass(scc)

		startProgress := d.proj.Registry.Progress()
		completions := d.runPass(final)

		if d.allDone() {
			return
		}

		if final {
			// The final pass must retire every target; anything still pending
			// is a binder fault, not a user error.
			d.hangGuard()
			return
		}

		progressed := d.proj.Registry.Progress() != startProgress || completions > 0
		if !progressed {
			final = true
		} else if pass+1 >= d.maxPasses {
			d.proj.Reporter.Error(scc[0].Name, scc[0].ReprPath, report.CodeHangGuard, nil,
				"binding did not converge after %d passes", d.maxPasses)
			final = true
		}
	}
}

// runPass runs one pass: phase one visits every unfinished module top level,
// phase two every unfinished function body.  Bodies discovered mid-pass are
// visited in the same pass.  It returns the number of targets that finished.
func (d *Driver) runPass(final bool) int {
	completions := 0

	for _, t := range d.tops {
		if !t.Done() {
			d.visit(t, final)
			if t.Done() {
				completions++
			}
		}
	}

	// Indexed loop: walking a body may discover further bodies (eg. methods of
	// a local class) and append them.
	for i := 0; i < len(d.bodies); i++ {
		if t := d.bodies[i]; !t.Done() {
			d.visit(t, final)
			if t.Done() {
				completions++
			}
		}
	}

	return completions
}

// visit runs one walker over a target.
func (d *Driver) visit(t *depm.Target, final bool) {
	w := newWalker(d.proj, d.plugins, t, final, &d.incompleteRefs, d.errorSubs)
	w.walkTarget(d)
}

// beginPass clears the per-pass bookkeeping of every namespace in the
// component.
func (d *Driver) beginPass(scc []*depm.Module) {
	for _, mod := range scc {
		mod.Globals.BeginPass()

		for _, b := range mod.Globals.AllBindings() {
			beginMemberPass(b.Def())
		}
	}

	for _, t := range d.bodies {
		t.Locals.BeginPass()
	}
}

// beginMemberPass recursively clears the per-pass bookkeeping of member
// namespaces.
func beginMemberPass(def sem.Definition) {
	td, ok := def.(*sem.TypeDef)
	if !ok || td.Members == nil {
		return
	}

	td.Members.BeginPass()

	for _, b := range td.Members.AllBindings() {
		beginMemberPass(b.Def())
	}
}

// allDone returns whether every target of the component has finished.
func (d *Driver) allDone() bool {
	for _, t := range d.tops {
		if !t.Done() {
			return false
		}
	}

	for _, t := range d.bodies {
		if !t.Done() {
			return false
		}
	}

	return true
}

// hangGuard retires any target still pending after the final pass, converting
// the leftover work into internal diagnostics so binding always terminates
// with every target in a terminal state.
func (d *Driver) hangGuard() {
	for _, t := range append(append([]*depm.Target{}, d.tops...), d.bodies...) {
		if t.Done() {
			continue
		}

		d.proj.Reporter.Error(t.Mod.Name, t.Mod.ReprPath, report.CodeInternal, nil,
			"target `%s` did not finish binding", t.FullName)
		t.State = depm.StateError
	}
}

// addBodyTarget schedules a function body for analysis, deduplicating by the
// defining AST node.  Re-analysis of the definition statement refreshes the
// target's definition so the body always sees the newest signature; a body
// analyzed against a partial signature reruns once when the signature
// completes.
func (d *Driver) addBodyTarget(mod *depm.Module, fd *sem.FuncDef, class *sem.TypeDef, sigComplete bool) {
	if t, ok := d.bodyTargets[fd.AST]; ok {
		t.Func = fd

		if sigComplete && t.SigPending {
			t.SigPending = false
			if t.State == depm.StateComplete {
				t.State = depm.StatePending
			}
		}

		return
	}

	t := depm.NewFuncTarget(mod, fd, class)
	t.SigPending = !sigComplete
	d.bodyTargets[fd.AST] = t
	d.bodies = append(d.bodies, t)
}
