package depm

import (
	"sable/report"
	"sable/sem"
)

// Project is the explicit compilation-state value threaded through the driver
// and every binder component: the module map, the definition arena and
// placeholder registry, the recorded dependency map, and the reporter.  There
// are deliberately no package-level singletons so multiple compilations can
// coexist in one process.
type Project struct {
	// The project's modules organized by name.
	Modules map[string]*Module

	// The definition arena shared by all modules.
	Arena *sem.Arena

	// The placeholder registry governing binding insertion and replacement.
	Registry *sem.Registry

	// The implicit universal namespace.
	Builtins *sem.Namespace

	// The recorded cross-target dependency edges.
	Deps *DepMap

	// The reporter collecting the project's diagnostic stream.
	Reporter *report.Reporter
}

// NewProject creates a new empty project reporting through the given
// reporter.
func NewProject(rep *report.Reporter) *Project {
	arena := sem.NewArena()

	return &Project{
		Modules:  make(map[string]*Module),
		Arena:    arena,
		Registry: sem.NewRegistry(arena),
		Builtins: sem.NewBuiltinNamespace(arena),
		Deps:     NewDepMap(),
		Reporter: rep,
	}
}

// AddModule adds a module to the project.  It returns false if a module with
// the same name is already present.
func (p *Project) AddModule(mod *Module) bool {
	if _, ok := p.Modules[mod.Name]; ok {
		return false
	}

	p.Modules[mod.Name] = mod
	return true
}

// SCCs partitions the project's modules into strongly-connected import
// components in analysis order.
func (p *Project) SCCs() [][]*Module {
	return PartitionSCCs(p.Modules)
}
