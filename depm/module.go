package depm

import (
	"sable/ast"
	"sable/sem"
)

// Module represents a single Sable module: a named unit with its own top-level
// namespace and an import list.  The module's AST is produced by an external
// parser; the binder only consumes it.
type Module struct {
	// The name of the module.  Module names are unique within a project and
	// act as the prefix of the full names of the module's definitions.
	Name string

	// The module's declared version.
	Version string

	// The representative path of the module's source file, used in
	// diagnostics.  May be empty for modules constructed in memory.
	ReprPath string

	// The names of the modules this module imports, as declared in its
	// manifest.
	Imports []string

	// The module's top-level namespace.
	Globals *sem.Namespace

	// The parsed top-level statements of the module.
	AST []ast.Stmt

	// Completed indicates that the module's top level has been fully analyzed
	// with nothing deferred.
	Completed bool
}

// NewModule creates a new module with the given name and empty namespace.
func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		Globals: sem.NewNamespace(name),
	}
}
