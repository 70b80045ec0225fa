package sem

import (
	"sable/ast"
	"sable/report"
	"sable/types"
)

// Definition represents a named entity produced by analyzing a binding
// statement.  The set of definitions is a closed tagged union: every
// consumption site is expected to switch exhaustively over the variants
// defined in this file.
type Definition interface {
	// DefName returns the short name of the definition.
	DefName() string

	// DefFullName returns the stable full name of the definition: the key
	// under which it is stored in the arena.
	DefFullName() string

	// DefSpan returns the span where the definition occurs.  May be nil for
	// builtin definitions.
	DefSpan() *report.TextSpan

	// defNode is a marker method sealing the set of definition variants.
	defNode()
}

// DefBase is the base type for all definition variants.
type DefBase struct {
	// The short name of the definition.
	Name string

	// The stable full name of the definition.
	FullName string

	// The span where the definition occurs.
	Span *report.TextSpan
}

func (db *DefBase) DefName() string           { return db.Name }
func (db *DefBase) DefFullName() string       { return db.FullName }
func (db *DefBase) DefSpan() *report.TextSpan { return db.Span }

// -----------------------------------------------------------------------------

// VarDef is a variable definition.
type VarDef struct {
	DefBase

	// The declared or inferred type of the variable.
	Type types.Type

	// Whether the type came from an explicit annotation.
	Explicit bool
}

func (vd *VarDef) defNode() {}

// FuncDef is a function or method definition.
type FuncDef struct {
	DefBase

	// The function's signature.
	Signature *types.FuncType

	// The function's AST, retained so the driver can schedule its body as a
	// separate analysis target.
	AST *ast.FuncDef
}

func (fd *FuncDef) defNode() {}

// TypeDef is a class or record definition.
type TypeDef struct {
	DefBase

	// The resolved base class types in declaration order.
	Bases []types.Type

	// The namespace of the type body's members.
	Members *Namespace

	// The type parameters of the definition.  May be empty.
	TypeParams []*types.TypeVarType

	// The record shape, for definitions produced by a record constructor
	// call.  Nil for ordinary classes.
	Record *types.RecordType

	// The class's AST.  Nil for record definitions.
	AST *ast.ClassDef
}

func (td *TypeDef) defNode() {}

// AliasDef is a type alias definition: a name bound to an existing type.
type AliasDef struct {
	DefBase

	// The aliased type.
	Target types.Type
}

func (ad *AliasDef) defNode() {}

// TypeVarDef is a type-variable declaration produced by a `typevar` call.
type TypeVarDef struct {
	DefBase

	// The declared type variable.
	TypeVar *types.TypeVarType
}

func (tv *TypeVarDef) defNode() {}

// ModuleRef is a binding that refers to a whole module (produced by imports).
type ModuleRef struct {
	DefBase

	// The full name of the referenced module.
	ModName string
}

func (mr *ModuleRef) defNode() {}

// Placeholder is a stand-in definition meaning "known to exist, not yet
// resolvable".  Placeholders let partially-known definitions participate in
// further resolution; none may survive the final pass.
type Placeholder struct {
	DefBase

	// Whether the definition this placeholder stands in for is expected to
	// become type-like (a class, alias, or type variable).  This hint may be
	// upgraded from false to true across passes, never downgraded.
	BecomesTypeLike bool
}

func (p *Placeholder) defNode() {}

// -----------------------------------------------------------------------------

// IsTypeLike returns whether the given definition can be referenced in type
// position.  Placeholders count as type-like when hinted so.
func IsTypeLike(def Definition) bool {
	switch v := def.(type) {
	case *TypeDef, *AliasDef, *TypeVarDef:
		return true
	case *Placeholder:
		return v.BecomesTypeLike
	default:
		return false
	}
}
