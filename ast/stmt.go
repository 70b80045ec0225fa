package ast

import "sable/report"

// Stmt is the abstract interface for all statement nodes.
type Stmt interface {
	ASTNode

	// stmtNode is a marker method sealing the set of statement nodes.
	stmtNode()
}

// StmtBase is the base type for all statement nodes.
type StmtBase struct {
	ASTBase
}

func (sb StmtBase) stmtNode() {}

// -----------------------------------------------------------------------------

// AssignStmt is a binding statement: one or more targets bound to an optional
// value with an optional annotation.  What kind of definition an assignment
// produces cannot be determined syntactically: the right-hand side may be a
// plain value, a type alias, a type-variable declaration, or a record
// constructor call.  The binder's classifier makes that call.
type AssignStmt struct {
	StmtBase

	// The assignment targets.  Each target is either a *NameExpr or a
	// *DotExpr (eg. `self.x` inside a method).
	Targets []Expr

	// The declared annotation of the target.  May be nil.
	Annot Expr

	// The bound value.  May be nil for a bare annotation (`x: C`).
	Value Expr
}

// ReturnStmt is a return statement inside a function body.
type ReturnStmt struct {
	StmtBase

	// The returned value.  May be nil.
	Value Expr
}

// ExprStmt is a statement consisting of a single expression.
type ExprStmt struct {
	StmtBase

	Expr Expr
}

// Enumeration of escape declaration kinds.
const (
	EscapeGlobal = iota // `global x`: bind x in the module namespace
	EscapeOuter         // `outer x`: bind x in the nearest enclosing function
)

// EscapeDecl is an outer-scope escape declaration: it redirects bindings of
// the listed names out of the current local scope.
type EscapeDecl struct {
	StmtBase

	// The escape kind.  Must be one of the enumerated escape kinds.
	Kind int

	// The escaped names.
	Names []string
}

// ImportStmt imports a module, optionally under an alias, or a list of names
// from a module.
type ImportStmt struct {
	StmtBase

	// The name of the imported module.
	ModName string

	// The local alias for the module.  Empty when the module is imported under
	// its own name or when Names is non-empty.
	Alias string

	// The names imported from the module.  When empty, the module itself is
	// bound.
	Names []*ImportedName
}

// ImportedName is a single name imported from another module.
type ImportedName struct {
	// The name as defined in the source module.
	Name string

	// The local alias for the name.  Empty when the name is imported under its
	// own name.
	Alias string

	// The span of the imported name.
	NameSpan *report.TextSpan
}
