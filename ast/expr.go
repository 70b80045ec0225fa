package ast

import "sable/report"

// Expr is the abstract interface for all expression nodes.
type Expr interface {
	ASTNode

	// exprNode is a marker method sealing the set of expression nodes.
	exprNode()
}

// ExprBase is the base type for all expression nodes.
type ExprBase struct {
	ASTBase
}

func (eb ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// NameExpr is a reference to a name.
type NameExpr struct {
	ExprBase

	Name string
}

// DotExpr is a qualified (dotted) reference: `root.field`.
type DotExpr struct {
	ExprBase

	// The expression being projected into.
	Root Expr

	// The projected field name.
	FieldName string

	// The span of the projected field name.
	FieldSpan *report.TextSpan
}

// CallExpr is a call: `fn(args...)`.
type CallExpr struct {
	ExprBase

	// The called expression.
	Fn Expr

	// The positional arguments.
	Args []Expr
}

// IndexExpr is a subscript: `root[subs...]`.  In annotation position this is
// a generic type application such as `list[int]`.
type IndexExpr struct {
	ExprBase

	// The expression being subscripted.
	Root Expr

	// The subscript arguments.
	Subscripts []Expr
}

// TupleExpr is a tuple display: `(a, b, c)`.
type TupleExpr struct {
	ExprBase

	Elems []Expr
}

// ListExpr is a list display: `[a, b, c]`.
type ListExpr struct {
	ExprBase

	Elems []Expr
}

// CompExpr is a comprehension: `[elem for var in iter]`.  A comprehension
// introduces its own scope for the iteration variables.
type CompExpr struct {
	ExprBase

	// The element expression.
	Elem Expr

	// The iteration variable names.
	Vars []string

	// The iterated expression.
	Iter Expr
}

// Enumeration of literal kinds.
const (
	LitString = iota
	LitInt
	LitFloat
	LitBool
	LitNone
)

// LitExpr is a literal.
type LitExpr struct {
	ExprBase

	// The literal kind.  Must be one of the enumerated literal kinds.
	Kind int

	// The literal's source text.
	Value string
}
