package ast

import "sable/report"

// FuncDef is a function or method definition.
type FuncDef struct {
	StmtBase

	// The name of the function.
	Name string

	// The span of the function's name.
	NameSpan *report.TextSpan

	// The function's parameters.
	Params []*Param

	// The declared return annotation.  May be nil.
	ReturnAnnot Expr

	// The statements making up the function body.
	Body []Stmt
}

// Param is a single function parameter.
type Param struct {
	// The name of the parameter.
	Name string

	// The span of the parameter's name.
	NameSpan *report.TextSpan

	// The declared annotation of the parameter.  May be nil.
	Annot Expr

	// The default value of the parameter.  May be nil.
	Default Expr
}

// ClassDef is a class definition: a named type with base classes and a body of
// member definitions.
type ClassDef struct {
	StmtBase

	// The name of the class.
	Name string

	// The span of the class's name.
	NameSpan *report.TextSpan

	// The base class expressions.
	Bases []Expr

	// The statements making up the class body.
	Body []Stmt
}
