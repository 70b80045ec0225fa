package types

import "strings"

// Type is the parent interface for all types in Sable.  The set of types is
// closed: every consumption site is expected to switch exhaustively over the
// variants defined in this package.
type Type interface {
	// Repr returns a representative string of the type for purposes of error
	// reporting.
	Repr() string

	// typeNode is a marker method sealing the set of type variants.
	typeNode()
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive type.  It should be one of the enumerated
// primitive types.
type PrimType int

// Enumeration of different primitive types.
const (
	PrimInt = PrimType(iota)
	PrimFloat
	PrimString
	PrimBool
	PrimNone
)

func (pt PrimType) Repr() string {
	switch pt {
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimString:
		return "str"
	case PrimBool:
		return "bool"
	default:
		// PrimNone
		return "none"
	}
}

func (pt PrimType) typeNode() {}

// -----------------------------------------------------------------------------

// Enumeration of the sources of an `any` type.
const (
	AnyImplicit  = iota // The user wrote no annotation.
	AnyExplicit         // The user explicitly wrote `any`.
	AnyFromError        // Substituted for a type that could not be resolved.
)

// AnyType represents the fully dynamic type.  Every operation on an `any`
// value succeeds and produces `any`.  The binder also substitutes `any` for
// references it could not resolve on the final pass so that downstream stages
// always see a concrete type.
type AnyType struct {
	// Where this `any` came from.  Must be one of the enumerated sources.
	Source int
}

func (at *AnyType) Repr() string {
	return "any"
}

func (at *AnyType) typeNode() {}

// -----------------------------------------------------------------------------

// FuncType represents a function type.
type FuncType struct {
	// The parameter types in declaration order.
	Params []Type

	// The return type.
	ReturnType Type
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')
	for i, param := range ft.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Repr())
	}
	sb.WriteString(") -> ")
	sb.WriteString(ft.ReturnType.Repr())

	return sb.String()
}

func (ft *FuncType) typeNode() {}

// -----------------------------------------------------------------------------

// TupleType represents a fixed-length tuple type.
type TupleType struct {
	Elems []Type
}

func (tt *TupleType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')
	for i, elem := range tt.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(elem.Repr())
	}
	sb.WriteRune(')')

	return sb.String()
}

func (tt *TupleType) typeNode() {}

// -----------------------------------------------------------------------------

// ClassType represents an instance of a defined class, possibly with type
// arguments.  The class definition itself is stored in the definition arena
// keyed by its stable full name: the class type carries only that key so that
// cyclic and self-referential classes never alias live pointers.
type ClassType struct {
	// The full name of the class: `module.Class` or `module.Outer.Inner`.
	FullName string

	// The type arguments applied to the class.  May be empty.
	TypeArgs []Type
}

func (ct *ClassType) Repr() string {
	if len(ct.TypeArgs) == 0 {
		return ct.FullName
	}

	sb := strings.Builder{}
	sb.WriteString(ct.FullName)
	sb.WriteRune('[')
	for i, arg := range ct.TypeArgs {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(arg.Repr())
	}
	sb.WriteRune(']')

	return sb.String()
}

func (ct *ClassType) typeNode() {}

// -----------------------------------------------------------------------------

// TypeVarType represents a reference to a declared type variable.
type TypeVarType struct {
	// The short name of the type variable.
	Name string

	// The full name of the declaration that introduced it.
	FullName string
}

func (tv *TypeVarType) Repr() string {
	return tv.Name
}

func (tv *TypeVarType) typeNode() {}

// -----------------------------------------------------------------------------

// RecordField is a single named field of a record type.
type RecordField struct {
	Name string
	Type Type
}

// RecordType represents a composite-record type produced by a record
// constructor call: a named, ordered collection of typed fields.
type RecordType struct {
	// The full name of the record definition.
	FullName string

	// The record's fields in declaration order.
	Fields []RecordField
}

func (rt *RecordType) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(rt.FullName)
	sb.WriteRune('{')
	for i, field := range rt.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(field.Name)
		sb.WriteString(": ")
		sb.WriteString(field.Type.Repr())
	}
	sb.WriteRune('}')

	return sb.String()
}

func (rt *RecordType) typeNode() {}
