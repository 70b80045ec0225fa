package types

import (
	"strings"

	"sable/report"
)

// UnresolvedType is a structural type reference that has not been resolved
// yet: a (possibly dotted) name applied to zero or more argument references.
// The type reference resolver turns these into concrete types.
type UnresolvedType struct {
	// The segments of the referenced name: `a.b.C` => ["a", "b", "C"].
	Names []string

	// The argument references.  Elements may themselves be unresolved.
	Args []Type

	// The span of the reference in source text.
	Span *report.TextSpan
}

func (ut *UnresolvedType) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(strings.Join(ut.Names, "."))

	if len(ut.Args) > 0 {
		sb.WriteRune('[')
		for i, arg := range ut.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(arg.Repr())
		}
		sb.WriteRune(']')
	}

	return sb.String()
}

func (ut *UnresolvedType) typeNode() {}

// -----------------------------------------------------------------------------

// PlaceholderType wraps a type whose overall shape is known but which still
// contains nested unresolved parts.  It lets callers store partial results and
// keep working while the nested parts wait for a later pass.
type PlaceholderType struct {
	// The partially resolved type.
	Inner Type
}

func (pt *PlaceholderType) Repr() string {
	return "<placeholder " + pt.Inner.Repr() + ">"
}

func (pt *PlaceholderType) typeNode() {}

// -----------------------------------------------------------------------------

// HasUnresolved returns whether the given type contains any unresolved or
// placeholder parts.
func HasUnresolved(typ Type) bool {
	switch v := typ.(type) {
	case *UnresolvedType, *PlaceholderType:
		return true
	case *FuncType:
		for _, param := range v.Params {
			if HasUnresolved(param) {
				return true
			}
		}

		return HasUnresolved(v.ReturnType)
	case *TupleType:
		for _, elem := range v.Elems {
			if HasUnresolved(elem) {
				return true
			}
		}
	case *ClassType:
		for _, arg := range v.TypeArgs {
			if HasUnresolved(arg) {
				return true
			}
		}
	case *RecordType:
		for _, field := range v.Fields {
			if HasUnresolved(field.Type) {
				return true
			}
		}
	}

	return false
}

// Unwrap removes any placeholder wrappers from the given type.
func Unwrap(typ Type) Type {
	if pt, ok := typ.(*PlaceholderType); ok {
		return Unwrap(pt.Inner)
	}

	return typ
}
