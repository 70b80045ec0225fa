package resolve

import (
	"strings"

	"sable/ast"
	"sable/plugin"
	"sable/report"
	"sable/sem"
	"sable/types"
)

// resolveTypeExpr resolves an annotation expression into a concrete type.  It
// returns:
//
//   - a fully resolved type,
//   - a placeholder type whose overall shape is known but whose nested parts
//     are still pending (the caller stores the partial result and defers),
//   - or nil, meaning resolution is blocked on an incomplete dependency and
//     nothing useful is known yet (the caller defers).
//
// During the final pass nil is never returned: every blocked reference is
// converted into a diagnostic and the `any` error type.  Structural errors
// (non-type expressions in type position, wrong argument counts) are reported
// immediately at any pass since another pass can never fix them.
func (w *Walker) resolveTypeExpr(expr ast.Expr) types.Type {
	built, ok := w.buildTypeRef(expr)
	if !ok {
		return &types.AnyType{Source: types.AnyFromError}
	}

	return w.resolveBuilt(built)
}

// buildTypeRef converts an annotation expression into a structural type
// reference without resolving any names.  It reports a structural diagnostic
// and returns false for expressions that can never denote a type.
func (w *Walker) buildTypeRef(expr ast.Expr) (types.Type, bool) {
	switch v := expr.(type) {
	case *ast.NameExpr:
		return &types.UnresolvedType{Names: []string{v.Name}, Span: v.Span()}, true
	case *ast.DotExpr:
		names, ok := dottedNames(v)
		if !ok {
			break
		}

		return &types.UnresolvedType{Names: names, Span: v.Span()}, true
	case *ast.IndexExpr:
		names, ok := dottedNames(v.Root)
		if !ok {
			break
		}

		args := make([]types.Type, len(v.Subscripts))
		for i, sub := range v.Subscripts {
			arg, ok := w.buildTypeRef(sub)
			if !ok {
				return nil, false
			}

			args[i] = arg
		}

		return &types.UnresolvedType{Names: names, Args: args, Span: v.Span()}, true
	case *ast.TupleExpr:
		elems := make([]types.Type, len(v.Elems))
		for i, elem := range v.Elems {
			et, ok := w.buildTypeRef(elem)
			if !ok {
				return nil, false
			}

			elems[i] = et
		}

		return &types.TupleType{Elems: elems}, true
	case *ast.LitExpr:
		if v.Kind == ast.LitNone {
			return types.PrimNone, true
		}
	}

	w.recError(report.CodeStructural, expr.Span(), "expected a type expression")
	return nil, false
}

// dottedNames flattens a pure dotted chain (`a.b.c`) into its segments.  It
// returns false for any expression that is not a plain name or dotted chain.
func dottedNames(expr ast.Expr) ([]string, bool) {
	switch v := expr.(type) {
	case *ast.NameExpr:
		return []string{v.Name}, true
	case *ast.DotExpr:
		names, ok := dottedNames(v.Root)
		if !ok {
			return nil, false
		}

		return append(names, v.FieldName), true
	default:
		return nil, false
	}
}

// resolveBuilt resolves all unresolved references inside a structural type.
func (w *Walker) resolveBuilt(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.UnresolvedType:
		return w.resolveTypeRef(v)
	case *types.TupleType:
		elems := make([]types.Type, len(v.Elems))
		pending := false

		for i, elem := range v.Elems {
			et := w.resolveBuilt(elem)
			if et == nil {
				return nil
			}

			if types.HasUnresolved(et) {
				pending = true
			}

			elems[i] = et
		}

		tt := &types.TupleType{Elems: elems}
		if pending {
			return &types.PlaceholderType{Inner: tt}
		}

		return tt
	default:
		return t
	}
}

// resolveTypeRef resolves a single structural type reference into a concrete
// type by looking up its name and interpreting the definition it denotes.
func (w *Walker) resolveTypeRef(ref *types.UnresolvedType) types.Type {
	refName := strings.Join(ref.Names, ".")

	b, res := w.lookupQualified(ref.Names)
	switch res {
	case lookupDeferred:
		if w.final {
			w.recError(report.CodeUnresolvedName, ref.Span,
				"cannot resolve name `%s`, possible cyclic definition", refName)
			return &types.AnyType{Source: types.AnyFromError}
		}

		return nil
	case lookupMissing:
		w.recError(report.CodeUnresolvedName, ref.Span, "name `%s` is not defined", refName)
		return &types.AnyType{Source: types.AnyFromError}
	case lookupDynamic:
		// Projecting through a dynamic value: the reference is permissively
		// dynamic, never an error.
		return &types.AnyType{Source: types.AnyImplicit}
	}

	def := b.Def()

	if _, ok := def.(*sem.Placeholder); ok || w.wasErrorSubstituted(def) {
		if w.final {
			w.recError(report.CodeUnresolvedName, ref.Span,
				"cannot resolve name `%s`, possible cyclic definition", refName)
			return &types.AnyType{Source: types.AnyFromError}
		}

		w.recordIncomplete()
		return nil
	}

	if hook, ok := w.plugins.TypeAnalyzeHookFor(def.DefFullName()); ok {
		return hook.AnalyzeType(&plugin.TypeAnalyzeContext{Ref: ref, API: w.api()})
	}

	switch v := def.(type) {
	case *sem.TypeDef:
		if len(ref.Args) > 0 && len(ref.Args) != len(v.TypeParams) {
			w.recError(report.CodeArgCount, ref.Span,
				"`%s` expects %d type argument(s) but received %d",
				refName, len(v.TypeParams), len(ref.Args))
			return &types.AnyType{Source: types.AnyFromError}
		}

		args, pending := w.resolveTypeArgs(ref.Args)
		ct := &types.ClassType{FullName: v.FullName, TypeArgs: args}
		if pending {
			return &types.PlaceholderType{Inner: ct}
		}

		return ct
	case *sem.AliasDef:
		if len(ref.Args) == 0 {
			return v.Target
		}

		ct, ok := types.Unwrap(v.Target).(*types.ClassType)
		if !ok {
			w.recError(report.CodeArgCount, ref.Span, "`%s` is not generic", refName)
			return &types.AnyType{Source: types.AnyFromError}
		}

		args, pending := w.resolveTypeArgs(ref.Args)
		act := &types.ClassType{FullName: ct.FullName, TypeArgs: args}
		if pending {
			return &types.PlaceholderType{Inner: act}
		}

		return act
	case *sem.TypeVarDef:
		if len(ref.Args) > 0 {
			w.recError(report.CodeArgCount, ref.Span, "type variable `%s` is not generic", refName)
			return &types.AnyType{Source: types.AnyFromError}
		}

		return v.TypeVar
	default:
		// Variables, functions, and module references in type position.
		w.recError(report.CodeNotAType, ref.Span, "`%s` is not a type", refName)
		return &types.AnyType{Source: types.AnyFromError}
	}
}

// resolveTypeArgs resolves the arguments of a generic type application.  Any
// argument that stays blocked is left unresolved in place and the pending flag
// is set: the overall shape is still known so the caller can produce a
// placeholder type rather than lose all information.
func (w *Walker) resolveTypeArgs(args []types.Type) ([]types.Type, bool) {
	if len(args) == 0 {
		return nil, false
	}

	resolved := make([]types.Type, len(args))
	pending := false

	for i, arg := range args {
		rt := w.resolveBuilt(arg)
		if rt == nil {
			// Blocked: keep the unresolved reference for the next pass.
			resolved[i] = arg
			pending = true
			continue
		}

		if types.HasUnresolved(rt) {
			pending = true
		}

		resolved[i] = rt
	}

	return resolved, pending
}
