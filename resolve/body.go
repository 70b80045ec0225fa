package resolve

import (
	"strings"

	"sable/ast"
	"sable/depm"
	"sable/plugin"
	"sable/report"
	"sable/sem"
	"sable/types"
)

// walkFuncTarget analyzes a function-body target: parameters bind into the
// target's persistent local namespace, escape declarations are applied before
// the body so they cover the whole body, and the statements are walked in a
// function scope.
func (w *Walker) walkFuncTarget(drv *Driver, t *depm.Target) {
	s := newScope(ScopeFunc, t.Locals)
	w.pushScope(s)
	defer w.popScope()

	fn := t.Func
	w.bindParams(fn)

	for _, stmt := range fn.AST.Body {
		if ed, ok := stmt.(*ast.EscapeDecl); ok {
			w.applyEscape(s, ed)
		}
	}

	for _, stmt := range fn.AST.Body {
		w.walkBodyStmt(drv, stmt)
	}
}

// walkNestedBody analyzes a nested function's body inline with its enclosing
// body.  Nested locals are not persistent: the namespace is rebuilt whenever
// the enclosing body is revisited.
func (w *Walker) walkNestedBody(drv *Driver, fd *sem.FuncDef) {
	s := newScope(ScopeFunc, sem.NewNamespace(fd.FullName))
	w.pushScope(s)
	defer w.popScope()

	w.bindParams(fd)

	for _, stmt := range fd.AST.Body {
		if ed, ok := stmt.(*ast.EscapeDecl); ok {
			w.applyEscape(s, ed)
		}
	}

	for _, stmt := range fd.AST.Body {
		w.walkBodyStmt(drv, stmt)
	}
}

// bindParams binds a function's parameters into the current local namespace
// with the types of its resolved signature.
func (w *Walker) bindParams(fn *sem.FuncDef) {
	for i, p := range fn.AST.Params {
		var pt types.Type = &types.AnyType{Source: types.AnyImplicit}
		if fn.Signature != nil && i < len(fn.Signature.Params) {
			pt = fn.Signature.Params[i]
		}

		w.bindDef(&sem.VarDef{
			DefBase:  sem.DefBase{Name: p.Name, FullName: fn.FullName + "." + p.Name, Span: p.NameSpan},
			Type:     pt,
			Explicit: p.Annot != nil,
		}, false)
	}
}

// walkBodyStmt analyzes one statement of a function body.
func (w *Walker) walkBodyStmt(drv *Driver, stmt ast.Stmt) {
	defer w.catchStmtErrors()

	switch v := stmt.(type) {
	case *ast.AssignStmt:
		w.walkAssign(v)
	case *ast.ReturnStmt:
		if v.Value != nil {
			w.walkExpr(v.Value)
		}
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.EscapeDecl:
		// Applied during the pre-scan.
	case *ast.FuncDef:
		if fd := w.walkFuncDefStmt(drv, v, nil); fd != nil {
			w.walkNestedBody(drv, fd)
		}
	case *ast.ClassDef:
		w.walkClassDef(drv, v)
	case *ast.ImportStmt:
		w.walkImport(v)
	}
}

// applyEscape records an escape declaration on its function scope, reporting
// the structural errors no later pass can fix.
func (w *Walker) applyEscape(s *Scope, ed *ast.EscapeDecl) {
	if ed.Kind == ast.EscapeOuter && !w.hasEnclosingFunc() {
		w.recError(report.CodeBadEscape, ed.Span(), "`outer` declaration with no enclosing function")
		return
	}

	for _, name := range ed.Names {
		if kind, ok := s.escapes[name]; ok && kind != ed.Kind {
			w.recError(report.CodeBadEscape, ed.Span(),
				"conflicting escape declarations for `%s`", name)
			continue
		}

		s.escapes[name] = ed.Kind
	}
}

// hasEnclosingFunc returns whether the current function scope is itself
// enclosed by another function scope.
func (w *Walker) hasEnclosingFunc() bool {
	funcs := 0
	for _, s := range w.scopes {
		if s.Kind == ScopeFunc {
			funcs++
		}
	}

	return funcs > 1
}

// escapeContext resolves the binding context of an escaped name: the module
// namespace for `global` declarations, the nearest enclosing function's
// locals for `outer`.  The last return is false when the name is not escaped.
func (w *Walker) escapeContext(name string) (*sem.Namespace, int, string, bool) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		s := w.scopes[i]
		if s.Kind != ScopeFunc {
			continue
		}

		esc, ok := s.escapes[name]
		if !ok {
			return nil, 0, "", false
		}

		if esc == ast.EscapeGlobal {
			return w.mod.Globals, sem.BindGlobal, w.mod.Name + "." + name, true
		}

		// `outer`: the next enclosing function scope.
		for j := i - 1; j >= 0; j-- {
			if w.scopes[j].Kind == ScopeFunc {
				ns := w.scopes[j].NS
				return ns, sem.BindLocal, ns.Owner + "." + name, true
			}
		}

		return nil, 0, "", false
	}

	return nil, 0, "", false
}

// -----------------------------------------------------------------------------

// walkExpr resolves the references inside an expression.  Blocked references
// defer the target; definitively missing names are diagnosed immediately.
func (w *Walker) walkExpr(expr ast.Expr) {
	if expr == nil {
		return
	}

	switch v := expr.(type) {
	case *ast.NameExpr:
		w.checkRef([]string{v.Name}, v.Span())
	case *ast.DotExpr:
		if names, ok := dottedNames(v); ok {
			w.checkRef(names, v.Span())
			return
		}

		w.walkExpr(v.Root)
	case *ast.CallExpr:
		w.walkExpr(v.Fn)
		for _, arg := range v.Args {
			w.walkExpr(arg)
		}
	case *ast.IndexExpr:
		w.walkExpr(v.Root)
		for _, sub := range v.Subscripts {
			w.walkExpr(sub)
		}
	case *ast.TupleExpr:
		for _, elem := range v.Elems {
			w.walkExpr(elem)
		}
	case *ast.ListExpr:
		for _, elem := range v.Elems {
			w.walkExpr(elem)
		}
	case *ast.CompExpr:
		w.walkComp(v)
	}
}

// walkComp analyzes a comprehension: the iterated expression is resolved in
// the enclosing scope, the iteration variables bind in a scope of their own,
// and the element expression is resolved inside it.
func (w *Walker) walkComp(v *ast.CompExpr) {
	w.walkExpr(v.Iter)

	s := newScope(ScopeComp, sem.NewNamespace(w.target.FullName))
	w.pushScope(s)
	defer w.popScope()

	for _, name := range v.Vars {
		w.bindDef(&sem.VarDef{
			DefBase: sem.DefBase{Name: name, FullName: w.target.FullName + "." + name, Span: v.Span()},
			Type:    &types.AnyType{Source: types.AnyImplicit},
		}, false)
	}

	w.walkExpr(v.Elem)
}

// checkRef resolves one (possibly dotted) reference in value position.
func (w *Walker) checkRef(names []string, span *report.TextSpan) {
	b, res := w.lookupQualified(names)
	switch res {
	case lookupFound:
		if b.IsPlaceholder() || w.wasErrorSubstituted(b.Def()) {
			if w.final {
				w.recError(report.CodeUnresolvedName, span,
					"cannot resolve name `%s`, possible cyclic definition", strings.Join(names, "."))
				return
			}

			w.recordIncomplete()
			w.deferTarget()
		}
	case lookupDeferred:
		if w.final {
			w.recError(report.CodeUnresolvedName, span,
				"cannot resolve name `%s`, possible cyclic definition", strings.Join(names, "."))
			return
		}

		w.deferTarget()
	case lookupMissing:
		w.recError(report.CodeUnresolvedName, span,
			"name `%s` is not defined", strings.Join(names, "."))
	case lookupDynamic:
		// Projection through a dynamic value always succeeds.
	}
}

// -----------------------------------------------------------------------------

// inferExprType infers a shallow type for a right-hand side: literals map to
// primitives, constructor calls to instance types, and calls to known
// functions to their declared result (refined by a function hook when one is
// registered).  Everything else is dynamically typed.
func (w *Walker) inferExprType(expr ast.Expr) types.Type {
	switch v := expr.(type) {
	case *ast.LitExpr:
		switch v.Kind {
		case ast.LitInt:
			return types.PrimInt
		case ast.LitFloat:
			return types.PrimFloat
		case ast.LitString:
			return types.PrimString
		case ast.LitBool:
			return types.PrimBool
		case ast.LitNone:
			return types.PrimNone
		}
	case *ast.CallExpr:
		names, ok := dottedNames(v.Fn)
		if !ok {
			break
		}

		b, res := w.lookupQualified(names)
		if res != lookupFound {
			break
		}

		switch d := b.Def().(type) {
		case *sem.TypeDef:
			return &types.ClassType{FullName: d.FullName}
		case *sem.FuncDef:
			if hook, ok := w.plugins.FunctionHookFor(d.FullName); ok {
				return hook.ResultType(&plugin.FunctionContext{
					FullName: d.FullName,
					CallSpan: v.Span(),
					API:      w.api(),
				})
			}

			if d.Signature != nil {
				return d.Signature.ReturnType
			}
		}
	case *ast.NameExpr, *ast.DotExpr:
		names, ok := dottedNames(expr)
		if !ok {
			break
		}

		if b, res := w.lookupQualified(names); res == lookupFound {
			if vd, ok := b.Def().(*sem.VarDef); ok {
				return vd.Type
			}
		}
	case *ast.TupleExpr:
		elems := make([]types.Type, len(v.Elems))
		for i, elem := range v.Elems {
			elems[i] = w.inferExprType(elem)
		}

		return &types.TupleType{Elems: elems}
	}

	return &types.AnyType{Source: types.AnyImplicit}
}
