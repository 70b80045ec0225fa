package resolve

import (
	"strings"

	"sable/ast"
	"sable/common"
	"sable/depm"
	"sable/plugin"
	"sable/report"
	"sable/sem"
	"sable/types"
)

// walkTopStmt analyzes one top-level statement of a module.  Errors raised
// while analyzing the statement are confined to it: analysis continues with
// the next statement.
func (w *Walker) walkTopStmt(drv *Driver, stmt ast.Stmt) {
	defer w.catchStmtErrors()

	switch v := stmt.(type) {
	case *ast.ImportStmt:
		w.walkImport(v)
	case *ast.FuncDef:
		w.walkFuncDefStmt(drv, v, nil)
	case *ast.ClassDef:
		w.walkClassDef(drv, v)
	case *ast.AssignStmt:
		w.walkAssign(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.EscapeDecl:
		w.recError(report.CodeBadEscape, v.Span(), "escape declaration outside function")
	case *ast.ReturnStmt:
		w.recError(report.CodeStructural, v.Span(), "return outside function")
	}
}

// -----------------------------------------------------------------------------

// walkImport analyzes an import statement.  Module imports bind a module
// reference; from-imports bind the imported names so that they share the
// source module's definition cells, making re-exports observe later
// placeholder replacement.
func (w *Walker) walkImport(v *ast.ImportStmt) {
	srcNS := w.proj.Builtins
	if v.ModName != common.BuiltinModName {
		imp, ok := w.proj.Modules[v.ModName]
		if !ok {
			// The module set is fixed before binding starts, so a missing
			// module is definitive at any pass.
			w.recError(report.CodeImport, v.Span(), "module `%s` not found", v.ModName)
			return
		}

		srcNS = imp.Globals
	}

	w.recordDep(v.ModName)

	if len(v.Names) == 0 {
		name := v.ModName
		if v.Alias != "" {
			name = v.Alias
		}

		// Re-importing the same module under the same name is a no-op.
		ns, _ := w.bindingContext()
		if b, ok := ns.Get(name); ok {
			if mr, ok := b.Def().(*sem.ModuleRef); ok && mr.ModName == v.ModName {
				return
			}
		}

		w.bindDef(&sem.ModuleRef{
			DefBase: sem.DefBase{Name: name, FullName: v.ModName, Span: v.Span()},
			ModName: v.ModName,
		}, isPublicName(name))
		return
	}

	for _, in := range v.Names {
		local := in.Name
		if in.Alias != "" {
			local = in.Alias
		}

		sb, ok := srcNS.Get(in.Name)
		if !ok {
			if srcNS.Incomplete {
				if w.final {
					w.recError(report.CodeUnresolvedName, in.NameSpan,
						"cannot resolve name `%s.%s`, possible cyclic definition", v.ModName, in.Name)
					continue
				}

				w.recordIncomplete()
				w.deferTarget()
				continue
			}

			w.recError(report.CodeImport, in.NameSpan,
				"module `%s` has no member `%s`", v.ModName, in.Name)
			continue
		}

		w.bindImported(local, sb, in.NameSpan)
	}
}

// bindImported binds an imported name so it shares the source binding's arena
// entry.
func (w *Walker) bindImported(name string, src *sem.Binding, span *report.TextSpan) {
	ns, kind := w.bindingContext()

	b := &sem.Binding{Kind: kind, Public: isPublicName(name), Serializable: true}
	if !w.proj.Registry.AddImported(ns, name, b, src.Entry) {
		if ns.MissedThisPass(name) {
			w.deferTarget()
			return
		}

		w.recError(report.CodeRedefinition, span, "`%s` defined multiple times", name)
		return
	}

	if src.IsPlaceholder() {
		// The imported definition is itself still incomplete.
		w.recordIncomplete()
		w.deferTarget()
	}

	w.currentScope().markBound(name)
}

// -----------------------------------------------------------------------------

// walkFuncDefStmt analyzes a function or method definition statement: it
// resolves the signature, binds the function definition, and schedules the
// body as an independent target.  Bodies of nested functions are instead
// walked inline by the caller; the returned definition supports that.
func (w *Walker) walkFuncDefStmt(drv *Driver, v *ast.FuncDef, class *sem.TypeDef) *sem.FuncDef {
	pre := *w.inc

	sig, complete := w.resolveSignature(v, class)
	def := &sem.FuncDef{
		DefBase:   sem.DefBase{Name: v.Name, FullName: w.fullNameOf(v.Name), Span: v.NameSpan},
		Signature: sig,
		AST:       v,
	}

	b := w.bindDef(def, isPublicName(v.Name))
	if b == nil {
		return nil
	}

	// Default values are evaluated in the enclosing scope at definition time.
	for _, p := range v.Params {
		if p.Default != nil {
			w.walkExpr(p.Default)
		}
	}

	if !complete || *w.inc != pre {
		w.deferTarget()
	}

	fd, ok := b.Def().(*sem.FuncDef)
	if !ok {
		return nil
	}

	// Top-level functions and methods get their own deferrable body target;
	// nested function bodies are analyzed inline with their enclosing body.
	if kind := w.innermostBindingKind(); kind == ScopeModule || kind == ScopeTypeBody {
		drv.addBodyTarget(w.mod, fd, class, complete && *w.inc == pre)
		return nil
	}

	return fd
}

// innermostBindingKind returns the kind of the innermost binding scope.
func (w *Walker) innermostBindingKind() int {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		switch w.scopes[i].Kind {
		case ScopeModule, ScopeTypeBody, ScopeFunc, ScopeComp:
			return w.scopes[i].Kind
		}
	}

	return ScopeModule
}

// resolveSignature resolves a function's declared signature.  Unannotated
// parameters and returns are dynamically typed, except an unannotated first
// parameter of a method, which is the enclosing class instance.  The complete
// flag is false when any annotation stayed blocked: the signature is usable
// but must be re-derived on the next pass.
func (w *Walker) resolveSignature(v *ast.FuncDef, class *sem.TypeDef) (*types.FuncType, bool) {
	complete := true

	params := make([]types.Type, len(v.Params))
	for i, p := range v.Params {
		if p.Annot == nil {
			if i == 0 && class != nil {
				params[i] = &types.ClassType{FullName: class.FullName}
			} else {
				params[i] = &types.AnyType{Source: types.AnyImplicit}
			}

			continue
		}

		pt := w.resolveTypeExpr(p.Annot)
		if pt == nil {
			params[i] = &types.AnyType{Source: types.AnyImplicit}
			complete = false
			continue
		}

		if types.HasUnresolved(pt) {
			complete = false
		}

		params[i] = pt
	}

	var ret types.Type = &types.AnyType{Source: types.AnyImplicit}
	if v.ReturnAnnot != nil {
		if rt := w.resolveTypeExpr(v.ReturnAnnot); rt == nil {
			complete = false
		} else {
			if types.HasUnresolved(rt) {
				complete = false
			}

			ret = rt
		}
	}

	return &types.FuncType{Params: params, ReturnType: ret}, complete
}

// -----------------------------------------------------------------------------

// walkClassDef analyzes a class definition: the class is bound before its
// bases and body are analyzed so that forward and self references to it
// resolve, its member namespace persists across passes, and its body is walked
// in a type-body scope.
func (w *Walker) walkClassDef(drv *Driver, v *ast.ClassDef) {
	fullName := w.fullNameOf(v.Name)
	ns, _ := w.bindingContext()

	// Reuse the definition from an earlier pass so the member namespace and
	// everything bound in it survive.
	var td *sem.TypeDef
	if b, ok := w.proj.Registry.FindBySpan(ns, v.Name, v.NameSpan); ok {
		if existing, ok := b.Def().(*sem.TypeDef); ok {
			td = existing
		}
	}

	if td == nil {
		td = &sem.TypeDef{
			DefBase: sem.DefBase{Name: v.Name, FullName: fullName, Span: v.NameSpan},
			Members: sem.NewNamespace(fullName),
			AST:     v,
		}
		td.Members.Incomplete = true
	}

	b := w.bindDef(td, isPublicName(v.Name))
	if b == nil {
		return
	}

	basesPending := w.resolveBases(td, v)

	s := newScope(ScopeTypeBody, td.Members)
	s.Class = td
	w.pushScope(s)

	for _, stmt := range v.Body {
		w.walkClassBodyStmt(drv, stmt, td)
	}

	w.popScope()

	if basesPending {
		w.deferTarget()
	} else if !w.deferred {
		td.Members.Incomplete = false
	}

	for _, bt := range td.Bases {
		if ct, ok := types.Unwrap(bt).(*types.ClassType); ok {
			if hook, ok := w.plugins.ClassDefHookFor(ct.FullName); ok {
				hook.Customize(&plugin.ClassDefContext{Def: td, API: w.api()})
			}
		}
	}
}

// resolveBases resolves a class's base expressions, derives its type
// parameters from generic base applications, and reports the structural base
// errors that no later pass can fix.  It returns whether any base stayed
// blocked.
func (w *Walker) resolveBases(td *sem.TypeDef, v *ast.ClassDef) bool {
	pending := false
	recordBases := 0
	seen := make(map[string]struct{})

	var bases []types.Type
	var typeParams []*types.TypeVarType

	for _, baseExpr := range v.Bases {
		bt := w.resolveTypeExpr(baseExpr)
		if bt == nil {
			pending = true
			continue
		}

		if types.HasUnresolved(bt) {
			pending = true
		}

		switch u := types.Unwrap(bt).(type) {
		case *types.ClassType:
			if u.FullName == td.FullName {
				w.recError(report.CodeStructural, baseExpr.Span(),
					"class `%s` cannot inherit from itself", td.Name)
				continue
			}

			if _, dup := seen[u.FullName]; dup {
				w.recError(report.CodeStructural, baseExpr.Span(), "duplicate base `%s`", u.FullName)
				continue
			}
			seen[u.FullName] = struct{}{}

			// A base applied entirely to type variables introduces the class's
			// type parameters.
			if vars, ok := allTypeVars(u.TypeArgs); ok {
				typeParams = append(typeParams, vars...)
			}

			if entry, ok := w.proj.Arena.Get(u.FullName); ok {
				if base, ok := entry.Def.(*sem.TypeDef); ok && base.Record != nil {
					recordBases++
				}
			}
		case *types.AnyType:
			// A dynamic base is permitted.
		default:
			w.recError(report.CodeStructural, baseExpr.Span(),
				"invalid base for class `%s`: %s", td.Name, bt.Repr())
			continue
		}

		bases = append(bases, bt)
	}

	if recordBases > 0 && len(v.Bases) > 1 {
		w.recError(report.CodeStructural, v.NameSpan, "class `%s` has conflicting bases", td.Name)
	}

	td.Bases = bases
	if len(typeParams) > 0 {
		td.TypeParams = typeParams
	}

	return pending
}

// allTypeVars returns the type arguments as type variables if every one of
// them is a type variable.
func allTypeVars(args []types.Type) ([]*types.TypeVarType, bool) {
	if len(args) == 0 {
		return nil, false
	}

	vars := make([]*types.TypeVarType, len(args))
	for i, arg := range args {
		tv, ok := types.Unwrap(arg).(*types.TypeVarType)
		if !ok {
			return nil, false
		}

		vars[i] = tv
	}

	return vars, true
}

// walkClassBodyStmt analyzes one statement of a class body.
func (w *Walker) walkClassBodyStmt(drv *Driver, stmt ast.Stmt, td *sem.TypeDef) {
	defer w.catchStmtErrors()

	switch v := stmt.(type) {
	case *ast.AssignStmt:
		w.walkAssign(v)
	case *ast.FuncDef:
		w.walkFuncDefStmt(drv, v, td)
	case *ast.ClassDef:
		w.walkClassDef(drv, v)
	case *ast.ImportStmt:
		w.walkImport(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	default:
		w.recError(report.CodeStructural, stmt.Span(), "statement not allowed in class body")
	}
}

// -----------------------------------------------------------------------------

// Enumeration of assignment classifications.
const (
	defVariable    = iota // An ordinary variable binding.
	defAlias              // A type alias: a name bound to a type expression.
	defTypeVarDecl        // A `typevar(...)` declaration.
	defRecordDecl         // A `record(...)` constructor call.
	defUnknown            // The right-hand side is not resolvable yet.
)

// walkAssign analyzes a binding statement.  What kind of definition an
// assignment produces is not syntactically determined: the right-hand side is
// classified first and the statement is then analyzed under that
// classification.  When the right-hand side cannot be resolved yet, the target
// is bound to a placeholder carrying a becomes-type-like hint and the target
// defers.
func (w *Walker) walkAssign(v *ast.AssignStmt) {
	// Annotated bindings are always variables.
	if v.Annot != nil {
		w.walkAnnotatedAssign(v)
		return
	}

	if v.Value == nil {
		w.recError(report.CodeStructural, v.Span(), "binding statement has no value")
		return
	}

	// Classification beyond a plain variable requires a single name target.
	nameTarget, singleName := singleNameTarget(v)
	if !singleName {
		w.walkVariableAssign(v)
		return
	}

	kind, hint := w.classifyAssign(v)
	switch kind {
	case defAlias:
		w.walkAliasAssign(v, nameTarget)
	case defTypeVarDecl:
		w.walkTypeVarDecl(v, nameTarget)
	case defRecordDecl:
		w.walkRecordDecl(v, nameTarget)
	case defUnknown:
		w.bindUnknown(nameTarget.Name, nameTarget.Span(), hint)
	default:
		w.walkVariableAssign(v)
	}
}

// singleNameTarget returns the assignment's target if it is a single plain
// name.
func singleNameTarget(v *ast.AssignStmt) (*ast.NameExpr, bool) {
	if len(v.Targets) != 1 {
		return nil, false
	}

	ne, ok := v.Targets[0].(*ast.NameExpr)
	return ne, ok
}

// classifyAssign decides what kind of definition an assignment produces by
// tolerantly resolving the head of its right-hand side.  It returns the
// classification and, for unknown right-hand sides, whether the definition is
// expected to become type-like.
func (w *Walker) classifyAssign(v *ast.AssignStmt) (int, bool) {
	switch rhs := v.Value.(type) {
	case *ast.CallExpr:
		names, ok := dottedNames(rhs.Fn)
		if !ok {
			return defVariable, false
		}

		b, res := w.lookupQualified(names)
		switch res {
		case lookupDeferred:
			return defUnknown, false
		case lookupMissing, lookupDynamic:
			return defVariable, false
		}

		if w.wasErrorSubstituted(b.Def()) {
			return defUnknown, false
		}

		switch b.Def().DefFullName() {
		case common.BuiltinModName + ".typevar":
			return defTypeVarDecl, false
		case common.BuiltinModName + ".record":
			return defRecordDecl, false
		default:
			return defVariable, false
		}
	case *ast.NameExpr, *ast.DotExpr, *ast.IndexExpr:
		head := v.Value
		if ie, ok := rhs.(*ast.IndexExpr); ok {
			head = ie.Root
		}

		names, ok := dottedNames(head)
		if !ok {
			return defVariable, false
		}

		b, res := w.lookupQualified(names)
		switch res {
		case lookupDeferred:
			return defUnknown, false
		case lookupMissing, lookupDynamic:
			return defVariable, false
		}

		if ph, ok := b.Def().(*sem.Placeholder); ok {
			return defUnknown, ph.BecomesTypeLike
		}

		if w.wasErrorSubstituted(b.Def()) {
			return defUnknown, false
		}

		if sem.IsTypeLike(b.Def()) {
			return defAlias, false
		}

		return defVariable, false
	default:
		return defVariable, false
	}
}

// walkAnnotatedAssign analyzes an explicitly annotated variable binding.
func (w *Walker) walkAnnotatedAssign(v *ast.AssignStmt) {
	t := w.resolveTypeExpr(v.Annot)
	if t == nil {
		// The annotation is blocked; the whole statement waits for the next
		// pass so the variable's declared type is never guessed.
		w.deferTarget()
		return
	}

	if types.HasUnresolved(t) {
		w.deferTarget()
	}

	if v.Value != nil {
		w.walkExpr(v.Value)
	}

	for _, target := range v.Targets {
		w.bindAssignTarget(target, t, true)
	}
}

// walkVariableAssign analyzes a plain variable binding, inferring a shallow
// type from the right-hand side.
func (w *Walker) walkVariableAssign(v *ast.AssignStmt) {
	w.walkExpr(v.Value)
	t := w.inferExprType(v.Value)

	for _, target := range v.Targets {
		w.bindAssignTarget(target, t, false)
	}
}

// walkAliasAssign analyzes a type alias binding: `C = D` or `C = list[D]`
// where the right-hand side denotes a type.
func (w *Walker) walkAliasAssign(v *ast.AssignStmt, target *ast.NameExpr) {
	t := w.resolveTypeExpr(v.Value)
	if t == nil {
		w.bindUnknown(target.Name, target.Span(), true)
		return
	}

	if types.HasUnresolved(t) {
		w.deferTarget()
	}

	w.bindDef(&sem.AliasDef{
		DefBase: sem.DefBase{Name: target.Name, FullName: w.fullNameOf(target.Name), Span: target.Span()},
		Target:  t,
	}, isPublicName(target.Name))
}

// walkTypeVarDecl analyzes a type-variable declaration: `T = typevar("T")`.
func (w *Walker) walkTypeVarDecl(v *ast.AssignStmt, target *ast.NameExpr) {
	call := v.Value.(*ast.CallExpr)

	declared, ok := stringLitArg(call, 0)
	if !ok {
		w.recError(report.CodeStructural, call.Span(),
			"type variable declaration expects a string literal name")
		return
	}

	if declared != target.Name {
		w.recError(report.CodeStructural, call.Span(),
			"type variable name `%s` does not match bound name `%s`", declared, target.Name)
		return
	}

	fullName := w.fullNameOf(target.Name)
	w.bindDef(&sem.TypeVarDef{
		DefBase: sem.DefBase{Name: target.Name, FullName: fullName, Span: target.Span()},
		TypeVar: &types.TypeVarType{Name: target.Name, FullName: fullName},
	}, isPublicName(target.Name))
}

// walkRecordDecl analyzes a record constructor call:
// `P = record("P", ("x", int), ("y", str))`.
func (w *Walker) walkRecordDecl(v *ast.AssignStmt, target *ast.NameExpr) {
	call := v.Value.(*ast.CallExpr)

	declared, ok := stringLitArg(call, 0)
	if !ok {
		w.recError(report.CodeStructural, call.Span(),
			"record declaration expects a string literal name")
		return
	}

	if declared != target.Name {
		w.recError(report.CodeStructural, call.Span(),
			"record name `%s` does not match bound name `%s`", declared, target.Name)
		return
	}

	fullName := w.fullNameOf(target.Name)
	ns, _ := w.bindingContext()

	// Reuse the definition from an earlier pass so the member namespace
	// persists.
	var td *sem.TypeDef
	if b, ok := w.proj.Registry.FindBySpan(ns, target.Name, target.Span()); ok {
		if existing, ok := b.Def().(*sem.TypeDef); ok {
			td = existing
		}
	}

	if td == nil {
		td = &sem.TypeDef{
			DefBase: sem.DefBase{Name: target.Name, FullName: fullName, Span: target.Span()},
			Members: sem.NewNamespace(fullName),
		}
		td.Members.Incomplete = true
	}

	fields, pending := w.resolveRecordFields(call, fullName, td.Members)
	td.Record = &types.RecordType{FullName: fullName, Fields: fields}

	if pending {
		w.deferTarget()
	} else {
		td.Members.Incomplete = false
	}

	w.bindDef(td, isPublicName(target.Name))
}

// resolveRecordFields resolves the field arguments of a record constructor
// call and binds each field into the record's member namespace.  It returns
// the fields and whether any field type stayed blocked.
func (w *Walker) resolveRecordFields(call *ast.CallExpr, fullName string, members *sem.Namespace) ([]types.RecordField, bool) {
	pending := false
	seen := make(map[string]struct{})

	var fields []types.RecordField
	for _, arg := range call.Args[1:] {
		tup, ok := arg.(*ast.TupleExpr)
		if !ok || len(tup.Elems) != 2 {
			w.recError(report.CodeStructural, arg.Span(),
				"record field expects a (name, type) pair")
			continue
		}

		lit, ok := tup.Elems[0].(*ast.LitExpr)
		if !ok || lit.Kind != ast.LitString {
			w.recError(report.CodeStructural, tup.Elems[0].Span(),
				"record field name must be a string literal")
			continue
		}

		fieldName := stringLitValue(lit)
		if _, dup := seen[fieldName]; dup {
			w.recError(report.CodeStructural, tup.Elems[0].Span(),
				"duplicate record field `%s`", fieldName)
			continue
		}
		seen[fieldName] = struct{}{}

		var fieldType types.Type
		if built, ok := w.buildTypeRef(tup.Elems[1]); !ok {
			fieldType = &types.AnyType{Source: types.AnyFromError}
		} else if rt := w.resolveBuilt(built); rt == nil {
			// Blocked: keep the unresolved reference for the next pass.
			fieldType = built
			pending = true
		} else {
			if types.HasUnresolved(rt) {
				pending = true
			}

			fieldType = rt
		}

		fields = append(fields, types.RecordField{Name: fieldName, Type: fieldType})

		fb := &sem.Binding{Kind: sem.BindMember, Public: true, Serializable: true}
		w.proj.Registry.AddBinding(members, fieldName, fb, &sem.VarDef{
			DefBase:  sem.DefBase{Name: fieldName, FullName: fullName + "." + fieldName, Span: tup.Elems[0].Span()},
			Type:     fieldType,
			Explicit: true,
		})
	}

	return fields, pending
}

// stringLitArg extracts a string literal argument of a call.
func stringLitArg(call *ast.CallExpr, i int) (string, bool) {
	if i >= len(call.Args) {
		return "", false
	}

	lit, ok := call.Args[i].(*ast.LitExpr)
	if !ok || lit.Kind != ast.LitString {
		return "", false
	}

	return stringLitValue(lit), true
}

// stringLitValue returns the contents of a string literal with any quoting
// stripped.
func stringLitValue(lit *ast.LitExpr) string {
	return strings.Trim(lit.Value, "\"'")
}

// -----------------------------------------------------------------------------

// bindAssignTarget binds one assignment target to a variable definition of
// the given type.  Reassignment of an existing variable is not a new
// definition; member targets (`self.x`) bind into the enclosing class.
func (w *Walker) bindAssignTarget(target ast.Expr, t types.Type, explicit bool) {
	switch v := target.(type) {
	case *ast.NameExpr:
		// Escape declarations redirect the binding out of the local scope.
		ns, kind, fullName, ok := w.escapeContext(v.Name)
		if !ok {
			ns, kind = w.bindingContext()
			fullName = w.fullNameOf(v.Name)
		}

		// A statement already analyzed on an earlier pass refreshes in place;
		// assigning over an existing variable is a plain reassignment.
		if _, ok := w.proj.Registry.FindBySpan(ns, v.Name, v.Span()); !ok {
			if existing, ok := ns.Get(v.Name); ok && !existing.IsPlaceholder() {
				if _, isVar := existing.Def().(*sem.VarDef); isVar {
					return
				}
			}
		}

		w.bindDefIn(ns, kind, &sem.VarDef{
			DefBase:  sem.DefBase{Name: v.Name, FullName: fullName, Span: v.Span()},
			Type:     t,
			Explicit: explicit,
		}, isPublicName(v.Name))
	case *ast.DotExpr:
		w.bindMemberTarget(v, t, explicit)
	default:
		w.walkExpr(target)
	}
}

// bindMemberTarget binds a `self.x = ...` target into the enclosing class's
// member namespace.  Any other dotted target is a dynamic store, not a
// definition.
func (w *Walker) bindMemberTarget(v *ast.DotExpr, t types.Type, explicit bool) {
	root, ok := v.Root.(*ast.NameExpr)
	if !ok {
		w.walkExpr(v.Root)
		return
	}

	t0 := w.target
	if t0.Kind != depm.TargetFuncBody || t0.Class == nil ||
		len(t0.Func.AST.Params) == 0 || root.Name != t0.Func.AST.Params[0].Name {
		w.walkExpr(v.Root)
		return
	}

	members := t0.Class.Members
	if existing, ok := members.Get(v.FieldName); ok && !existing.IsPlaceholder() {
		// Already defined as a member (a class-body binding or an earlier
		// store); repeated stores are reassignments.
		return
	}

	b := &sem.Binding{Kind: sem.BindMember, Public: isPublicName(v.FieldName), Serializable: true}
	w.proj.Registry.AddBinding(members, v.FieldName, b, &sem.VarDef{
		DefBase:  sem.DefBase{Name: v.FieldName, FullName: t0.Class.FullName + "." + v.FieldName, Span: v.FieldSpan},
		Type:     t,
		Explicit: explicit,
	})
}

// bindUnknown binds a placeholder for a name whose defining statement cannot
// be classified yet and defers the target.  During the final pass the
// placeholder is instead destroyed: a cyclic-definition diagnostic is reported
// and the name becomes an error-typed variable so no placeholder survives
// binding.
func (w *Walker) bindUnknown(name string, span *report.TextSpan, becomesTypeLike bool) {
	ns, kind := w.bindingContext()
	fullName := w.fullNameOf(name)

	if w.final {
		w.recError(report.CodeUnresolvedName, span,
			"cannot resolve name `%s`, possible cyclic definition", name)
		w.markErrorSubstituted(fullName)

		b := &sem.Binding{Kind: kind, Public: isPublicName(name), Serializable: true}
		w.proj.Registry.AddBinding(ns, name, b, &sem.VarDef{
			DefBase: sem.DefBase{Name: name, FullName: fullName, Span: span},
			Type:    &types.AnyType{Source: types.AnyFromError},
		})
		return
	}

	b := &sem.Binding{Kind: kind, Public: isPublicName(name), Serializable: false}
	w.proj.Registry.AddBinding(ns, name, b, &sem.Placeholder{
		DefBase:         sem.DefBase{Name: name, FullName: fullName, Span: span},
		BecomesTypeLike: becomesTypeLike,
	})

	w.deferTarget()
}

// -----------------------------------------------------------------------------

// bindDef installs a definition in the current binding context, enforcing the
// registry's replacement rules.  It returns the authoritative binding for the
// name, or nil when the definition could not be bound (deferred by the
// first-definition-wins rule or reported as a redefinition).
func (w *Walker) bindDef(def sem.Definition, public bool) *sem.Binding {
	ns, kind := w.bindingContext()
	return w.bindDefIn(ns, kind, def, public)
}

// bindDefIn installs a definition in an explicitly chosen namespace.  Escaped
// names bind outside the current binding context, which is why the namespace
// is a parameter.
func (w *Walker) bindDefIn(ns *sem.Namespace, kind int, def sem.Definition, public bool) *sem.Binding {
	name := def.DefName()

	// A statement analyzed on an earlier pass refreshes its existing binding
	// in place, shadowed copies included.
	if b, ok := w.proj.Registry.FindBySpan(ns, name, def.DefSpan()); ok {
		w.proj.Registry.Refresh(b, def)
		w.currentScope().markBound(name)
		return b
	}

	b := &sem.Binding{Kind: kind, Public: public, Serializable: true}
	if !w.proj.Registry.AddBinding(ns, name, b, def) {
		if ns.MissedThisPass(name) {
			// A lookup already concluded this name absent during this pass;
			// first definition wins, so binding waits for the next pass.
			w.deferTarget()
			return nil
		}

		if isLegalShadow(def) {
			w.proj.Registry.RecordRedefinition(ns, name, b, def)
		} else {
			w.recError(report.CodeRedefinition, def.DefSpan(),
				"`%s` defined multiple times", name)
			return nil
		}
	}

	w.currentScope().markBound(name)

	nb, _ := ns.GetAny(name)
	return nb
}

// isLegalShadow reports whether a conflicting new definition legitimately
// shadows the old one.  Function and class statements may redefine an existing
// name (the old definition is preserved under a decorated key); everything
// else is a redefinition error.
func isLegalShadow(new sem.Definition) bool {
	switch new.(type) {
	case *sem.FuncDef, *sem.TypeDef:
		return true
	default:
		return false
	}
}
