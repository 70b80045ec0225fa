package resolve

import (
	"testing"

	"sable/ast"
	"sable/depm"
	"sable/report"
	"sable/sem"
	"sable/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// astb builds test ASTs.  Every node gets its own span so the binder's
// span-identity bookkeeping behaves as it does with parser output.
type astb struct {
	line int
}

func (b *astb) sp() *report.TextSpan {
	b.line++
	return &report.TextSpan{StartLine: b.line, EndLine: b.line}
}

func (b *astb) expr() ast.ExprBase {
	return ast.ExprBase{ASTBase: ast.NewASTBaseOn(b.sp())}
}

func (b *astb) stmt() ast.StmtBase {
	return ast.StmtBase{ASTBase: ast.NewASTBaseOn(b.sp())}
}

func (b *astb) name(n string) *ast.NameExpr {
	return &ast.NameExpr{ExprBase: b.expr(), Name: n}
}

func (b *astb) dot(root ast.Expr, field string) *ast.DotExpr {
	return &ast.DotExpr{ExprBase: b.expr(), Root: root, FieldName: field, FieldSpan: b.sp()}
}

func (b *astb) index(root ast.Expr, subs ...ast.Expr) *ast.IndexExpr {
	return &ast.IndexExpr{ExprBase: b.expr(), Root: root, Subscripts: subs}
}

func (b *astb) call(fn ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{ExprBase: b.expr(), Fn: fn, Args: args}
}

func (b *astb) tuple(elems ...ast.Expr) *ast.TupleExpr {
	return &ast.TupleExpr{ExprBase: b.expr(), Elems: elems}
}

func (b *astb) str(v string) *ast.LitExpr {
	return &ast.LitExpr{ExprBase: b.expr(), Kind: ast.LitString, Value: v}
}

func (b *astb) num(v string) *ast.LitExpr {
	return &ast.LitExpr{ExprBase: b.expr(), Kind: ast.LitInt, Value: v}
}

func (b *astb) assign(target ast.Expr, annot, value ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{StmtBase: b.stmt(), Targets: []ast.Expr{target}, Annot: annot, Value: value}
}

func (b *astb) class(name string, bases []ast.Expr, body ...ast.Stmt) *ast.ClassDef {
	return &ast.ClassDef{StmtBase: b.stmt(), Name: name, NameSpan: b.sp(), Bases: bases, Body: body}
}

func (b *astb) fn(name string, params []*ast.Param, ret ast.Expr, body ...ast.Stmt) *ast.FuncDef {
	return &ast.FuncDef{
		StmtBase: b.stmt(), Name: name, NameSpan: b.sp(),
		Params: params, ReturnAnnot: ret, Body: body,
	}
}

func (b *astb) param(name string, annot ast.Expr) *ast.Param {
	return &ast.Param{Name: name, NameSpan: b.sp(), Annot: annot}
}

func (b *astb) ret(v ast.Expr) *ast.ReturnStmt {
	return &ast.ReturnStmt{StmtBase: b.stmt(), Value: v}
}

func (b *astb) exprStmt(e ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{StmtBase: b.stmt(), Expr: e}
}

func (b *astb) importNames(mod string, names ...string) *ast.ImportStmt {
	imported := make([]*ast.ImportedName, len(names))
	for i, n := range names {
		imported[i] = &ast.ImportedName{Name: n, NameSpan: b.sp()}
	}

	return &ast.ImportStmt{StmtBase: b.stmt(), ModName: mod, Names: imported}
}

func (b *astb) escape(kind int, names ...string) *ast.EscapeDecl {
	return &ast.EscapeDecl{StmtBase: b.stmt(), Kind: kind, Names: names}
}

// -----------------------------------------------------------------------------

func newTestProject() *depm.Project {
	return depm.NewProject(report.NewReporter(report.LogLevelSilent))
}

func addTestModule(proj *depm.Project, name string, imports []string, stmts ...ast.Stmt) *depm.Module {
	mod := depm.NewModule(name)
	mod.Imports = imports
	mod.AST = stmts
	proj.AddModule(mod)
	return mod
}

func globalDef(t *testing.T, mod *depm.Module, name string) sem.Definition {
	t.Helper()

	b, ok := mod.Globals.Get(name)
	require.True(t, ok, "expected `%s` to be bound in module `%s`", name, mod.Name)
	return b.Def()
}

func diagCodes(proj *depm.Project) []string {
	var codes []string
	for _, d := range proj.Reporter.Diagnostics() {
		codes = append(codes, d.Code)
	}

	return codes
}

func unresolvedMessages(proj *depm.Project) []string {
	var msgs []string
	for _, d := range proj.Reporter.Diagnostics() {
		if d.Code == report.CodeUnresolvedName {
			msgs = append(msgs, d.Message)
		}
	}

	return msgs
}

// -----------------------------------------------------------------------------

func TestForwardClassReference(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// x: C
	// class C: pass
	mod := addTestModule(proj, "m", nil,
		b.assign(b.name("x"), b.name("C"), nil),
		b.class("C", nil),
	)

	require.True(t, Bind(proj, nil, 0))
	assert.True(t, mod.Completed)

	vd, ok := globalDef(t, mod, "x").(*sem.VarDef)
	require.True(t, ok)
	assert.True(t, vd.Explicit)

	ct, ok := vd.Type.(*types.ClassType)
	require.True(t, ok)
	assert.Equal(t, "m.C", ct.FullName)
}

func TestAliasChainConverges(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// a = b
	// b = C
	// class C: pass
	mod := addTestModule(proj, "m", nil,
		b.assign(b.name("a"), nil, b.name("b")),
		b.assign(b.name("b"), nil, b.name("C")),
		b.class("C", nil),
	)

	require.True(t, Bind(proj, nil, 0))

	for _, name := range []string{"a", "b"} {
		ad, ok := globalDef(t, mod, name).(*sem.AliasDef)
		require.True(t, ok, "expected `%s` to be an alias", name)

		ct, ok := types.Unwrap(ad.Target).(*types.ClassType)
		require.True(t, ok)
		assert.Equal(t, "m.C", ct.FullName)
	}
}

func TestCyclicDefinitionErrors(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// x = y
	// y = x
	mod := addTestModule(proj, "m", nil,
		b.assign(b.name("x"), nil, b.name("y")),
		b.assign(b.name("y"), nil, b.name("x")),
	)

	assert.False(t, Bind(proj, nil, 0))

	// Every participant of the cycle reports its own diagnostic, even though
	// the participant handled first has already been replaced by an error-typed
	// variable when the second one is classified.
	unresolved := unresolvedMessages(proj)
	require.Len(t, unresolved, 2)
	assert.Contains(t, unresolved[0], "`x`")
	assert.Contains(t, unresolved[1], "`y`")

	// No placeholder may survive binding: both names end up as error-typed
	// variables.
	for _, name := range []string{"x", "y"} {
		bnd, ok := mod.Globals.Get(name)
		require.True(t, ok)
		assert.False(t, bnd.IsPlaceholder(), "`%s` is still a placeholder", name)
	}
}

func TestCycleReportsEveryParticipant(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// a = b
	// b = c
	// c = a
	mod := addTestModule(proj, "m", nil,
		b.assign(b.name("a"), nil, b.name("b")),
		b.assign(b.name("b"), nil, b.name("c")),
		b.assign(b.name("c"), nil, b.name("a")),
	)

	assert.False(t, Bind(proj, nil, 0))

	unresolved := unresolvedMessages(proj)
	require.Len(t, unresolved, 3)
	assert.Contains(t, unresolved[0], "`a`")
	assert.Contains(t, unresolved[1], "`b`")
	assert.Contains(t, unresolved[2], "`c`")

	for _, name := range []string{"a", "b", "c"} {
		bnd, ok := mod.Globals.Get(name)
		require.True(t, ok)
		assert.False(t, bnd.IsPlaceholder(), "`%s` is still a placeholder", name)

		vd, ok := bnd.Def().(*sem.VarDef)
		require.True(t, ok)

		at, ok := vd.Type.(*types.AnyType)
		require.True(t, ok)
		assert.Equal(t, types.AnyFromError, at.Source)
	}
}

func TestSelfReferentialClassMember(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// class Node:
	//     next: Node
	mod := addTestModule(proj, "m", nil,
		b.class("Node", nil,
			b.assign(b.name("next"), b.name("Node"), nil),
		),
	)

	require.True(t, Bind(proj, nil, 0))

	td, ok := globalDef(t, mod, "Node").(*sem.TypeDef)
	require.True(t, ok)
	assert.False(t, td.Members.Incomplete)

	mb, ok := td.Members.Get("next")
	require.True(t, ok)

	vd, ok := mb.Def().(*sem.VarDef)
	require.True(t, ok)

	ct, ok := types.Unwrap(vd.Type).(*types.ClassType)
	require.True(t, ok)
	assert.Equal(t, "m.Node", ct.FullName)
}

func TestFunctionBodyForwardCall(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// def f(): return g()
	// def g(): return 1
	mod := addTestModule(proj, "m", nil,
		b.fn("f", nil, nil, b.ret(b.call(b.name("g")))),
		b.fn("g", nil, nil, b.ret(b.num("1"))),
	)

	require.True(t, Bind(proj, nil, 0))
	assert.True(t, mod.Completed)

	_, ok := globalDef(t, mod, "f").(*sem.FuncDef)
	assert.True(t, ok)
}

func TestFunctionSignatureForwardReference(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// def parse(src: str) -> Tree: ...
	// class Tree: pass
	mod := addTestModule(proj, "m", nil,
		b.fn("parse",
			[]*ast.Param{b.param("src", b.name("str"))},
			b.name("Tree"),
			b.ret(b.call(b.name("Tree"))),
		),
		b.class("Tree", nil),
	)

	require.True(t, Bind(proj, nil, 0))

	fd, ok := globalDef(t, mod, "parse").(*sem.FuncDef)
	require.True(t, ok)
	require.Len(t, fd.Signature.Params, 1)
	assert.Equal(t, types.PrimString, fd.Signature.Params[0])

	ct, ok := types.Unwrap(fd.Signature.ReturnType).(*types.ClassType)
	require.True(t, ok)
	assert.Equal(t, "m.Tree", ct.FullName)
}

func TestMethodSelfAttribute(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// class Counter:
	//     def init(self): self.count = 1
	mod := addTestModule(proj, "m", nil,
		b.class("Counter", nil,
			b.fn("init", []*ast.Param{b.param("self", nil)}, nil,
				b.assign(b.dot(b.name("self"), "count"), nil, b.num("1")),
			),
		),
	)

	require.True(t, Bind(proj, nil, 0))

	td, ok := globalDef(t, mod, "Counter").(*sem.TypeDef)
	require.True(t, ok)

	mb, ok := td.Members.Get("count")
	require.True(t, ok)

	vd, ok := mb.Def().(*sem.VarDef)
	require.True(t, ok)
	assert.Equal(t, types.PrimInt, vd.Type)
}

func TestGlobalEscapeBindsModuleGlobal(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// def bump():
	//     global counter
	//     counter = 1
	mod := addTestModule(proj, "m", nil,
		b.fn("bump", nil, nil,
			b.escape(ast.EscapeGlobal, "counter"),
			b.assign(b.name("counter"), nil, b.num("1")),
		),
	)

	require.True(t, Bind(proj, nil, 0))

	bnd, ok := mod.Globals.Get("counter")
	require.True(t, ok)
	assert.Equal(t, sem.BindGlobal, bnd.Kind)

	vd, ok := bnd.Def().(*sem.VarDef)
	require.True(t, ok)
	assert.Equal(t, "m.counter", vd.FullName)
}

func TestImportAcrossModules(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	m1 := addTestModule(proj, "m1", nil,
		b.class("Config", nil),
	)
	m2 := addTestModule(proj, "m2", []string{"m1"},
		b.importNames("m1", "Config"),
		b.assign(b.name("cfg"), b.name("Config"), nil),
	)

	require.True(t, Bind(proj, nil, 0))
	assert.True(t, m1.Completed)
	assert.True(t, m2.Completed)

	vd, ok := globalDef(t, m2, "cfg").(*sem.VarDef)
	require.True(t, ok)

	ct, ok := vd.Type.(*types.ClassType)
	require.True(t, ok)
	assert.Equal(t, "m1.Config", ct.FullName)
}

func TestImportCycleConverges(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// m1 and m2 import each other; binding must still reach a fixed point.
	m1 := addTestModule(proj, "m1", []string{"m2"},
		b.importNames("m2", "B"),
		b.class("A", nil),
		b.assign(b.name("x"), b.name("B"), nil),
	)
	m2 := addTestModule(proj, "m2", []string{"m1"},
		b.importNames("m1", "A"),
		b.class("B", nil),
		b.assign(b.name("y"), b.name("A"), nil),
	)

	require.True(t, Bind(proj, nil, 0))
	assert.True(t, m1.Completed)
	assert.True(t, m2.Completed)

	xd, ok := globalDef(t, m1, "x").(*sem.VarDef)
	require.True(t, ok)
	assert.Equal(t, "m2.B", types.Unwrap(xd.Type).(*types.ClassType).FullName)

	yd, ok := globalDef(t, m2, "y").(*sem.VarDef)
	require.True(t, ok)
	assert.Equal(t, "m1.A", types.Unwrap(yd.Type).(*types.ClassType).FullName)
}

func TestMissingNameReportsUnresolved(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	addTestModule(proj, "m", nil,
		b.exprStmt(b.name("zzz")),
	)

	assert.False(t, Bind(proj, nil, 0))

	require.NotEmpty(t, proj.Reporter.Diagnostics())
	d := proj.Reporter.Diagnostics()[0]
	assert.Equal(t, report.CodeUnresolvedName, d.Code)
	assert.Contains(t, d.Message, "zzz")
}

func TestIterationCapTriggersHangGuard(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// A long alias chain resolves one link per pass; a tight cap must trip
	// the hang guard and still terminate every target.
	stmts := []ast.Stmt{
		b.assign(b.name("a1"), nil, b.name("a2")),
		b.assign(b.name("a2"), nil, b.name("a3")),
		b.assign(b.name("a3"), nil, b.name("a4")),
		b.assign(b.name("a4"), nil, b.name("a5")),
		b.assign(b.name("a5"), nil, b.name("a6")),
		b.assign(b.name("a6"), nil, b.name("a7")),
		b.assign(b.name("a7"), nil, b.name("C")),
		b.class("C", nil),
	}

	mod := addTestModule(proj, "m", nil, stmts...)

	assert.False(t, Bind(proj, nil, 4))
	assert.Contains(t, diagCodes(proj), report.CodeHangGuard)

	// Termination is unconditional: nothing stays pending and no placeholders
	// survive.
	for _, name := range mod.Globals.Names() {
		bnd, _ := mod.Globals.Get(name)
		assert.False(t, bnd.IsPlaceholder(), "`%s` is still a placeholder", name)
	}
}

func TestBindingIsIdempotentAcrossGenerousCaps(t *testing.T) {
	build := func(maxPasses int) (*depm.Project, *depm.Module) {
		b := &astb{}
		proj := newTestProject()
		mod := addTestModule(proj, "m", nil,
			b.assign(b.name("a"), nil, b.name("b")),
			b.assign(b.name("b"), nil, b.name("C")),
			b.class("C", nil),
		)
		require.True(t, Bind(proj, nil, maxPasses))
		return proj, mod
	}

	_, m1 := build(10)
	_, m2 := build(50)

	// The cap must not change the result as long as it is not hit.
	assert.Equal(t, m1.Globals.Names(), m2.Globals.Names())
}
