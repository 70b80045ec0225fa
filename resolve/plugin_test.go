package resolve

import (
	"testing"

	"sable/ast"
	"sable/plugin"
	"sable/sem"
	"sable/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constTypeHook struct {
	t types.Type
}

func (h constTypeHook) AnalyzeType(*plugin.TypeAnalyzeContext) types.Type { return h.t }

type constResultHook struct {
	t types.Type
}

func (h constResultHook) ResultType(*plugin.FunctionContext) types.Type { return h.t }

type markRecordHook struct{}

func (markRecordHook) Customize(ctx *plugin.ClassDefContext) {
	if ctx.Def.Record == nil {
		ctx.Def.Record = &types.RecordType{FullName: ctx.Def.FullName}
	}
}

// testPlugin is a table-driven hook provider for binder tests.
type testPlugin struct {
	plugin.NopPlugin

	typeHooks  map[string]plugin.TypeAnalyzeHook
	funcHooks  map[string]plugin.FunctionHook
	classHooks map[string]plugin.ClassDefHook
	deps       map[string][]string
}

func (p *testPlugin) TypeAnalyzeHookFor(fullName string) (plugin.TypeAnalyzeHook, bool) {
	h, ok := p.typeHooks[fullName]
	return h, ok
}

func (p *testPlugin) FunctionHookFor(fullName string) (plugin.FunctionHook, bool) {
	h, ok := p.funcHooks[fullName]
	return h, ok
}

func (p *testPlugin) ClassDefHookFor(fullName string) (plugin.ClassDefHook, bool) {
	h, ok := p.classHooks[fullName]
	return h, ok
}

func (p *testPlugin) AdditionalDeps(modName string) []string {
	return p.deps[modName]
}

// -----------------------------------------------------------------------------

func TestTypeAnalyzeHookOverridesResolution(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// class special: pass
	// x: special
	mod := addTestModule(proj, "m", nil,
		b.class("special", nil),
		b.assign(b.name("x"), b.name("special"), nil),
	)

	plugins := plugin.NewRegistry(&testPlugin{
		typeHooks: map[string]plugin.TypeAnalyzeHook{
			"m.special": constTypeHook{types.PrimInt},
		},
	})

	require.True(t, Bind(proj, plugins, 0))

	vd, ok := globalDef(t, mod, "x").(*sem.VarDef)
	require.True(t, ok)
	assert.Equal(t, types.PrimInt, vd.Type)
}

func TestFunctionHookRefinesCallResult(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// def make(): return 1
	// x = make()
	mod := addTestModule(proj, "m", nil,
		b.fn("make", nil, nil, b.ret(b.num("1"))),
		b.assign(b.name("x"), nil, b.call(b.name("make"))),
	)

	plugins := plugin.NewRegistry(&testPlugin{
		funcHooks: map[string]plugin.FunctionHook{
			"m.make": constResultHook{types.PrimString},
		},
	})

	require.True(t, Bind(proj, plugins, 0))

	vd, ok := globalDef(t, mod, "x").(*sem.VarDef)
	require.True(t, ok)
	assert.Equal(t, types.PrimString, vd.Type)
}

func TestClassDefHookFiresOnMatchingBase(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	// class Model: pass
	// class User(Model): pass
	mod := addTestModule(proj, "m", nil,
		b.class("Model", nil),
		b.class("User", []ast.Expr{b.name("Model")}),
	)

	plugins := plugin.NewRegistry(&testPlugin{
		classHooks: map[string]plugin.ClassDefHook{
			"m.Model": markRecordHook{},
		},
	})

	require.True(t, Bind(proj, plugins, 0))

	user, ok := globalDef(t, mod, "User").(*sem.TypeDef)
	require.True(t, ok)
	require.NotNil(t, user.Record)
	assert.Equal(t, "m.User", user.Record.FullName)

	// The hook only fires on classes deriving the matched base.
	model, ok := globalDef(t, mod, "Model").(*sem.TypeDef)
	require.True(t, ok)
	assert.Nil(t, model.Record)
}

func TestPluginDepsExtendTheImportGraph(t *testing.T) {
	b := &astb{}
	proj := newTestProject()

	addTestModule(proj, "base", nil,
		b.class("Cfg", nil),
	)

	// `app` uses `base` without declaring the import; a plugin supplies the
	// missing edge so component partitioning still orders them correctly.
	app := addTestModule(proj, "app", nil,
		b.importNames("base", "Cfg"),
	)

	plugins := plugin.NewRegistry(&testPlugin{
		deps: map[string][]string{"app": {"base"}},
	})

	require.True(t, Bind(proj, plugins, 0))
	assert.Contains(t, app.Imports, "base")

	cfg, ok := app.Globals.Get("Cfg")
	require.True(t, ok)
	assert.IsType(t, &sem.TypeDef{}, cfg.Def())
}
