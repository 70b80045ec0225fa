package sem

import (
	"testing"

	"sable/common"
	"sable/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceHiddenBindings(t *testing.T) {
	ns := NewNamespace("m")

	r := NewRegistry(NewArena())
	require.True(t, r.AddBinding(ns, "x", newBinding(BindGlobal), varDef("x", span(1))))

	b, ok := ns.Get("x")
	require.True(t, ok)

	b.Hidden = true

	_, ok = ns.Get("x")
	assert.False(t, ok)

	hb, ok := ns.GetAny("x")
	require.True(t, ok)
	assert.Same(t, b, hb)
}

func TestNamespaceMissingSetIsPerPass(t *testing.T) {
	ns := NewNamespace("m")

	ns.MarkMissing("x")
	assert.True(t, ns.MissedThisPass("x"))
	assert.False(t, ns.MissedThisPass("y"))

	ns.BeginPass()
	assert.False(t, ns.MissedThisPass("x"))
}

func TestNamespaceNamesAreSorted(t *testing.T) {
	ns := NewNamespace("m")
	r := NewRegistry(NewArena())

	for i, name := range []string{"zeta", "alpha", "mid"} {
		require.True(t, r.AddBinding(ns, name, newBinding(BindGlobal), varDef(name, span(i+1))))
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ns.Names())
}

func TestNamespaceSnapshotRestore(t *testing.T) {
	ns := NewNamespace("m.f")
	r := NewRegistry(NewArena())

	require.True(t, r.AddBinding(ns, "x", newBinding(BindLocal), varDef("x", span(1))))
	snap := ns.Snapshot()

	require.True(t, r.AddBinding(ns, "y", newBinding(BindLocal), varDef("y", span(2))))
	require.Len(t, ns.Names(), 2)

	ns.Restore(snap)
	assert.Equal(t, []string{"x"}, ns.Names())

	// The snapshot is independent of later mutation.
	require.True(t, r.AddBinding(ns, "z", newBinding(BindLocal), varDef("z", span(3))))
	assert.NotContains(t, snap, "z")
}

func TestBuiltinNamespace(t *testing.T) {
	arena := NewArena()
	ns := NewBuiltinNamespace(arena)

	assert.False(t, ns.Incomplete)

	intB, ok := ns.Get("int")
	require.True(t, ok)
	ad, ok := intB.Def().(*AliasDef)
	require.True(t, ok)
	assert.Equal(t, types.PrimInt, ad.Target)

	listB, ok := ns.Get("list")
	require.True(t, ok)
	td, ok := listB.Def().(*TypeDef)
	require.True(t, ok)
	assert.Len(t, td.TypeParams, 1)

	// Builtin definitions are reachable through the arena by full name.
	entry, ok := arena.Get(common.BuiltinModName + ".record")
	require.True(t, ok)
	assert.IsType(t, &FuncDef{}, entry.Def)
}

func TestIsTypeLike(t *testing.T) {
	assert.True(t, IsTypeLike(&TypeDef{}))
	assert.True(t, IsTypeLike(&AliasDef{}))
	assert.True(t, IsTypeLike(&TypeVarDef{}))
	assert.True(t, IsTypeLike(&Placeholder{BecomesTypeLike: true}))
	assert.False(t, IsTypeLike(&Placeholder{}))
	assert.False(t, IsTypeLike(&VarDef{}))
	assert.False(t, IsTypeLike(&FuncDef{}))
	assert.False(t, IsTypeLike(&ModuleRef{}))
}
