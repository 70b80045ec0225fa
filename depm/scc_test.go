package depm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modWithImports(name string, imports ...string) *Module {
	mod := NewModule(name)
	mod.Imports = imports
	return mod
}

func modMap(mods ...*Module) map[string]*Module {
	m := make(map[string]*Module)
	for _, mod := range mods {
		m[mod.Name] = mod
	}

	return m
}

func componentNames(comps [][]*Module) [][]string {
	out := make([][]string, len(comps))
	for i, comp := range comps {
		for _, mod := range comp {
			out[i] = append(out[i], mod.Name)
		}
	}

	return out
}

// -----------------------------------------------------------------------------

func TestPartitionAcyclicGraph(t *testing.T) {
	// c -> b -> a: every component must appear after its dependencies.
	comps := PartitionSCCs(modMap(
		modWithImports("a"),
		modWithImports("b", "a"),
		modWithImports("c", "b"),
	))

	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, componentNames(comps))
}

func TestPartitionImportCycle(t *testing.T) {
	// a and b import each other; c depends on the cycle.
	comps := PartitionSCCs(modMap(
		modWithImports("a", "b"),
		modWithImports("b", "a"),
		modWithImports("c", "a"),
	))

	require.Len(t, comps, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, componentNames(comps)[0])
	assert.Equal(t, []string{"c"}, componentNames(comps)[1])
}

func TestPartitionIgnoresUnknownImports(t *testing.T) {
	comps := PartitionSCCs(modMap(
		modWithImports("a", "stdlib_not_loaded"),
	))

	assert.Equal(t, [][]string{{"a"}}, componentNames(comps))
}

func TestPartitionIsDeterministic(t *testing.T) {
	build := func() [][]string {
		return componentNames(PartitionSCCs(modMap(
			modWithImports("x"),
			modWithImports("y"),
			modWithImports("z"),
		)))
	}

	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
}

func TestDepMapRecordsEdges(t *testing.T) {
	dm := NewDepMap()

	dm.Record("m1.C", "m2")
	dm.Record("m1.C", "m3")
	dm.Record("m1.C", "m2") // duplicate edge

	assert.Equal(t, []string{"m2", "m3"}, dm.DependentsOf("m1.C"))
	assert.Empty(t, dm.DependentsOf("m1.D"))
}

func TestDepMapSkipsSelfAndEmptyEdges(t *testing.T) {
	dm := NewDepMap()

	dm.Record("m1", "m1")
	dm.Record("", "m1")

	assert.Empty(t, dm.Edges())
}
