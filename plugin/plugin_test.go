package plugin

import (
	"testing"

	"sable/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constTypeHook struct {
	t types.Type
}

func (h constTypeHook) AnalyzeType(*TypeAnalyzeContext) types.Type { return h.t }

type typeHookPlugin struct {
	NopPlugin

	hooks map[string]TypeAnalyzeHook
}

func (p typeHookPlugin) TypeAnalyzeHookFor(fullName string) (TypeAnalyzeHook, bool) {
	h, ok := p.hooks[fullName]
	return h, ok
}

type depPlugin struct {
	NopPlugin

	deps map[string][]string
}

func (p depPlugin) AdditionalDeps(modName string) []string {
	return p.deps[modName]
}

// -----------------------------------------------------------------------------

func TestRegistryFirstOpinionWins(t *testing.T) {
	first := typeHookPlugin{hooks: map[string]TypeAnalyzeHook{
		"m.A": constTypeHook{types.PrimInt},
	}}
	second := typeHookPlugin{hooks: map[string]TypeAnalyzeHook{
		"m.A": constTypeHook{types.PrimString},
		"m.B": constTypeHook{types.PrimBool},
	}}

	r := NewRegistry(first, second)

	hook, ok := r.TypeAnalyzeHookFor("m.A")
	require.True(t, ok)
	assert.Equal(t, types.PrimInt, hook.AnalyzeType(nil))

	hook, ok = r.TypeAnalyzeHookFor("m.B")
	require.True(t, ok)
	assert.Equal(t, types.PrimBool, hook.AnalyzeType(nil))

	_, ok = r.TypeAnalyzeHookFor("m.C")
	assert.False(t, ok)
}

func TestRegistryCollectsAdditionalDeps(t *testing.T) {
	r := NewRegistry(
		depPlugin{deps: map[string][]string{"app": {"orm"}}},
		depPlugin{deps: map[string][]string{"app": {"netlib"}}},
	)

	assert.Equal(t, []string{"orm", "netlib"}, r.AdditionalDeps("app"))
	assert.Empty(t, r.AdditionalDeps("other"))
}

func TestEmptyRegistryHasNoOpinions(t *testing.T) {
	r := NewRegistry()

	_, ok := r.TypeAnalyzeHookFor("m.A")
	assert.False(t, ok)

	_, ok = r.FunctionHookFor("m.f")
	assert.False(t, ok)

	_, ok = r.ClassDefHookFor("m.C")
	assert.False(t, ok)
}
