package sem

import (
	"sable/common"
	"sable/types"
)

// NewBuiltinNamespace constructs the implicit universal namespace: the set of
// names visible in every module without being imported.  Its definitions are
// installed in the given arena like any others so qualified references (eg.
// `builtins.int`) resolve uniformly.
func NewBuiltinNamespace(arena *Arena) *Namespace {
	ns := NewNamespace(common.BuiltinModName)

	// The primitive type names are aliases for the primitive types.
	for name, prim := range map[string]types.PrimType{
		"int":   types.PrimInt,
		"float": types.PrimFloat,
		"str":   types.PrimString,
		"bool":  types.PrimBool,
		"none":  types.PrimNone,
	} {
		addBuiltin(arena, ns, &AliasDef{
			DefBase: DefBase{Name: name, FullName: common.BuiltinModName + "." + name},
			Target:  prim,
		})
	}

	addBuiltin(arena, ns, &AliasDef{
		DefBase: DefBase{Name: "any", FullName: common.BuiltinModName + ".any"},
		Target:  &types.AnyType{Source: types.AnyExplicit},
	})

	// The builtin generic containers.
	for _, name := range []string{"list", "dict", "set"} {
		fullName := common.BuiltinModName + "." + name
		addBuiltin(arena, ns, &TypeDef{
			DefBase: DefBase{Name: name, FullName: fullName},
			Members: NewNamespace(fullName),
			TypeParams: []*types.TypeVarType{
				{Name: "T", FullName: fullName + ".T"},
			},
		})
	}

	// The builtin functions.  `typevar` and `record` are special-cased by the
	// classifier; the rest are ordinary dynamically-typed functions.
	for _, name := range []string{"typevar", "record", "len", "print", "repr"} {
		addBuiltin(arena, ns, &FuncDef{
			DefBase: DefBase{Name: name, FullName: common.BuiltinModName + "." + name},
			Signature: &types.FuncType{
				ReturnType: &types.AnyType{Source: types.AnyImplicit},
			},
		})
	}

	ns.Incomplete = false
	return ns
}

// addBuiltin installs a builtin definition into the universal namespace.
func addBuiltin(arena *Arena, ns *Namespace, def Definition) {
	ns.set(def.DefName(), &Binding{
		Kind:         BindGlobal,
		Entry:        arena.Put(def),
		Public:       true,
		Serializable: true,
	})
}
