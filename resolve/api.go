package resolve

import (
	"sable/plugin"
	"sable/report"
	"sable/sem"
	"sable/types"
)

// walkerAPI is the capability interface handed to plugin hooks.  It exposes
// exactly the operations hooks are allowed to perform and nothing of the
// walker's internals.
type walkerAPI struct {
	w *Walker
}

// api returns the walker's hook capability interface.
func (w *Walker) api() plugin.API {
	return walkerAPI{w: w}
}

func (a walkerAPI) Error(code string, span *report.TextSpan, msg string, args ...interface{}) {
	a.w.recError(code, span, msg, args...)
}

func (a walkerAPI) NamedType(fullName string, args []types.Type) types.Type {
	return &types.ClassType{FullName: fullName, TypeArgs: args}
}

func (a walkerAPI) LookupFullName(fullName string) (sem.Definition, bool) {
	if entry, ok := a.w.proj.Arena.Get(fullName); ok {
		return entry.Def, true
	}

	return nil, false
}
