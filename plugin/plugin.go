// Package plugin defines the binder's extension surface.  Hooks are
// pre-registered opaque strategy values queried by fully-qualified name at
// fixed extension points; they act through a narrow capability interface and
// never re-enter the resolver's internals.
package plugin

import (
	"sable/report"
	"sable/sem"
	"sable/types"
)

// API is the capability interface handed to every hook invocation.  It is the
// only way a hook can act on the compilation.
type API interface {
	// Error reports an error diagnostic at the given span.
	Error(code string, span *report.TextSpan, msg string, args ...interface{})

	// NamedType constructs an instance type of the class with the given full
	// name and type arguments.
	NamedType(fullName string, args []types.Type) types.Type

	// LookupFullName looks up a definition by its stable full name.
	LookupFullName(fullName string) (sem.Definition, bool)
}

// TypeAnalyzeContext is the local context passed to a type-analyze hook.
type TypeAnalyzeContext struct {
	// The unresolved reference being analyzed.
	Ref *types.UnresolvedType

	// The capability interface.
	API API
}

// TypeAnalyzeHook customizes how a type reference with a matching full name
// is resolved.
type TypeAnalyzeHook interface {
	// AnalyzeType returns the type the reference resolves to.
	AnalyzeType(ctx *TypeAnalyzeContext) types.Type
}

// FunctionContext is the local context passed to a function hook.
type FunctionContext struct {
	// The full name of the called function.
	FullName string

	// The span of the call.
	CallSpan *report.TextSpan

	// The capability interface.
	API API
}

// FunctionHook refines the result type of calls to a function with a matching
// full name.
type FunctionHook interface {
	// ResultType returns the refined result type of the call.
	ResultType(ctx *FunctionContext) types.Type
}

// ClassDefContext is the local context passed to a class-definition hook.
type ClassDefContext struct {
	// The class definition being finalized.
	Def *sem.TypeDef

	// The capability interface.
	API API
}

// ClassDefHook customizes a class definition whose metaclass, decorator, or
// base matches the hook's full name.
type ClassDefHook interface {
	// Customize mutates the class definition in place.
	Customize(ctx *ClassDefContext)
}

// -----------------------------------------------------------------------------

// Plugin is a single provider of hooks.  Every query either returns a hook or
// reports "no opinion" via the boolean.
type Plugin interface {
	// TypeAnalyzeHookFor returns the type-analyze hook for a full name.
	TypeAnalyzeHookFor(fullName string) (TypeAnalyzeHook, bool)

	// FunctionHookFor returns the function hook for a full name.
	FunctionHookFor(fullName string) (FunctionHook, bool)

	// ClassDefHookFor returns the class-definition hook for a full name.
	ClassDefHookFor(fullName string) (ClassDefHook, bool)

	// AdditionalDeps returns extra module names the given module should be
	// considered to depend on.
	AdditionalDeps(modName string) []string
}

// NopPlugin is a plugin with no opinions.  Plugins that only implement some
// hooks embed it.
type NopPlugin struct{}

func (NopPlugin) TypeAnalyzeHookFor(string) (TypeAnalyzeHook, bool) { return nil, false }
func (NopPlugin) FunctionHookFor(string) (FunctionHook, bool)       { return nil, false }
func (NopPlugin) ClassDefHookFor(string) (ClassDefHook, bool)       { return nil, false }
func (NopPlugin) AdditionalDeps(string) []string                    { return nil }

// -----------------------------------------------------------------------------

// Registry chains a list of plugins: for every query the first plugin with an
// opinion wins.
type Registry struct {
	plugins []Plugin
}

// NewRegistry creates a registry over the given plugins in priority order.
func NewRegistry(plugins ...Plugin) *Registry {
	return &Registry{plugins: plugins}
}

// TypeAnalyzeHookFor returns the first registered type-analyze hook for a
// full name.
func (r *Registry) TypeAnalyzeHookFor(fullName string) (TypeAnalyzeHook, bool) {
	for _, p := range r.plugins {
		if hook, ok := p.TypeAnalyzeHookFor(fullName); ok {
			return hook, true
		}
	}

	return nil, false
}

// FunctionHookFor returns the first registered function hook for a full name.
func (r *Registry) FunctionHookFor(fullName string) (FunctionHook, bool) {
	for _, p := range r.plugins {
		if hook, ok := p.FunctionHookFor(fullName); ok {
			return hook, true
		}
	}

	return nil, false
}

// ClassDefHookFor returns the first registered class-definition hook for a
// full name.
func (r *Registry) ClassDefHookFor(fullName string) (ClassDefHook, bool) {
	for _, p := range r.plugins {
		if hook, ok := p.ClassDefHookFor(fullName); ok {
			return hook, true
		}
	}

	return nil, false
}

// AdditionalDeps collects the extra dependencies of a module across all
// registered plugins.
func (r *Registry) AdditionalDeps(modName string) []string {
	var deps []string
	for _, p := range r.plugins {
		deps = append(deps, p.AdditionalDeps(modName)...)
	}

	return deps
}
