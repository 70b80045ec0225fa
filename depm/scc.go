package depm

import "sable/util"

// PartitionSCCs condenses the declared import graph of the given modules into
// strongly-connected components and returns them in reverse topological
// order: every component appears after the components it depends on.  The
// driver analyzes one component at a time, so mutually importing modules are
// always bound together.
//
// Imports naming modules outside the project are ignored here; they surface
// later as unresolved imports during binding.
func PartitionSCCs(modules map[string]*Module) [][]*Module {
	t := &tarjanState{
		modules: modules,
		indices: make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}

	// Iterate in sorted order so component order is deterministic.
	for _, name := range util.OrderedKeys(modules) {
		if _, visited := t.indices[name]; !visited {
			t.strongConnect(name)
		}
	}

	return t.components
}

// tarjanState carries the bookkeeping of Tarjan's strongly-connected
// components algorithm.
type tarjanState struct {
	modules map[string]*Module

	index      int
	indices    map[string]int
	lowlink    map[string]int
	onStack    map[string]bool
	stack      []string
	components [][]*Module
}

func (t *tarjanState) strongConnect(name string) {
	t.indices[name] = t.index
	t.lowlink[name] = t.index
	t.index++
	t.stack = append(t.stack, name)
	t.onStack[name] = true

	for _, imp := range t.modules[name].Imports {
		if _, ok := t.modules[imp]; !ok {
			continue
		}

		if _, visited := t.indices[imp]; !visited {
			t.strongConnect(imp)

			if t.lowlink[imp] < t.lowlink[name] {
				t.lowlink[name] = t.lowlink[imp]
			}
		} else if t.onStack[imp] && t.indices[imp] < t.lowlink[name] {
			t.lowlink[name] = t.indices[imp]
		}
	}

	// If this module roots a component, pop the component off the stack.
	// Tarjan emits components in reverse topological order, which is exactly
	// the order the driver wants.
	if t.lowlink[name] == t.indices[name] {
		var comp []*Module

		for {
			top := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[top] = false
			comp = append(comp, t.modules[top])

			if top == name {
				break
			}
		}

		t.components = append(t.components, comp)
	}
}
