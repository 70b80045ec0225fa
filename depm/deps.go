package depm

import (
	"sort"

	"sable/util"
)

// DepMap records cross-target dependency edges discovered during resolution:
// which targets must be re-analyzed when a given name changes.  It is part of
// the binder's output, consumed by an external incremental-recompilation
// subsystem.
type DepMap struct {
	// edges maps a trigger (the full name of a definition or module) to the
	// set of target full names that depend on it.
	edges map[string]map[string]struct{}
}

// NewDepMap creates a new empty dependency map.
func NewDepMap() *DepMap {
	return &DepMap{edges: make(map[string]map[string]struct{})}
}

// Record records that the given target depends on the given trigger name.
func (dm *DepMap) Record(trigger, target string) {
	if trigger == "" || trigger == target {
		return
	}

	if _, ok := dm.edges[trigger]; !ok {
		dm.edges[trigger] = make(map[string]struct{})
	}

	dm.edges[trigger][target] = struct{}{}
}

// Edges returns the recorded dependency edges as a deterministic map of
// sorted target lists keyed by trigger.
func (dm *DepMap) Edges() map[string][]string {
	out := make(map[string][]string, len(dm.edges))
	for _, trigger := range util.OrderedKeys(dm.edges) {
		targets := make([]string, 0, len(dm.edges[trigger]))
		for target := range dm.edges[trigger] {
			targets = append(targets, target)
		}

		sort.Strings(targets)
		out[trigger] = targets
	}

	return out
}

// DependentsOf returns the sorted list of targets depending on a trigger.
func (dm *DepMap) DependentsOf(trigger string) []string {
	targets := make([]string, 0, len(dm.edges[trigger]))
	for target := range dm.edges[trigger] {
		targets = append(targets, target)
	}

	sort.Strings(targets)
	return targets
}
