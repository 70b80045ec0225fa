package sem

// DefEntry is a stable cell in the definition arena.  Bindings hold entries,
// never definitions directly: when a placeholder definition is later swapped
// for a real one at the same key, every holder of the entry observes the
// replacement without any pointer rewriting.
type DefEntry struct {
	// The stable full name keying this entry.
	FullName string

	// The current definition stored in the cell.
	Def Definition
}

// Arena stores all definitions of a compilation keyed by their stable full
// names.  Cyclic and self-referential definition graphs are expressed through
// arena keys rather than direct references.
type Arena struct {
	cells map[string]*DefEntry
}

// NewArena creates a new empty definition arena.
func NewArena() *Arena {
	return &Arena{cells: make(map[string]*DefEntry)}
}

// Get retrieves the entry for the given full name if one exists.
func (a *Arena) Get(fullName string) (*DefEntry, bool) {
	entry, ok := a.cells[fullName]
	return entry, ok
}

// Put stores a definition under its full name, creating the cell if needed or
// swapping the definition in place if the cell already exists.  The entry is
// returned.
func (a *Arena) Put(def Definition) *DefEntry {
	if entry, ok := a.cells[def.DefFullName()]; ok {
		entry.Def = def
		return entry
	}

	entry := &DefEntry{FullName: def.DefFullName(), Def: def}
	a.cells[def.DefFullName()] = entry
	return entry
}

// Len returns the number of entries in the arena.
func (a *Arena) Len() int {
	return len(a.cells)
}
