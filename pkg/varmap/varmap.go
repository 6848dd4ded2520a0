// Package varmap implements the identifier remapper of §4.2: it rewrites
// non-ASCII (and otherwise arbitrary) source identifiers to the canonical
// `_NNNNN` form expected by the LLVM backend, while leaving reserved words,
// built-in names, object keys and `obj.prop` member names untouched.
package varmap

import "fmt"

// Kind classifies how a variable-map entry's identifier was first seen.
// The classifier only ever distinguishes Unknown from the more specific
// kinds during closure analysis (§4.8); the remapper allocates foreach
// bindings as Local and every other entry as Unknown, and leaves later
// stages free to refine them.
type Kind uint8

// Variable kinds, per §3.2.
const (
	KindUnknown Kind = iota
	KindLocal
	KindParam
	KindGlobal
)

// Entry is one variable-map record: the bidirectional association between
// a source identifier and its rewritten IR-safe form.
type Entry struct {
	Original string
	Mapped   string
	Kind     Kind
}

// Map is the ordered variable map built by the remapper. Entries are keyed
// by Original and allocated in first-use order, which determines each
// entry's numeric suffix (§3.2).
type Map struct {
	entries []Entry
	index   map[string]int
}

// New constructs an empty Map.
func New() *Map {
	return &Map{index: make(map[string]int)}
}

// Lookup returns the entry for an original identifier, if one has been
// allocated.
func (m *Map) Lookup(original string) (Entry, bool) {
	i, ok := m.index[original]
	if !ok {
		return Entry{}, false
	}

	return m.entries[i], true
}

// LookupMapped returns the entry whose Mapped name is name, if any —
// used by codegen diagnostics (§7) to recover the original variable name
// from an IR-level name.
func (m *Map) LookupMapped(name string) (Entry, bool) {
	for _, e := range m.entries {
		if e.Mapped == name {
			return e, true
		}
	}

	return Entry{}, false
}

// Allocate records a new identifier, assigning it the next `_NNNNN` name in
// allocation order. Allocating an identifier already present is a no-op
// that returns the existing entry (Original is the uniqueness key, §3.2).
func (m *Map) Allocate(original string, kind Kind) Entry {
	if e, ok := m.Lookup(original); ok {
		return e
	}

	e := Entry{Original: original, Mapped: fmt.Sprintf("_%05d", len(m.entries)), Kind: kind}
	m.index[original] = len(m.entries)
	m.entries = append(m.entries, e)

	return e
}

// Entries returns the variable map in allocation order.
func (m *Map) Entries() []Entry {
	return m.entries
}

// Len returns the number of distinct identifiers recorded.
func (m *Map) Len() int {
	return len(m.entries)
}
