package source

// Map is a per-byte array from normalized-text byte offsets to their
// original-file coordinates.  It is built once, after the normalizer has
// finished all of its rewrites, by replaying the edits (§4.1).
type Map struct {
	entries []Location
}

// NewMap constructs a Map sized for a normalized buffer of n bytes.  Every
// entry starts zeroed; the normalizer fills them in as it replays its edits.
func NewMap(n int) *Map {
	return &Map{entries: make([]Location, n)}
}

// Set records the original coordinates for a normalized byte offset.
func (m *Map) Set(normByte int, loc Location) {
	m.entries[normByte] = loc
}

// At returns the original coordinates recorded for a normalized byte
// offset. Callers are expected to stay within [0, Len).
func (m *Map) At(normByte int) Location {
	return m.entries[normByte]
}

// Len returns the number of normalized bytes this map covers.
func (m *Map) Len() int {
	return len(m.entries)
}

// OffsetMap is a per-byte array from mapped-text (post identifier-rewrite)
// byte offsets back to normalized-text byte offsets (§3.1, §4.2).  For a
// rewritten identifier of original length m replaced by n bytes, all n
// mapped bytes map to the *first* byte of the original identifier — the
// lexer recovers the full original span by scanning forward from there.
type OffsetMap struct {
	entries []int
}

// NewOffsetMap constructs an OffsetMap sized for a mapped buffer of n
// bytes.
func NewOffsetMap(n int) *OffsetMap {
	return &OffsetMap{entries: make([]int, n)}
}

// Set records the normalized-byte offset a mapped byte originated from.
func (o *OffsetMap) Set(mappedByte, normByte int) {
	o.entries[mappedByte] = normByte
}

// At returns the normalized-byte offset a mapped byte originated from.
func (o *OffsetMap) At(mappedByte int) int {
	return o.entries[mappedByte]
}

// Len returns the number of mapped bytes this map covers.
func (o *OffsetMap) Len() int {
	return len(o.entries)
}

// Resolve composes OffsetMap and Map to recover the original coordinates of
// a mapped-text byte: the testable property from §8 that
// "offset_map ∘ source_map yields the original span for every token".
func Resolve(offsets *OffsetMap, srcMap *Map, mappedByte int) Location {
	return srcMap.At(offsets.At(mappedByte))
}
