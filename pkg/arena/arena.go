// Package arena implements the region allocator described in §5: O(1) bump
// allocation over geometrically-growing blocks, reset between compilations
// rather than per-stage.  It is grounded on the bump/region design of the
// pack's pool.LocalHeap (github.com/consensys/go-corset
// pkg/util/collection/pool), generalised here from a word-interning heap to
// a generic byte-region allocator that AST nodes and token buffers borrow
// space from.
package arena

// initialBlockSize is the size of the first block allocated by an Arena.
const initialBlockSize = 4096

// growthFactor is how much larger each successive block is than the last,
// giving geometric (not linear) growth.
const growthFactor = 2

// Arena is a bump allocator over a list of growing byte blocks. It is not
// safe for concurrent use — the compiler is single-threaded (§5).
type Arena struct {
	blocks   [][]byte
	current  int // index into blocks of the block currently being filled
	used     int // bytes used within blocks[current]
	nextSize int
}

// New constructs an empty Arena with one initial block.
func New() *Arena {
	a := &Arena{nextSize: initialBlockSize}
	a.blocks = [][]byte{make([]byte, initialBlockSize)}

	return a
}

// Alloc reserves n bytes from the arena and returns a zeroed slice backed by
// arena storage. The slice is valid until the next Reset.
func (a *Arena) Alloc(n int) []byte {
	block := a.blocks[a.current]

	if a.used+n > len(block) {
		a.growFor(n)
		block = a.blocks[a.current]
	}

	b := block[a.used : a.used+n : a.used+n]
	a.used += n

	return b
}

// AllocString copies s into arena-owned storage and returns it as a string.
// The string conversion makes its own copy of those bytes, so the result
// does not alias arena storage and stays valid after Reset.
func (a *Arena) AllocString(s string) string {
	buf := a.Alloc(len(s))
	copy(buf, s)

	return string(buf) //nolint:gocritic // intentional: buf is arena-owned, not reused
}

// Reset discards every allocation made since the arena was created (or last
// reset), keeping the backing blocks for reuse by the next compilation —
// per §5, "arenas are reset between compilations, not per-stage".
func (a *Arena) Reset() {
	for i := range a.blocks {
		a.blocks[i] = a.blocks[i][:cap(a.blocks[i])]
	}

	a.current = 0
	a.used = 0
}

// growFor appends a new block at least large enough to satisfy a request of
// n bytes, growing geometrically from the previous block size.
func (a *Arena) growFor(n int) {
	// Trim the block being left behind to what was handed out, so Bytes
	// never counts its unused tail; Reset restores it to full capacity.
	a.blocks[a.current] = a.blocks[a.current][:a.used]

	size := a.nextSize
	for size < n {
		size *= growthFactor
	}

	a.blocks = append(a.blocks, make([]byte, size))
	a.current = len(a.blocks) - 1
	a.used = 0
	a.nextSize = size * growthFactor
}

// Bytes reports the total number of bytes currently handed out across all
// blocks — used for diagnostics/debug logging, not by the compiler proper.
func (a *Arena) Bytes() int {
	total := 0

	for i := 0; i < a.current; i++ {
		total += len(a.blocks[i])
	}

	return total + a.used
}
