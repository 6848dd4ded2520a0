// Package strpool implements the string-interning pool described in §5: it
// hashes strings with FNV-1a into a chained table (starting at
// initialBuckets buckets and tripling whenever the load exceeds
// loadFactorPercent) whose strings live in an arena.Arena, so repeated identifiers, object keys and string-literal
// payloads across a single compilation share one backing copy. The bucket
// design is grounded on pool.LocalHeap's hash-bucket chaining
// (github.com/consensys/go-corset pkg/util/collection/pool/local_heap.go),
// adapted from a word-pool of fixed-width values to a pool of
// variable-length interned strings.
package strpool

import "github.com/flyuxc/flyuxc/pkg/arena"

const initialBuckets = 64

// loadFactorPercent is the maximum occupancy before the table is rehashed.
const loadFactorPercent = 150

// Pool interns strings, handing back the same Go string value for repeated
// insertions of equal content.
type Pool struct {
	arena   *arena.Arena
	buckets [][]string
	count   int
}

// New constructs an empty Pool backed by the given arena.
func New(a *arena.Arena) *Pool {
	return &Pool{arena: a, buckets: make([][]string, initialBuckets)}
}

// Intern returns the pool's canonical copy of s, copying s into the arena
// and recording it the first time it is seen.
func (p *Pool) Intern(s string) string {
	h := fnv1a(s) % uint64(len(p.buckets))

	for _, existing := range p.buckets[h] {
		if existing == s {
			return existing
		}
	}

	owned := p.arena.AllocString(s)
	p.buckets[h] = append(p.buckets[h], owned)
	p.count++

	p.rehashIfOverloaded()

	return owned
}

// Size returns the number of distinct strings currently interned.
func (p *Pool) Size() int {
	return p.count
}

func (p *Pool) rehashIfOverloaded() {
	load := (100 * p.count) / len(p.buckets)
	if load <= loadFactorPercent {
		return
	}

	old := p.buckets
	p.buckets = make([][]string, len(old)*3)

	for _, bucket := range old {
		for _, s := range bucket {
			h := fnv1a(s) % uint64(len(p.buckets))
			p.buckets[h] = append(p.buckets[h], s)
		}
	}
}

// fnv1a computes the 64-bit FNV-1a hash of s.
func fnv1a(s string) uint64 {
	const (
		offsetBasis uint64 = 14695981039346656037
		prime       uint64 = 1099511628211
	)

	h := offsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}

	return h
}
