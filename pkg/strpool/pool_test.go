package strpool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/arena"
)

func TestInternReturnsSameContentAndDedupes(t *testing.T) {
	p := New(arena.New())

	a := p.Intern("hello")
	b := p.Intern("hello")

	require.Equal(t, "hello", a)
	require.Equal(t, a, b)
	require.Equal(t, 1, p.Size(), "second insertion of equal content must not grow the pool")
}

func TestInternCopiesRatherThanAliasingCallerBytes(t *testing.T) {
	p := New(arena.New())

	src := []byte("mutable")
	owned := p.Intern(string(src))

	src[0] = 'X'

	require.Equal(t, "mutable", owned)
}

func TestInternKeepsDistinctContentDistinct(t *testing.T) {
	p := New(arena.New())

	p.Intern("foo")
	p.Intern("bar")
	p.Intern("foo")

	require.Equal(t, 2, p.Size())
}

func TestInternSurvivesRehash(t *testing.T) {
	p := New(arena.New())

	for i := 0; i < initialBuckets*2; i++ {
		p.Intern(fmt.Sprintf("ident_%d", i))
	}

	require.Equal(t, initialBuckets*2, p.Size())

	// Every earlier string must still intern to equal content post-rehash.
	for i := 0; i < initialBuckets*2; i++ {
		require.Equal(t, fmt.Sprintf("ident_%d", i), p.Intern(fmt.Sprintf("ident_%d", i)))
	}

	require.Equal(t, initialBuckets*2, p.Size())
}
