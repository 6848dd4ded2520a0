package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocReturnsDistinctNonOverlappingRegions(t *testing.T) {
	a := New()

	b1 := a.Alloc(16)
	b2 := a.Alloc(16)

	b1[0] = 'x'
	b2[0] = 'y'

	require.Equal(t, byte('x'), b1[0])
	require.Equal(t, byte('y'), b2[0])
}

func TestAllocGrowsPastInitialBlock(t *testing.T) {
	a := New()

	big := a.Alloc(initialBlockSize * 3)
	require.Len(t, big, initialBlockSize*3)

	require.Equal(t, initialBlockSize*3, a.Bytes())
}

func TestAllocStringCopiesIntoArenaStorage(t *testing.T) {
	a := New()

	src := []byte("hello")
	s := a.AllocString(string(src))

	src[0] = 'H'

	require.Equal(t, "hello", s)
}

func TestResetReclaimsSpaceWithoutFreeingBlocks(t *testing.T) {
	a := New()

	a.Alloc(initialBlockSize / 2)
	require.Equal(t, initialBlockSize/2, a.Bytes())

	a.Reset()
	require.Equal(t, 0, a.Bytes())

	// The block from before Reset is reused, not reallocated.
	again := a.Alloc(initialBlockSize / 2)
	require.Len(t, again, initialBlockSize/2)
}
