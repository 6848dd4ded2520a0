package varmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateAssignsSequentialNames(t *testing.T) {
	m := New()

	a := m.Allocate("count", KindUnknown)
	b := m.Allocate("total", KindUnknown)

	require.Equal(t, "_00000", a.Mapped)
	require.Equal(t, "_00001", b.Mapped)
}

func TestAllocateIsIdempotentPerOriginalName(t *testing.T) {
	m := New()

	first := m.Allocate("x", KindLocal)
	second := m.Allocate("x", KindParam)

	require.Equal(t, first, second, "re-allocating an already-seen name returns the original entry unchanged")
	require.Equal(t, 1, m.Len())
}

func TestLookupMappedRecoversOriginalName(t *testing.T) {
	m := New()
	e := m.Allocate("résumé", KindUnknown)

	found, ok := m.LookupMapped(e.Mapped)
	require.True(t, ok)
	require.Equal(t, "résumé", found.Original)
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	m := New()

	_, ok := m.Lookup("nope")
	require.False(t, ok)
}

func TestReservedAndBuiltinClassification(t *testing.T) {
	require.True(t, IsReserved("if"))
	require.True(t, IsReserved("self"))
	require.False(t, IsReserved("counter"))

	require.True(t, IsBuiltin("println"))
	require.True(t, IsBuiltin("toJSON"))
	require.False(t, IsBuiltin("if"))
}
