package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileLineColumn(t *testing.T) {
	f := NewFile("t.flx", []byte("abc\ndef\nghi"))

	line, col := f.LineColumn(0)
	require.Equal(t, uint32(1), line)
	require.Equal(t, uint32(1), col)

	line, col = f.LineColumn(4)
	require.Equal(t, uint32(2), line)
	require.Equal(t, uint32(1), col)

	line, col = f.LineColumn(9)
	require.Equal(t, uint32(3), line)
	require.Equal(t, uint32(2), col)
}

func TestFileLineText(t *testing.T) {
	f := NewFile("t.flx", []byte("first\r\nsecond\nthird"))

	require.Equal(t, "first", f.LineText(1))
	require.Equal(t, "second", f.LineText(2))
	require.Equal(t, "third", f.LineText(3))
	require.Equal(t, "", f.LineText(4))
}

func TestIdentityMapTracksEveryByte(t *testing.T) {
	f := NewFile("t.flx", []byte("ab\ncd"))
	m := f.IdentityMap()

	require.Equal(t, 5, m.Len())
	require.Equal(t, uint32(1), m.At(0).Line)
	require.Equal(t, uint32(2), m.At(3).Line)
}

func TestResolveComposesOffsetAndSourceMaps(t *testing.T) {
	f := NewFile("t.flx", []byte("xy"))
	srcMap := f.IdentityMap()

	offsets := NewOffsetMap(4)
	// Simulate a rewrite that replaced the 1-byte original "y" (offset 1)
	// with a 3-byte mapped token, all pointing back to the same origin.
	offsets.Set(0, 0)
	offsets.Set(1, 1)
	offsets.Set(2, 1)
	offsets.Set(3, 1)

	loc := Resolve(offsets, srcMap, 2)
	require.Equal(t, uint32(1), loc.Line)
	require.Equal(t, uint32(2), loc.Column)
}
