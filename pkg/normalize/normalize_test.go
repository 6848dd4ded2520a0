package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/source"
)

func identityMap(text string) *source.Map {
	m := source.NewMap(len(text))
	for i := range text {
		m.Set(i, source.Location{Line: 1, Column: uint32(i + 1)})
	}

	return m
}

// TestObjectLiteralBraceAfterSpaceStaysObject pins the fix for a brace
// misclassification: a `{` preceded by whitespace (the common case for any
// hand-formatted object literal, e.g. "obj := {") must still classify as an
// object literal, not a code block, so its closing '}' gets no synthetic
// ';' and its interior newlines fold to spaces rather than ';'.
func TestObjectLiteralBraceAfterSpaceStaysObject(t *testing.T) {
	text := "obj := {\n  a: 1,\n  b: 2\n}"

	got, _, err := insertSemicolons(text, identityMap(text))
	require.NoError(t, err)

	require.NotContains(t, got, "2;}", "object literal body must not gain a semicolon before '}'")
	require.NotContains(t, got, ";\n", "newlines inside an object literal must fold to spaces, not ';'")
}

// TestObjectLiteralBraceAfterColonAndSpaceStaysObject covers the `key: {`
// shape, the other common hand-formatted spacing the whitespace-skip bug
// broke.
func TestObjectLiteralBraceAfterColonAndSpaceStaysObject(t *testing.T) {
	text := "obj := { inner: {\n  x: 1\n} }"

	got, _, err := insertSemicolons(text, identityMap(text))
	require.NoError(t, err)

	require.NotContains(t, got, "1;", "nested object literal body must not gain a semicolon")
}

// TestCodeBlockBraceStillGetsSemicolons is the control case: a `{` that
// closes a function header (preceded by ')') is still a code block, so a
// synthetic ';' is still inserted before its closing '}'.
func TestCodeBlockBraceStillGetsSemicolons(t *testing.T) {
	text := "fn f() {\n  x := 1\n  y := 2\n}"

	got, _, err := insertSemicolons(text, identityMap(text))
	require.NoError(t, err)

	require.Contains(t, got, "x := 1;")
	require.Contains(t, got, "y := 2;")
}

// TestClassifyBraceSkipsTrailingWhitespace exercises classifyBrace
// directly: it must look past trailing whitespace already written to the
// builder, not just at the literal last byte.
func TestClassifyBraceSkipsTrailingWhitespace(t *testing.T) {
	var b textBuilder

	loc := source.Location{Line: 1, Column: 1}
	b.writeString("obj :=", loc)
	b.writeByte(' ', loc)

	require.Equal(t, braceObject, classifyBrace(&b))
}
