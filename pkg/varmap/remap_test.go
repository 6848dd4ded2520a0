package varmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemapRewritesPlainIdentifier(t *testing.T) {
	r := Remap("myVar + 1;")

	require.Equal(t, "_00000 + 1;", r.Text)
	require.Equal(t, 1, r.Map.Len())

	e, ok := r.Map.Lookup("myVar")
	require.True(t, ok)
	require.Equal(t, "_00000", e.Mapped)
}

func TestRemapLeavesReservedAndBuiltinNamesUntouched(t *testing.T) {
	r := Remap("if (x) { println(x); }")

	require.Contains(t, r.Text, "if (")
	require.Contains(t, r.Text, "println(")
	require.Equal(t, 1, r.Map.Len(), "only x should be allocated a mapped name")
}

func TestRemapLeavesPlainPropertyAccessUntouched(t *testing.T) {
	r := Remap("p.name;")

	require.Equal(t, "_00000.name;", r.Text)

	_, ok := r.Map.Lookup("name")
	require.False(t, ok, "a property name following '.' is never added to the variable map")
}

func TestRemapLeavesChainedBuiltinMethodNameUntouched(t *testing.T) {
	r := Remap("x.>upper();")

	require.Equal(t, "_00000.>upper();", r.Text)
}

func TestRemapRewritesForeachBindingName(t *testing.T) {
	r := Remap("L>(arr:item){println(item);}")

	e, ok := r.Map.Lookup("item")
	require.True(t, ok)
	require.Contains(t, r.Text, e.Mapped+"){")
}

func TestRemapStringLiteralsAreNotScanned(t *testing.T) {
	r := Remap(`"myVar is not an identifier here";`)

	require.Equal(t, `"myVar is not an identifier here";`, r.Text)
	require.Equal(t, 0, r.Map.Len())
}

func TestRemapNormalizesUnicodeIdentifiersToOneCanonicalForm(t *testing.T) {
	// "é" is precomposed é; "é" is 'e' followed by a combining
	// acute accent. Both must collapse to the same variable-map entry so
	// that two visually-identical source identifiers aren't treated as
	// two distinct variables.
	r := Remap("é + 1; é + 2;")

	require.Equal(t, 1, r.Map.Len())
}
