package runtimeabi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignaturesContainsCoreBoxingEntryPoints(t *testing.T) {
	for _, name := range []string{"box_number", "box_string_with_length", "box_bool", "value_add", "value_release"} {
		_, ok := Signatures[name]
		require.True(t, ok, "expected runtime signature for %q", name)
	}
}

func TestSignatureParamsMatchValueType(t *testing.T) {
	sig, ok := Signatures["value_add"]
	require.True(t, ok)
	require.Equal(t, []string{ValueType, ValueType}, sig.Params)
	require.Equal(t, ValueType, sig.Return)
}

func TestErrorTypeNameDistinguishesTypeErrors(t *testing.T) {
	require.Equal(t, "TypeError", ErrorTypeName(StatusTypeError))
	require.Equal(t, "Error", ErrorTypeName(StatusError))
	require.Equal(t, "Error", ErrorTypeName(StatusOK))
}
