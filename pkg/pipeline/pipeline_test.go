package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/source"
)

func file(text string) *source.File {
	return source.NewFile("t.flx", []byte(text))
}

func TestLexProducesTokensForSimpleAssignment(t *testing.T) {
	toks, err := Lex(file(`count := 1;`))

	require.NoError(t, err)
	require.NotEmpty(t, toks.Tokens)
	require.Equal(t, 1, toks.VarMap.Len())
}

func TestParseBuildsAProgramWithOneStatement(t *testing.T) {
	prog, vm, diags, err := Parse(file(`count := 1;`))

	require.NoError(t, err)
	require.Empty(t, diags.Items())
	require.NotNil(t, prog)
	require.Len(t, prog.Statements, 1)
	require.Equal(t, 1, vm.Len())
}

func TestGenerateEmitsLLVMModuleForSimpleProgram(t *testing.T) {
	ir, diags, err := Generate(file(`count := 1; println(count);`))

	require.NoError(t, err)
	require.False(t, diags != nil && diags.HasErrors())
	require.Contains(t, ir, "target triple")
	require.Contains(t, ir, "declare")
}

func TestGenerateInternsRepeatedStringLiterals(t *testing.T) {
	ir, diags, err := Generate(file(`println("same"); println("same");`))

	require.NoError(t, err)
	require.False(t, diags != nil && diags.HasErrors())

	require.Equal(t, 1, strings.Count(ir, `c"same\00"`), "two identical string literals should share one global constant")
}

func TestBasenameWithoutExt(t *testing.T) {
	require.Equal(t, "main", basenameWithoutExt("/tmp/foo/main.flx"))
	require.Equal(t, "main", basenameWithoutExt("main.flx"))
	require.Equal(t, "main", basenameWithoutExt("main"))
}
