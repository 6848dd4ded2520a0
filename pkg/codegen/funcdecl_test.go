package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/lexer"
	"github.com/flyuxc/flyuxc/pkg/parser"
	"github.com/flyuxc/flyuxc/pkg/source"
	"github.com/flyuxc/flyuxc/pkg/varmap"
)

// buildProgram lexes and parses text with identity source/offset maps, the
// same approach pkg/parser's own tests use, since this package only needs a
// valid *ast.Program, not original-file spans.
func buildProgram(t *testing.T, text string) (*ast.Program, *varmap.Map) {
	t.Helper()

	remapped := varmap.Remap(text)

	file := source.NewFile("t.flx", []byte(text))
	normMap := file.IdentityMap()

	toks, diag := lexer.Lex(remapped.Text, remapped.OffsetMap, normMap)
	require.Nil(t, diag)

	prog, diags := parser.Parse(toks)
	require.False(t, diags.HasErrors())

	return prog, remapped.Map
}

// TestSelfReferencingClosureCompilesWithoutDiagnostics pins the fix for a
// nested closure whose body calls itself by name: lowering must
// pre-register the closure's own name before resolving captures, or the
// self-capture fails to resolve and codegen aborts with "closure captures
// undeclared identifier". The closure must be nested inside another
// function (here, main): a top-level FuncDecl is lowered by
// lowerTopLevelFunc, which never runs the capture machinery this bug lived
// in.
func TestSelfReferencingClosureCompilesWithoutDiagnostics(t *testing.T) {
	text := `main := () {
		fact := (n) { if (n <= 1) { R> 1; } R> n * fact(n - 1); };
		println(fact(5));
	};`

	prog, vm := buildProgram(t, text)

	gen := New(vm, nil)
	ir, diags := gen.Generate(prog)

	require.False(t, diags.HasErrors(), "self-referencing closure should compile cleanly: %v", diags.Items())
	require.Contains(t, ir, "update_closure_captured", "self-capture must be patched after box_function")
}
