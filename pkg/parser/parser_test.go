package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/lexer"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// parseExprText lexes and parses a single expression statement, identity
// mapping offsets/positions since this package only cares about the
// resulting AST shape, not original-file spans.
func parseExprText(t *testing.T, text string) ast.Expr {
	t.Helper()

	file := source.NewFile("t.flx", []byte(text))
	normMap := file.IdentityMap()

	offsets := source.NewOffsetMap(len(text))
	for i := range text {
		offsets.Set(i, i)
	}

	toks, diag := lexer.Lex(text, offsets, normMap)
	require.Nil(t, diag)

	prog, diags := Parse(toks)
	require.False(t, diags.HasErrors())
	require.Len(t, prog.Statements, 1)

	exprStmt, ok := prog.Statements[0].(*ast.ExprStmt)
	require.True(t, ok, "expected a single expression statement")

	return exprStmt.Value
}

func binOp(t *testing.T, e ast.Expr) ast.BinaryOp {
	t.Helper()

	b, ok := e.(*ast.Binary)
	require.True(t, ok, "expected *ast.Binary, got %T", e)

	return b.Op
}

// TestBinaryPrecedenceBitwiseOrdering pins down the chosen relative
// precedence of `|`, `^` and `&` (lowest to highest, matching C), an
// ordering otherwise only implicit in the parser's call chain.
func TestBinaryPrecedenceBitwiseOrdering(t *testing.T) {
	expr := parseExprText(t, "a | b ^ c & d;")

	top, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpBitOr, top.Op)

	mid, ok := top.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpBitXor, mid.Op)

	inner, ok := mid.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpBitAnd, inner.Op)

	require.IsType(t, &ast.Identifier{}, top.Left)
	require.IsType(t, &ast.Identifier{}, mid.Left)
	require.IsType(t, &ast.Identifier{}, inner.Left)
	require.IsType(t, &ast.Identifier{}, inner.Right)
}

func TestBinaryPrecedenceLogicalAboveBitwise(t *testing.T) {
	// `&&`/`||` bind looser than any of `|`/`^`/`&` (§4.4's precedence
	// table): "a || b & c" must parse as "a || (b & c)", not "(a || b) & c".
	expr := parseExprText(t, "a || b & c;")

	top, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpOr, top.Op)
	require.Equal(t, ast.OpBitAnd, binOp(t, top.Right))
}

func TestBinaryPrecedenceArithmeticAbovePower(t *testing.T) {
	// "**" is tighter than "*" and right-associative.
	expr := parseExprText(t, "2 * 3 ** 2 ** 1;")

	top, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, top.Op)

	pow, ok := top.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpPow, pow.Op)

	rightAssoc, ok := pow.Right.(*ast.Binary)
	require.True(t, ok, "** must be right-associative")
	require.Equal(t, ast.OpPow, rightAssoc.Op)
}

func TestTernaryIsLowestPrecedence(t *testing.T) {
	expr := parseExprText(t, "a || b ? c : d;")

	tern, ok := expr.(*ast.Ternary)
	require.True(t, ok)
	require.Equal(t, ast.OpOr, binOp(t, tern.Cond))
}

func TestParserRecoversAndReportsEveryError(t *testing.T) {
	file := source.NewFile("t.flx", []byte("x := ; y := ;"))
	normMap := file.IdentityMap()

	text := "x := ; y := ;"
	offsets := source.NewOffsetMap(len(text))
	for i := range text {
		offsets.Set(i, i)
	}

	toks, diag := lexer.Lex(text, offsets, normMap)
	require.Nil(t, diag)

	_, diags := Parse(toks)
	require.True(t, diags.HasErrors())
	require.GreaterOrEqual(t, len(diags.Items()), 2, "parser should resync and report both malformed declarations")
}
