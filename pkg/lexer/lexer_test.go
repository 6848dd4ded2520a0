package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/source"
)

// lexPlain lexes text as if it had passed through the normalizer and
// remapper unchanged, building identity maps so OrigLine/OrigColumn line up
// with the raw input — enough to exercise the lexer in isolation.
func lexPlain(t *testing.T, text string) []Token {
	t.Helper()

	file := source.NewFile("t.flx", []byte(text))
	normMap := file.IdentityMap()

	offsets := source.NewOffsetMap(len(text))
	for i := range text {
		offsets.Set(i, i)
	}

	toks, diag := Lex(text, offsets, normMap)
	require.Nil(t, diag)

	return toks
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}

	return ks
}

func TestLexIdentifierAndKeywordClassification(t *testing.T) {
	toks := lexPlain(t, "if println myVar num")

	require.Equal(t, []Kind{KwIdent, BuiltinFunc, Ident, TypeIdent, EOF}, kinds(toks))
}

func TestLexMovementDigraphs(t *testing.T) {
	toks := lexPlain(t, "L> R> T> B> N>")

	require.Equal(t, []Kind{DigL, DigR, DigT, DigB, DigN, EOF}, kinds(toks))
}

func TestLexOperatorsPreferLongestMatch(t *testing.T) {
	toks := lexPlain(t, ":= :< == != <= >= && || ** ++ --")

	require.Equal(t, []Kind{
		DigDeclare, DigTypeOpen, Eq, NotEq, LtEq, GtEq, AndAnd, OrOr, Pow, Inc, Dec, EOF,
	}, kinds(toks))
}

func TestLexNumberLiteralWithExponent(t *testing.T) {
	toks := lexPlain(t, "1.5e-3")

	require.Equal(t, []Kind{Num, EOF}, kinds(toks))
	require.Equal(t, "1.5e-3", toks[0].Lexeme)
}

func TestLexMalformedExponentIsAnError(t *testing.T) {
	file := source.NewFile("t.flx", []byte("1e"))
	normMap := file.IdentityMap()
	offsets := source.NewOffsetMap(2)
	offsets.Set(0, 0)
	offsets.Set(1, 1)

	_, diag := Lex("1e", offsets, normMap)
	require.NotNil(t, diag)
}

func TestLexStringLiteralDecodesEscapes(t *testing.T) {
	toks := lexPlain(t, `"a\nb"`)

	require.Equal(t, Str, toks[0].Kind)
	require.Equal(t, "a\nb", toks[0].Lexeme)
}

func TestLexUnterminatedStringIsAnError(t *testing.T) {
	file := source.NewFile("t.flx", []byte(`"abc`))
	normMap := file.IdentityMap()
	offsets := source.NewOffsetMap(4)
	for i := 0; i < 4; i++ {
		offsets.Set(i, i)
	}

	_, diag := Lex(`"abc`, offsets, normMap)
	require.NotNil(t, diag)
}

func TestKindStringRendersKnownKinds(t *testing.T) {
	require.Equal(t, "DigDeclare", DigDeclare.String())
	require.Equal(t, "EOF", EOF.String())
}
