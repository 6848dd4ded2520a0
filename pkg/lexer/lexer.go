package lexer

import (
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/source"
	"github.com/flyuxc/flyuxc/pkg/varmap"
)

var typeNames = map[string]bool{"num": true, "str": true, "bl": true, "obj": true, "func": true}

// Lexer scans mapped text into a token stream, resolving each token's
// original-file span by composing the offset map (mapped→normalized) with
// the normalized source map (normalized→original), per §4.3.
type Lexer struct {
	text    string
	offsets *source.OffsetMap
	normMap *source.Map

	pos  int
	line uint32
	col  uint32
}

// New constructs a Lexer over mapped text, given the offset map produced by
// the identifier remapper and the source map produced by the normalizer.
func New(text string, offsets *source.OffsetMap, normMap *source.Map) *Lexer {
	return &Lexer{text: text, offsets: offsets, normMap: normMap, line: 1, col: 1}
}

// Lex scans the entire input and returns the resulting token stream, or the
// first lexical error encountered (§4.3, §7).
func Lex(text string, offsets *source.OffsetMap, normMap *source.Map) ([]Token, *diagnostics.Diagnostic) {
	lx := New(text, offsets, normMap)

	var tokens []Token

	for {
		tok, diag := lx.next()
		if diag != nil {
			return nil, diag
		}

		tokens = append(tokens, tok)

		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) advance() byte {
	c := l.text[l.pos]
	l.pos++

	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return c
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.text) {
		return 0
	}

	return l.text[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.text) {
		return 0
	}

	return l.text[l.pos+off]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.text) {
		c := l.peek()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}

		break
	}
}

// next scans and returns the next token.
func (l *Lexer) next() (Token, *diagnostics.Diagnostic) {
	l.skipSpace()

	startNorm, startLine, startCol := l.pos, l.line, l.col

	if l.pos >= len(l.text) {
		return l.makeToken(EOF, "", startNorm, startNorm, startLine, startCol), nil
	}

	c := l.peek()

	switch {
	case isIdentStartByte(c):
		return l.lexIdent(startNorm, startLine, startCol)
	case isDigitByte(c):
		return l.lexNumber(startNorm, startLine, startCol)
	case c == '"' || c == '\'':
		return l.lexString(startNorm, startLine, startCol)
	default:
		return l.lexOperator(startNorm, startLine, startCol)
	}
}

func (l *Lexer) makeToken(kind Kind, lexeme string, startMapped, endMapped int, normLine, normCol uint32) Token {
	origLine, origCol, origLen := resolveOrig(l.offsets, l.normMap, startMapped, endMapped)

	return Token{
		Kind: kind, Lexeme: lexeme, LexemeLength: len(lexeme),
		NormLine: normLine, NormColumn: normCol,
		OrigLine: origLine, OrigColumn: origCol, OrigLength: origLen,
	}
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func errToken(stage diagnostics.Stage, line, col uint32, msg string) *diagnostics.Diagnostic {
	return &diagnostics.Diagnostic{Stage: stage, Line: line, Column: col, Message: msg}
}
