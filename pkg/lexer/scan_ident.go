package lexer

import (
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/varmap"
)

// movementDigraphs maps the single-letter control-structure markers to
// their digraph kind when immediately followed by '>' (§4.3: L>, R>, T>,
// B>, N>). lexIdent would otherwise consume just the bare letter, since
// '>' does not continue an identifier.
var movementDigraphs = map[byte]Kind{
	'L': DigL, 'R': DigR, 'T': DigT, 'B': DigB, 'N': DigN,
}

func (l *Lexer) lexIdent(startNorm int, startLine, startCol uint32) (Token, *diagnostics.Diagnostic) {
	if kind, ok := movementDigraphs[l.peek()]; ok && l.peekAt(1) == '>' {
		l.advance()
		l.advance()

		lexeme := l.text[startNorm:l.pos]

		return l.makeToken(kind, lexeme, startNorm, l.pos, startLine, startCol), nil
	}

	for l.pos < len(l.text) && isIdentContByte(l.peek()) {
		l.advance()
	}

	word := l.text[startNorm:l.pos]
	kind := classifyIdent(word)

	return l.makeToken(kind, word, startNorm, l.pos, startLine, startCol), nil
}

func classifyIdent(word string) Kind {
	switch word {
	case "true", "false":
		return Bool
	case "null":
		return Null
	case "undef":
		return Undef
	}

	if typeNames[word] {
		return TypeIdent
	}

	if varmap.IsReserved(word) {
		return KwIdent
	}

	if varmap.IsBuiltin(word) {
		return BuiltinFunc
	}

	return Ident
}

func isIdentContByte(c byte) bool {
	return isIdentStartByte(c) || isDigitByte(c)
}

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
