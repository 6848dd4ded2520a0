package lexer

import "github.com/flyuxc/flyuxc/pkg/diagnostics"

// lexNumber scans a numeric literal with an optional fractional part and
// an optional `[eE][+-]?digits` exponent; a malformed exponent is a lexer
// error, per §4.3.
func (l *Lexer) lexNumber(startNorm int, startLine, startCol uint32) (Token, *diagnostics.Diagnostic) {
	for l.pos < len(l.text) && isDigitByte(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigitByte(l.peekAt(1)) {
		l.advance()

		for l.pos < len(l.text) && isDigitByte(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		markLine, markCol := l.line, l.col

		l.advance()

		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}

		if !isDigitByte(l.peek()) {
			return Token{}, errToken(diagnostics.StageLex, markLine, markCol, "malformed numeric exponent")
		}

		for l.pos < len(l.text) && isDigitByte(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.text[startNorm:l.pos]

	return l.makeToken(Num, lexeme, startNorm, l.pos, startLine, startCol), nil
}
