package lexer

import "github.com/flyuxc/flyuxc/pkg/diagnostics"

// lexString scans a `"`- or `'`-delimited string literal and decodes its
// escape sequences, per §4.3. An unterminated string is a lexer error.
func (l *Lexer) lexString(startNorm int, startLine, startCol uint32) (Token, *diagnostics.Diagnostic) {
	quote := l.advance()
	bodyStart := l.pos

	for {
		if l.pos >= len(l.text) {
			return Token{}, errToken(diagnostics.StageLex, startLine, startCol, "unterminated string literal")
		}

		c := l.peek()

		if c == '\\' {
			l.advance()

			if l.pos >= len(l.text) {
				return Token{}, errToken(diagnostics.StageLex, startLine, startCol, "unterminated string literal")
			}

			l.advance()

			continue
		}

		if c == quote {
			break
		}

		l.advance()
	}

	body := l.text[bodyStart:l.pos]
	l.advance() // closing quote

	decoded, diag := decodeEscapes(body, startLine, startCol)
	if diag != nil {
		return Token{}, diag
	}

	tok := l.makeToken(Str, decoded, startNorm, l.pos, startLine, startCol)
	tok.LexemeLength = len(decoded)

	return tok, nil
}
