package lexer

import "github.com/flyuxc/flyuxc/pkg/diagnostics"

// digraphs lists every multi-byte operator/keyword the lexer recognises,
// longest first so e.g. ":=" is matched before a bare ":" , per §4.3.
var digraphs = []struct {
	text string
	kind Kind
}{
	{"L>", DigL}, {"R>", DigR}, {"T>", DigT}, {"B>", DigB}, {"N>", DigN},
	{".>", DigChain}, {":=", DigDeclare}, {":<", DigTypeOpen},
	{"==", Eq}, {"!=", NotEq}, {"<=", LtEq}, {">=", GtEq},
	{"&&", AndAnd}, {"||", OrOr}, {"**", Pow}, {"++", Inc}, {"--", Dec},
}

var singleChars = map[byte]Kind{
	'+': Plus, '-': Minus, '*': Star, '/': Slash, '%': Percent,
	'(': LParen, ')': RParen, '[': LBracket, ']': RBracket,
	'{': LBrace, '}': RBrace, ',': Comma, ';': Semicolon, ':': Colon,
	'=': Assign, '<': Lt, '>': Gt, '!': Bang, '&': Amp, '|': Pipe,
	'^': Caret, '?': Question, '.': Dot,
}

func (l *Lexer) lexOperator(startNorm int, startLine, startCol uint32) (Token, *diagnostics.Diagnostic) {
	for _, d := range digraphs {
		if l.hasPrefix(d.text) {
			for range len(d.text) {
				l.advance()
			}

			return l.makeToken(d.kind, d.text, startNorm, l.pos, startLine, startCol), nil
		}
	}

	c := l.peek()

	kind, ok := singleChars[c]
	if !ok {
		return Token{}, errToken(diagnostics.StageLex, startLine, startCol, "unexpected byte in input")
	}

	l.advance()

	return l.makeToken(kind, string(c), startNorm, l.pos, startLine, startCol), nil
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.text) {
		return false
	}

	return l.text[l.pos:l.pos+len(s)] == s
}
