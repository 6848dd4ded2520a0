package normalize

import "github.com/flyuxc/flyuxc/pkg/source"

// compactStatement collapses redundant whitespace and strips redundant
// outer parenthesis layers from one statement, per §4.1 step 6. Both
// transformations only ever delete bytes, never insert any, so the
// resulting location slice is simply the subsequence of locs that survived.
func compactStatement(text string, locs []source.Location) (string, []source.Location) {
	text, locs = collapseWhitespace(text, locs)

	for {
		newText, newLocs, changed := stripOneRedundantParen(text, locs)
		if !changed {
			return text, locs
		}

		text, locs = newText, newLocs
	}
}

// collapseWhitespace collapses runs of whitespace between non-identifier
// tokens down to nothing, while keeping exactly one space between two
// adjacent identifier-like tokens (so e.g. "return x" doesn't become
// "returnx").
func collapseWhitespace(s string, locs []source.Location) (string, []source.Location) {
	var (
		outText []byte
		outLocs []source.Location
		inStr   byte
	)

	i := 0
	for i < len(s) {
		c := s[i]

		if inStr != 0 {
			outText = append(outText, c)
			outLocs = append(outLocs, locs[i])

			if c == '\\' && i+1 < len(s) {
				i++
				outText = append(outText, s[i])
				outLocs = append(outLocs, locs[i])
			} else if c == inStr {
				inStr = 0
			}

			i++

			continue
		}

		if c == '"' || c == '\'' {
			inStr = c
			outText = append(outText, c)
			outLocs = append(outLocs, locs[i])
			i++

			continue
		}

		if isSpaceByte(c) {
			j := i
			for j < len(s) && isSpaceByte(s[j]) {
				j++
			}

			prevIdent := len(outText) > 0 && isIdentChar(outText[len(outText)-1])
			nextIdent := j < len(s) && isIdentChar(s[j])

			if prevIdent && nextIdent {
				outText = append(outText, ' ')
				outLocs = append(outLocs, locs[i])
			}

			i = j

			continue
		}

		outText = append(outText, c)
		outLocs = append(outLocs, locs[i])
		i++
	}

	return string(outText), outLocs
}

// stripOneRedundantParen removes a single redundant outer "()" layer, if
// one can be found, returning (newText, newLocs, true); otherwise
// (s, locs, false).
func stripOneRedundantParen(s string, locs []source.Location) (string, []source.Location, bool) {
	var inStr byte

	depth := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			inStr = c
		case '(':
			if depth == 0 {
				if text, newLocs, ok := tryStripAt(s, locs, i); ok {
					return text, newLocs, true
				}
			}

			depth++
		case ')':
			depth--
		}
	}

	return s, locs, false
}

// tryStripAt attempts to strip the parenthesis pair opening at index open,
// returning the rewritten text and locations if it is safe and beneficial
// to do so.
func tryStripAt(s string, locs []source.Location, open int) (string, []source.Location, bool) {
	closeIdx := matchingParen(s, open)
	if closeIdx < 0 {
		return s, locs, false
	}

	// Never strip a call site: '(' preceded by an identifier-terminator.
	if open > 0 && isIdentChar(s[open-1]) {
		return s, locs, false
	}

	// Never strip a function-parameter list: ')' followed (after
	// whitespace) by '{'.
	after := skipSpace(s, closeIdx+1)
	if after < len(s) && s[after] == '{' {
		return s, locs, false
	}

	inner := s[open+1 : closeIdx]
	if inner == "" {
		return s, locs, false
	}

	leftCh := precedingSignificant(s, open)
	rightCh := followingSignificant(s, closeIdx+1)

	innerPrec := minTopLevelPrecedence(inner)
	leftPrec := neighbourPrecedence(leftCh)
	rightPrec := neighbourPrecedence(rightCh)

	if innerPrec == precedenceNone || (innerPrec > leftPrec && innerPrec > rightPrec) {
		text := s[:open] + inner + s[closeIdx+1:]
		newLocs := make([]source.Location, 0, len(locs)-2)
		newLocs = append(newLocs, locs[:open]...)
		newLocs = append(newLocs, locs[open+1:closeIdx]...)
		newLocs = append(newLocs, locs[closeIdx+1:]...)

		return text, newLocs, true
	}

	return s, locs, false
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}

	return i
}

func matchingParen(s string, open int) int {
	depth := 0

	var inStr byte

	for i := open; i < len(s); i++ {
		c := s[i]

		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			inStr = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func precedingSignificant(s string, open int) byte {
	i := open - 1
	for i >= 0 && isSpaceByte(s[i]) {
		i--
	}

	if i < 0 {
		return 0
	}

	return s[i]
}

func followingSignificant(s string, from int) byte {
	i := skipSpace(s, from)
	if i >= len(s) {
		return 0
	}

	return s[i]
}

// precedence levels, low to high, mirroring the expression grammar in §4.4.
const (
	precedenceNone = 1000 // no top-level binary operator: a primary expression
	precTernary    = 0
	precOr         = 1
	precAnd        = 2
	precBitOr      = 3
	precBitXor     = 4
	precBitAnd     = 5
	precEquality   = 6
	precRelational = 7
	precAdditive   = 8
	precMultiplic  = 9
	precPower      = 10
	precBoundary   = 100 // neighbours that always bind tighter than any operator (e.g. identifiers)
)

// minTopLevelPrecedence returns the lowest-binding top-level binary
// operator found in expr, or precedenceNone if expr has no top-level
// operator (i.e. is itself a primary: a literal, identifier, or bracketed
// form).
func minTopLevelPrecedence(expr string) int {
	var inStr byte

	depth := 0
	best := precedenceNone

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			inStr = c

			continue
		case '(', '[':
			depth++

			continue
		case ')', ']':
			depth--

			continue
		}

		if depth != 0 {
			continue
		}

		if p, width, ok := operatorAt(expr, i); ok {
			if p < best {
				best = p
			}

			i += width - 1
		}
	}

	return best
}

// operatorAt reports the precedence and byte width of a binary operator
// starting at position i, if any.
func operatorAt(s string, i int) (int, int, bool) {
	two := ""
	if i+2 <= len(s) {
		two = s[i : i+2]
	}

	switch two {
	case "==", "!=":
		return precEquality, 2, true
	case "<=", ">=":
		return precRelational, 2, true
	case "&&":
		return precAnd, 2, true
	case "||":
		return precOr, 2, true
	case "**":
		return precPower, 2, true
	}

	switch s[i] {
	case '?':
		return precTernary, 1, true
	case '|':
		return precBitOr, 1, true
	case '^':
		return precBitXor, 1, true
	case '&':
		return precBitAnd, 1, true
	case '<', '>':
		return precRelational, 1, true
	case '+', '-':
		// Unary +/- at an expression boundary is not a binary operator;
		// approximate by requiring a preceding operand character.
		if i == 0 || isOperatorBoundary(s[i-1]) {
			return 0, 0, false
		}

		return precAdditive, 1, true
	case '*', '/', '%':
		return precMultiplic, 1, true
	}

	return 0, 0, false
}

func isOperatorBoundary(c byte) bool {
	switch c {
	case '(', ',', '=', '<', '>', '+', '-', '*', '/', '%', '&', '|', '^', '!', '?', ':', '[', '{':
		return true
	default:
		return isSpaceByte(c)
	}
}

// neighbourPrecedence returns the binding precedence implied by a
// character adjacent to the candidate parenthesis group. An identifier- or
// digit-like neighbour (part of a call or index expression) binds tighter
// than any operator; a zero byte (start/end of statement) binds loosest.
func neighbourPrecedence(c byte) int {
	if c == 0 {
		return precTernary - 1
	}

	if isIdentChar(c) || c == ')' || c == ']' {
		return precBoundary
	}

	if p, _, ok := operatorAt(string(c), 0); ok {
		return p
	}

	return precBoundary
}
