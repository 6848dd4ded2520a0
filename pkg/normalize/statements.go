package normalize

import "github.com/flyuxc/flyuxc/pkg/source"

// Kind classifies a top-level statement for the root-level expression
// filtering rule in §4.1 step 5.
type Kind uint8

// Statement kinds recognised by the normalizer's splitter.
const (
	KindExpression Kind = iota
	KindVarDecl
	KindFuncDecl
	KindAssignment
)

// stmt is one top-level statement produced by splitStatements, together
// with the slice of the source map covering its bytes.
type stmt struct {
	text string
	locs []source.Location
	kind Kind
}

// splitStatements splits text on top-level ';' (insertSemicolons has
// already turned statement-ending newlines into ';'), respecting
// strings and bracket/paren/brace nesting (§4.1 step 4), then classifies
// each resulting statement.
func splitStatements(text string, m *source.Map) []stmt {
	var (
		out     []stmt
		inStr   byte
		depth   int
		start   int
		curLocs []source.Location
	)

	flush := func(end int) {
		raw := text[start:end]
		lo, hi := trimBounds(raw)

		if hi > lo {
			out = append(out, stmt{
				text: raw[lo:hi],
				locs: append([]source.Location(nil), curLocs[lo:hi]...),
				kind: classifyStatement(raw[lo:hi]),
			})
		}

		curLocs = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		curLocs = append(curLocs, m.At(i))

		if inStr != 0 {
			if c == '\\' && i+1 < len(text) {
				i++
				curLocs = append(curLocs, m.At(i))
			} else if c == inStr {
				inStr = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			inStr = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}

	flush(len(text))

	return out
}

// trimStmt trims leading/trailing whitespace bytes from a raw statement
// slice without disturbing its interior.
func trimStmt(s string) string {
	lo, hi := trimBounds(s)
	return s[lo:hi]
}

// trimBounds returns the [start, end) slice bounds of s with surrounding
// whitespace bytes excluded.
func trimBounds(s string) (int, int) {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}

	for end > start && isSpaceByte(s[end-1]) {
		end--
	}

	return start, end
}

// classifyStatement determines whether a trimmed statement is a VarDecl,
// FuncDecl, Assignment or plain Expression, per §4.1 step 4.
func classifyStatement(s string) Kind {
	if isFuncDeclStatement(s) {
		return KindFuncDecl
	}

	if hasTopLevelOperator(s, ":=") {
		return KindVarDecl
	}

	if hasTopLevelAssignOp(s) {
		return KindAssignment
	}

	return KindExpression
}

// isFuncDeclStatement recognises `name :<Type>= ( params ) { ... }` and its
// plain `name = (params){...}` sugar — a declaration whose initializer is a
// parameter list followed by a block (directly, or after a `:`-introduced
// return-type annotation) is always a function declaration (§4.4).
func isFuncDeclStatement(s string) bool {
	idx := topLevelIndex(s, "=")
	if idx < 0 {
		return false
	}

	rest := trimStmt(s[idx+1:])
	if len(rest) == 0 || rest[0] != '(' {
		return false
	}

	end := matchingParen(rest, 0)
	if end < 0 {
		return false
	}

	after := followingSignificant(rest, end+1)

	return after == '{' || after == ':'
}

func hasTopLevelAssignOp(s string) bool {
	return topLevelIndex(s, "=") >= 0 && !hasTopLevelOperator(s, "==") &&
		!hasTopLevelOperator(s, "!=") && !hasTopLevelOperator(s, "<=") && !hasTopLevelOperator(s, ">=")
}

func hasTopLevelOperator(s, op string) bool {
	return topLevelIndex(s, op) >= 0
}

// topLevelIndex finds the first occurrence of op outside strings and
// outside any bracket/paren/brace nesting.
func topLevelIndex(s, op string) int {
	var inStr byte

	depth := 0

	for i := 0; i+len(op) <= len(s); i++ {
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
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}

		if depth == 0 && inStr == 0 && s[i:i+len(op)] == op {
			return i
		}
	}

	return -1
}
