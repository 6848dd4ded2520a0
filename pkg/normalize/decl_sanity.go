package normalize

import (
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// checkDeclarations scans comment-stripped text for `:=` and verifies the
// token immediately to its left is a valid identifier, per §4.1 step 2. This
// is the only normalizer stage that rejects a program for lexical reasons
// other than an unterminated string/comment.
func checkDeclarations(text string, m *source.Map) *diagnostics.Diagnostic {
	var inStr byte

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}

			continue
		}

		if c == '"' || c == '\'' {
			inStr = c
			continue
		}

		if c == ':' && i+1 < len(text) && text[i+1] == '=' {
			if diag := checkAssignLHS(text, m, i); diag != nil {
				return diag
			}

			i++ // skip the '='
		}
	}

	return nil
}

// checkAssignLHS inspects the token ending just before the `:=` at
// position eqIdx and reports a diagnostic if it is not a valid identifier.
func checkAssignLHS(text string, m *source.Map, eqIdx int) *diagnostics.Diagnostic {
	end := eqIdx

	for end > 0 && isSpaceByte(text[end-1]) {
		end--
	}

	if end == 0 {
		return declError(m, eqIdx, "missing left-hand side")
	}

	// String literal: the token ends with a closing quote.
	if text[end-1] == '"' || text[end-1] == '\'' {
		return declError(m, eqIdx, "left-hand side of ':=' is a string literal")
	}

	start := end

	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}

	if start == end {
		return declError(m, eqIdx, "invalid declaration: left-hand side of ':=' is not an identifier")
	}

	word := text[start:end]

	switch {
	case isNumberWord(word):
		return declError(m, eqIdx, "left-hand side of ':=' is a number literal")
	case word == "true" || word == "false":
		return declError(m, eqIdx, "left-hand side of ':=' is a boolean literal")
	case !isIdentStart(word[0]):
		return declError(m, eqIdx, "invalid declaration: left-hand side of ':=' is not a valid identifier")
	}

	return nil
}

func isNumberWord(w string) bool {
	if w == "" {
		return false
	}

	for i := 0; i < len(w); i++ {
		if !isDigit(w[i]) && w[i] != '.' {
			return false
		}
	}

	return isDigit(w[0])
}

func declError(m *source.Map, byteIdx int, msg string) *diagnostics.Diagnostic {
	loc := m.At(byteIdx)

	return &diagnostics.Diagnostic{
		Stage: diagnostics.StageNormalize, Line: loc.Line, Column: loc.Column,
		Message: "invalid declaration: " + msgSuffix(msg),
	}
}

// msgSuffix strips a leading "invalid declaration: " already present in
// some call sites so the prefix is never duplicated.
func msgSuffix(msg string) string {
	const prefix = "invalid declaration: "
	if len(msg) >= len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}

	return msg
}
