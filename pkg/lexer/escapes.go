package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/flyuxc/flyuxc/pkg/diagnostics"
)

// decodeEscapes decodes the escape alphabet of §4.3
// (`\n \t \r \b \f \v \a \\ \' \" \e`, `\xHH`, `\uHHHH`, and 1-3 digit
// octals) inside a string literal body, returning the decoded bytes (which
// may contain embedded NULs) as a string, or a diagnostic for a malformed
// escape.
func decodeEscapes(body string, line, col uint32) (string, *diagnostics.Diagnostic) {
	out := make([]byte, 0, len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}

		if i+1 >= len(body) {
			return "", &diagnostics.Diagnostic{Stage: diagnostics.StageLex, Line: line, Column: col, Message: "dangling escape at end of string"}
		}

		esc := body[i+1]

		switch esc {
		case 'n':
			out = append(out, '\n')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case 'b':
			out = append(out, '\b')
			i++
		case 'f':
			out = append(out, '\f')
			i++
		case 'v':
			out = append(out, '\v')
			i++
		case 'a':
			out = append(out, '\a')
			i++
		case 'e':
			out = append(out, 0x1b)
			i++
		case '\\', '\'', '"':
			out = append(out, esc)
			i++
		case 'x':
			if i+3 >= len(body) {
				return "", &diagnostics.Diagnostic{Stage: diagnostics.StageLex, Line: line, Column: col, Message: "malformed \\x escape"}
			}

			v, err := strconv.ParseUint(body[i+2:i+4], 16, 8)
			if err != nil {
				return "", &diagnostics.Diagnostic{Stage: diagnostics.StageLex, Line: line, Column: col, Message: "malformed \\x escape"}
			}

			out = append(out, byte(v))
			i += 3
		case 'u':
			if i+5 >= len(body) {
				return "", &diagnostics.Diagnostic{Stage: diagnostics.StageLex, Line: line, Column: col, Message: "malformed \\u escape"}
			}

			v, err := strconv.ParseUint(body[i+2:i+6], 16, 32)
			if err != nil {
				return "", &diagnostics.Diagnostic{Stage: diagnostics.StageLex, Line: line, Column: col, Message: "malformed \\u escape"}
			}

			var buf [utf8.UTFMax]byte

			n := utf8.EncodeRune(buf[:], rune(v))
			out = append(out, buf[:n]...)
			i += 5
		default:
			if esc >= '0' && esc <= '7' {
				j := i + 1
				end := j

				for end < len(body) && end < j+3 && body[end] >= '0' && body[end] <= '7' {
					end++
				}

				v, _ := strconv.ParseUint(body[j:end], 8, 16)
				out = append(out, byte(v))
				i = end - 1
			} else {
				out = append(out, esc)
				i++
			}
		}
	}

	return string(out), nil
}
