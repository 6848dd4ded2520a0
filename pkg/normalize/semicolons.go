package normalize

import (
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// braceKind distinguishes a `{` that opens a code block from one that opens
// an object literal, per §4.1 step 3.
type braceKind uint8

const (
	braceObject braceKind = iota
	braceCode
)

// insertSemicolons walks the text once, classifying each `{` as a code
// block or an object literal by the character immediately preceding it, and
// rewrites newlines accordingly:
//   - outside ()/[] and inside a code block: newline -> ';' (unless the
//     previous emitted non-space char is already ';', '{' or '(', or the
//     next non-space char is '}')
//   - inside an object literal: newline -> ' '
//   - on a code block's closing '}': insert ';' first unless the last
//     emitted character is already ';' or '{'
func insertSemicolons(text string, m *source.Map) (string, *source.Map, error) {
	var (
		b       textBuilder
		stack   []braceKind
		inStr   byte
		parens  int
		bracket int
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		loc := m.At(i)

		if inStr != 0 {
			b.writeByte(c, loc)

			if c == '\\' && i+1 < len(text) {
				i++
				b.writeByte(text[i], m.At(i))
			} else if c == inStr {
				inStr = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			inStr = c
			b.writeByte(c, loc)
		case '(':
			parens++
			b.writeByte(c, loc)
		case ')':
			parens--
			b.writeByte(c, loc)
		case '[':
			bracket++
			b.writeByte(c, loc)
		case ']':
			bracket--
			b.writeByte(c, loc)
		case '{':
			stack = append(stack, classifyBrace(&b))
			b.writeByte(c, loc)
		case '}':
			if len(stack) == 0 {
				line, col := loc.Line, loc.Column

				return "", nil, &diagnostics.Diagnostic{
					Stage: diagnostics.StageNormalize, Line: line, Column: col,
					Message: "unmatched '}'",
				}
			}

			kind := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if kind == braceCode {
				if last, ok := b.lastByte(); ok && last != ';' && last != '{' {
					b.writeByte(';', synthetic(loc))
				}
			}

			b.writeByte(c, loc)
		case '\n':
			handleNewline(&b, text, i, loc, stack, parens, bracket)
		default:
			b.writeByte(c, loc)
		}
	}

	out, outMap := b.finish()

	return out, outMap, nil
}

// classifyBrace decides whether the `{` about to be written opens a code
// block or an object literal, by inspecting the last non-space character
// already emitted to the output buffer.
func classifyBrace(b *textBuilder) braceKind {
	last, ok := b.lastNonSpaceByte()
	if !ok {
		return braceCode
	}

	switch last {
	case ')', '}', ']':
		return braceCode
	case '=', ',', ':', '[', '(':
		return braceObject
	default:
		return braceCode
	}
}

// handleNewline rewrites a single newline byte according to its context.
func handleNewline(b *textBuilder, text string, i int, loc source.Location, stack []braceKind, parens, bracket int) {
	if parens > 0 || bracket > 0 {
		b.writeByte('\n', loc)
		return
	}

	if len(stack) > 0 && stack[len(stack)-1] == braceObject {
		b.writeByte(' ', synthetic(loc))
		return
	}

	last, hasLast := b.lastByte()
	if hasLast && (last == ';' || last == '{' || last == '(') {
		return
	}

	j := i + 1
	for j < len(text) && isSpaceByte(text[j]) {
		j++
	}

	if j < len(text) && text[j] == '}' {
		return
	}

	b.writeByte(';', synthetic(loc))
}
