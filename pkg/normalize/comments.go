package normalize

import (
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// stripComments removes `/* ... */` and `// ...` comments from the raw
// source, never touching text inside string literals. Newlines inside
// block comments are preserved so that line numbers downstream remain
// stable, per §4.1 step 1.
func stripComments(file *source.File) (string, *source.Map, error) {
	src := file.Contents
	orig := file.IdentityMap()

	var (
		b     textBuilder
		inStr byte
	)

	for i := 0; i < len(src); i++ {
		c := src[i]
		loc := orig.At(i)

		if inStr != 0 {
			b.writeByte(c, loc)

			if c == '\\' && i+1 < len(src) {
				i++
				b.writeByte(src[i], orig.At(i))

				continue
			}

			if c == inStr {
				inStr = 0
			}

			continue
		}

		switch {
		case c == '"' || c == '\'':
			inStr = c
			b.writeByte(c, loc)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}

			i-- // re-examine the newline (or EOF) on the next loop iteration
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			j := i + 2
			closed := false

			for j+1 < len(src) {
				if src[j] == '\n' {
					b.writeByte('\n', orig.At(j))
				}

				if src[j] == '*' && src[j+1] == '/' {
					closed = true
					break
				}

				j++
			}

			if !closed {
				line, col := file.LineColumn(i)

				return "", nil, &diagnostics.Diagnostic{
					Stage: diagnostics.StageNormalize, Line: line, Column: col,
					Message: "unterminated block comment",
				}
			}

			i = j + 1
		default:
			b.writeByte(c, loc)
		}
	}

	if inStr != 0 {
		line, col := file.LineColumn(len(src) - 1)

		return "", nil, &diagnostics.Diagnostic{
			Stage: diagnostics.StageNormalize, Line: line, Column: col,
			Message: "unterminated string literal",
		}
	}

	text, m := b.finish()

	return text, m, nil
}
