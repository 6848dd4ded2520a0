package varmap

import (
	"golang.org/x/text/unicode/norm"

	"github.com/flyuxc/flyuxc/pkg/source"
)

// Result is the output of Remap: the mapped text, the variable map built
// while scanning it, and the offset map back to normalized-text bytes
// (§3.1, §4.2).
type Result struct {
	Text      string
	Map       *Map
	OffsetMap *source.OffsetMap
}

// Remap scans normalized text and rewrites every non-reserved,
// non-builtin, non-property identifier to its `_NNNNN` form, per §4.2.
func Remap(text string) *Result {
	var (
		out     []byte
		offsets []int
		vmap    = New()
		inDbl   bool
		inSgl   bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inDbl || inSgl {
			out = append(out, c)
			offsets = append(offsets, i)

			if c == '\\' && i+1 < len(text) {
				i++
				out = append(out, text[i])
				offsets = append(offsets, i)
			} else if (inDbl && c == '"') || (inSgl && c == '\'') {
				inDbl, inSgl = false, false
			}

			continue
		}

		switch {
		case c == '"':
			inDbl = true
			out = append(out, c)
			offsets = append(offsets, i)
		case c == '\'':
			inSgl = true
			out = append(out, c)
			offsets = append(offsets, i)
		case isIdentStartByte(c):
			end := i
			for end < len(text) && isIdentContByte(text[end]) {
				end++
			}

			// Identifiers may carry multi-byte UTF-8 text (§4.2); normalize to
			// NFC so that two byte-distinct encodings of the same visible
			// identifier (e.g. a precomposed accented letter vs. the letter
			// plus a combining mark) are treated as one name.
			word := norm.NFC.String(text[i:end])
			mapped := classifyAndMap(text, i, end, word, vmap)

			for j := 0; j < len(mapped); j++ {
				out = append(out, mapped[j])
				offsets = append(offsets, i) // every byte of a rewritten identifier maps to its first original byte
			}

			i = end - 1
		default:
			out = append(out, c)
			offsets = append(offsets, i)
		}
	}

	offsetMap := source.NewOffsetMap(len(offsets))
	for i, o := range offsets {
		offsetMap.Set(i, o)
	}

	return &Result{Text: string(out), Map: vmap, OffsetMap: offsetMap}
}

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentContByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}

// classifyAndMap decides how the identifier text[start:end] should be
// rendered in the output, consulting/populating vmap as needed.
func classifyAndMap(text string, start, end int, word string, vmap *Map) string {
	switch {
	case precededByChainOp(text, start):
		// `.>method` — a uniform-call-syntax built-in method name; only
		// rewritten if it happens to already be a user variable.
		if e, ok := vmap.Lookup(word); ok {
			return e.Mapped
		}

		return word
	case precededByDot(text, start):
		// plain property access: never rewritten.
		return word
	case isForeachBinding(text, start, end):
		return vmap.Allocate(word, KindLocal).Mapped
	case looksLikeObjectKey(text, start, end):
		return word
	case IsReserved(word) || IsBuiltin(word):
		return word
	default:
		return vmap.Allocate(word, KindUnknown).Mapped
	}
}

// precededByChainOp reports whether the two bytes immediately before start
// are ".>" — the uniform-call-syntax chain operator of §4.4.
func precededByChainOp(text string, start int) bool {
	return start >= 2 && text[start-2] == '.' && text[start-1] == '>'
}

// precededByDot reports whether the byte immediately before start is '.'
// and is not itself part of ".>".
func precededByDot(text string, start int) bool {
	return start >= 1 && text[start-1] == '.' && !precededByChainOp(text, start)
}

// isForeachBinding recognises the binding name in `L>( iter : name )`,
// which — unlike a regular object key — is a declaration and must be
// rewritten (§4.2's documented exception).
func isForeachBinding(text string, start, end int) bool {
	if end >= len(text) || text[end] != ')' {
		return false
	}

	j := start - 1
	for j >= 0 && isSpaceByte(text[j]) {
		j--
	}

	if j < 0 || text[j] != ':' {
		return false
	}
	// Walk back over the iterable expression to the matching '('.
	depth := 0
	k := j - 1

	for k >= 0 {
		switch text[k] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				return k >= 2 && text[k-1] == '>' && (text[k-2] == 'L' || text[k-2] == 'R')
			}

			depth--
		}

		k--
	}

	return false
}

// looksLikeObjectKey implements the heuristic of §4.2: an identifier
// followed by ':' is treated as an object-literal key — not rewritten —
// unless an '=' appears before the next ',', ';', '}' or ')', in which case
// it looks like a typed variable definition (`name:(type)=value`) instead.
func looksLikeObjectKey(text string, start, end int) bool {
	i := end

	for i < len(text) && isSpaceByte(text[i]) {
		i++
	}

	if i >= len(text) || text[i] != ':' {
		return false
	}

	p := i + 1
	depth := 0

	for p < len(text) {
		switch text[p] {
		case '=':
			return false
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return true
			}

			depth--
		case ',', ';', '}':
			return true
		}

		p++
	}

	return true
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}
