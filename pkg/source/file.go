package source

import "strings"

// File represents one input source file together with a cached index of
// line-start byte offsets, so any raw byte offset in the untouched original
// text can be converted into a 1-based {line, column} pair in O(log n).
type File struct {
	Filename string
	Contents []byte
	// lineStarts[i] is the byte offset of the first byte of line i+1.
	lineStarts []int
}

// NewFile constructs a File and indexes its line starts.
func NewFile(filename string, contents []byte) *File {
	f := &File{Filename: filename, Contents: contents, lineStarts: []int{0}}

	for i, b := range contents {
		if b == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}

	return f
}

// LineColumn converts a byte offset into the original file into a 1-based
// {line, column} pair.
func (f *File) LineColumn(offset int) (line, column uint32) {
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(f.lineStarts)-1

	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	lineStart := f.lineStarts[lo]

	return uint32(lo + 1), uint32(offset-lineStart) + 1 //nolint:gosec
}

// IdentityMap builds the trivial source map for the raw, untouched text: the
// normalizer's starting point before any rewrites are replayed over it.
func (f *File) IdentityMap() *Map {
	m := NewMap(len(f.Contents))

	for i := range f.Contents {
		line, col := f.LineColumn(i)
		m.Set(i, Location{Line: line, Column: col, Length: 1})
	}

	return m
}

// LineText returns the full text of a 1-based line number, with any
// trailing carriage return / newline stripped — used when a diagnostic
// quotes the offending source line (§7).
func (f *File) LineText(line uint32) string {
	idx := int(line) - 1
	if idx < 0 || idx >= len(f.lineStarts) {
		return ""
	}

	start := f.lineStarts[idx]

	var end int
	if idx+1 < len(f.lineStarts) {
		end = f.lineStarts[idx+1]
	} else {
		end = len(f.Contents)
	}

	return strings.TrimRight(string(f.Contents[start:end]), "\r\n")
}
