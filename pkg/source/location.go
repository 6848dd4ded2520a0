// Package source implements the byte-indexed position maps that let every
// later pipeline stage (remapper, lexer, parser, codegen) recover original
// source coordinates for any byte it currently holds, per §3.1.
package source

// Location records where one byte of normalized text came from in the
// original source file.  Synthetic marks a byte inserted by the
// normalizer (e.g. a semicolon appended to close a code block) rather than
// copied from the original text.
type Location struct {
	Line      uint32
	Column    uint32
	Length    uint32
	Synthetic bool
}

// Loc returns the location itself. Types that embed Location anonymously
// get this for free, which lets them satisfy any interface requiring a
// Loc() method (e.g. ast.Node) without each one writing its own accessor.
func (l Location) Loc() Location { return l }

// Span is a half-open byte range [Start, End) into some text buffer.
type Span struct {
	Start int
	End   int
}

// NewSpan constructs a span, panicking if the range is inverted.
func NewSpan(start, end int) Span {
	if start > end {
		panic("source: invalid span")
	}

	return Span{Start: start, End: end}
}

// Length returns the number of bytes covered by this span.
func (s Span) Length() int {
	return s.End - s.Start
}
