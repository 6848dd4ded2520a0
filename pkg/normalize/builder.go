package normalize

import "github.com/flyuxc/flyuxc/pkg/source"

// textBuilder accumulates normalized output bytes alongside one source
// Location per emitted byte, so the final source.Map can be produced in a
// single pass instead of being stitched together afterwards.
type textBuilder struct {
	buf  []byte
	locs []source.Location
}

func (b *textBuilder) writeByte(c byte, loc source.Location) {
	b.buf = append(b.buf, c)
	b.locs = append(b.locs, loc)
}

func (b *textBuilder) writeString(s string, loc source.Location) {
	for i := 0; i < len(s); i++ {
		b.writeByte(s[i], loc)
	}
}

func (b *textBuilder) len() int {
	return len(b.buf)
}

func (b *textBuilder) lastByte() (byte, bool) {
	if len(b.buf) == 0 {
		return 0, false
	}

	return b.buf[len(b.buf)-1], true
}

// lastNonSpaceByte walks backward over already-emitted bytes, skipping
// whitespace, and returns the last non-space byte written.
func (b *textBuilder) lastNonSpaceByte() (byte, bool) {
	for i := len(b.buf) - 1; i >= 0; i-- {
		if !isSpaceByte(b.buf[i]) {
			return b.buf[i], true
		}
	}

	return 0, false
}

// finish produces the final normalized text and its source map.
func (b *textBuilder) finish() (string, *source.Map) {
	m := source.NewMap(len(b.locs))
	for i, loc := range b.locs {
		m.Set(i, loc)
	}

	return string(b.buf), m
}

// synthetic returns a copy of loc marked as inserted by the normalizer,
// per §3.1: "is_synthetic = true marks characters inserted by the
// normalizer".
func synthetic(loc source.Location) source.Location {
	loc.Synthetic = true
	return loc
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
