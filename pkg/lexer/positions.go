package lexer

import "github.com/flyuxc/flyuxc/pkg/source"

// resolveOrig composes the offset map and the normalized-text source map to
// recover a mapped-text token's original-file span, per §3.1/§4.3.
//
// When every byte of the mapped token resolves to the same normalized byte
// (the rewritten-identifier case, where all n mapped bytes of a `_NNNNN`
// replacement point at the first byte of the original identifier),
// OrigLength is read directly from that single source-map entry — it
// already records the original identifier's length. Otherwise the span is
// the column difference on one line, or (approximated) the sum of
// per-byte lengths when it crosses a line boundary.
func resolveOrig(offsets *source.OffsetMap, normMap *source.Map, startMapped, endMapped int) (line, col, length uint32) {
	if startMapped >= endMapped {
		if startMapped >= offsets.Len() {
			return 0, 0, 0
		}

		loc := source.Resolve(offsets, normMap, startMapped)
		return loc.Line, loc.Column, 0
	}

	first := source.Resolve(offsets, normMap, startMapped)

	sameNormByte := true
	firstNormIdx := offsets.At(startMapped)

	for i := startMapped + 1; i < endMapped; i++ {
		if offsets.At(i) != firstNormIdx {
			sameNormByte = false
			break
		}
	}

	if sameNormByte {
		return first.Line, first.Column, first.Length
	}

	lastNormIdx := offsets.At(endMapped - 1)
	last := normMap.At(lastNormIdx)

	if last.Line == first.Line {
		return first.Line, first.Column, (last.Column + last.Length) - first.Column
	}

	var total uint32

	prevIdx := -1

	for i := startMapped; i < endMapped; i++ {
		idx := offsets.At(i)
		if idx == prevIdx {
			continue
		}

		total += normMap.At(idx).Length
		prevIdx = idx
	}

	return first.Line, first.Column, total
}
