package normalize

import (
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// Result is the output of Normalize: the normalized text together with the
// byte-indexed map back to original source coordinates (§3.1, §4.1).
type Result struct {
	Text string
	Map  *source.Map
}

// Normalize runs the five normalizer stages described in §4.1, in order:
// comment stripping, declaration sanity checking, newline-to-semicolon
// insertion, statement splitting with root-level expression filtering, and
// finally per-statement whitespace/parenthesis compaction.
func Normalize(file *source.File) (*Result, error) {
	stripped, m1, err := stripComments(file)
	if err != nil {
		return nil, err
	}

	if diag := checkDeclarations(stripped, m1); diag != nil {
		return nil, diag
	}

	withSemis, m2, err := insertSemicolons(stripped, m1)
	if err != nil {
		return nil, err
	}

	stmts := splitStatements(withSemis, m2)
	stmts = filterRootLevel(stmts)

	var out textBuilder

	for i, s := range stmts {
		text, locs := compactStatement(s.text, s.locs)

		for j := 0; j < len(text); j++ {
			out.writeByte(text[j], locs[j])
		}

		if i < len(stmts)-1 {
			loc := source.Location{}
			if len(locs) > 0 {
				loc = locs[len(locs)-1]
			}

			out.writeByte(';', synthetic(loc))
		}
	}

	text, finalMap := out.finish()

	return &Result{Text: text, Map: finalMap}, nil
}

// diagnosticFromLocation builds a normalizer-stage Diagnostic anchored at
// loc. It is unexported and nothing in this package calls it.
func diagnosticFromLocation(loc source.Location, msg string) *diagnostics.Diagnostic {
	return &diagnostics.Diagnostic{
		Stage: diagnostics.StageNormalize, Line: loc.Line, Column: loc.Column, Length: loc.Length,
		Message: msg,
	}
}
