package normalize

// filterRootLevel implements §4.1 step 5: once any top-level statement is a
// FuncDecl named "main", every top-level Expression or Assignment statement
// that is not inside that declaration (i.e. every other top-level
// statement) is deleted — the language's rule that top-level side effects
// are illegal once an explicit entry point exists. A statement's own
// interior is never touched here, since splitStatements already keeps a
// function's block as part of its single top-level statement.
func filterRootLevel(stmts []stmt) []stmt {
	if !hasMainFunc(stmts) {
		return stmts
	}

	filtered := make([]stmt, 0, len(stmts))

	for _, s := range stmts {
		if s.kind == KindExpression || s.kind == KindAssignment {
			continue
		}

		filtered = append(filtered, s)
	}

	return filtered
}

func hasMainFunc(stmts []stmt) bool {
	for _, s := range stmts {
		if s.kind == KindFuncDecl && declaredName(s.text) == "main" {
			return true
		}
	}

	return false
}

// declaredName extracts the leading identifier from a VarDecl/FuncDecl
// statement's text (its declared name).
func declaredName(s string) string {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}

	start := i
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}

	return s[start:i]
}
