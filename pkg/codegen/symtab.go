package codegen

import "strconv"

// symbolTable is the stack-of-scopes described in §3.5: it maps a source
// identifier (already in its remapped `_NNNNN` or parameter form) to a
// stably-unique IR local name. A declaration whose name is already visible
// in an outer scope receives a uniquely renamed IR name so the two
// bindings never collide in the flat IR namespace, even though they
// shadow each other at the source level.
type symbolTable struct {
	scopes []map[string]string
	uses   map[string]int // source name -> number of IR names minted for it so far
}

func newSymbolTable() *symbolTable {
	return &symbolTable{uses: map[string]int{}}
}

func (s *symbolTable) push() {
	s.scopes = append(s.scopes, map[string]string{})
}

func (s *symbolTable) pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// declare allocates a fresh IR name for name and binds it in the innermost
// scope, shadowing any outer binding of the same source name.
func (s *symbolTable) declare(name string) string {
	ir := name
	if n := s.uses[name]; n > 0 {
		ir = uniqueIRName(name, n)
	}

	s.uses[name]++
	s.scopes[len(s.scopes)-1][name] = ir

	return ir
}

func uniqueIRName(name string, n int) string {
	return name + "." + strconv.Itoa(n)
}

// resolve looks up name from the innermost scope outward.
func (s *symbolTable) resolve(name string) (string, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if ir, ok := s.scopes[i][name]; ok {
			return ir, true
		}
	}

	return "", false
}

// declaredInCurrentScope reports whether name already has a binding in the
// innermost scope — emitting a declaration of the same name twice in one
// scope is a codegen error per §8.
func (s *symbolTable) declaredInCurrentScope(name string) bool {
	_, ok := s.scopes[len(s.scopes)-1][name]
	return ok
}
