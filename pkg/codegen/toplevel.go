package codegen

import "github.com/flyuxc/flyuxc/pkg/ast"

// lowerTopLevel separates top-level function declarations from ordinary
// top-level statements, pre-registers every function name so forward
// references and recursion resolve (§4.8 step 1), lowers each function
// directly (no closure machinery — a top-level function never captures),
// then synthesizes or wraps main (§4.8 last paragraph).
func (g *Generator) lowerTopLevel(prog *ast.Program) {
	var funcs []*ast.FuncDecl

	var mainFunc *ast.FuncDecl

	var mainStmts []ast.Stmt

	for _, s := range prog.Statements {
		fd, ok := s.(*ast.FuncDecl)
		if !ok {
			mainStmts = append(mainStmts, s)
			continue
		}

		irName := fd.Name
		if fd.Name == "main" {
			irName = "_flyux_main"
			mainFunc = fd
		} else {
			funcs = append(funcs, fd)
		}

		g.topLevelFuncs[fd.Name] = irName
	}

	for _, fd := range funcs {
		g.lowerTopLevelFunc(fd)
	}

	if mainFunc != nil {
		g.lowerTopLevelFunc(mainFunc)
		g.emitMainWrapper(true)

		return
	}

	g.lowerSyntheticMain(mainStmts)
	g.emitMainWrapper(false)
}

func (g *Generator) lowerTopLevelFunc(fd *ast.FuncDecl) {
	refs := &refCollector{seen: map[string]bool{}}
	refs.walkStatements(fd.Body.Statements)
	fd.UsesSelf = refs.usesSelf

	irName := g.topLevelFuncs[fd.Name]
	g.lowerNamedFunction(irName, fd.Params, nil, fd.UsesSelf, fd.Body, false)
}

// lowerSyntheticMain collects every top-level statement that is not a
// FuncDecl into a synthetic `_flyux_main` body, used when the source
// defines no `main` function of its own (§4.8).
func (g *Generator) lowerSyntheticMain(stmts []ast.Stmt) {
	g.lowerNamedFunction("_flyux_main", nil, nil, false, &ast.Block{Statements: stmts}, false)
}

// emitMainWrapper appends the `i32 @main()` entry point that calls
// `_flyux_main`, releases its result, and returns 0.
func (g *Generator) emitMainWrapper(hadExplicitMain bool) {
	_ = hadExplicitMain

	g.topLevelDefs.WriteString("define i32 @main() {\nentry:\n")
	g.topLevelDefs.WriteString("  %r = call %struct.Value* @_flyux_main()\n")
	g.topLevelDefs.WriteString("  call void @value_release(%struct.Value* %r)\n")
	g.topLevelDefs.WriteString("  ret i32 0\n")
	g.topLevelDefs.WriteString("}\n")

	g.runtimeUsed["value_release"] = true
}
