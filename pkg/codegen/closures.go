package codegen

import (
	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/varmap"
)

// reservedAndBuiltin merges varmap's reserved-word and built-in tables so
// closure analysis can subtract both with one lookup (§4.8).
var reservedAndBuiltin = buildReservedAndBuiltin()

func buildReservedAndBuiltin() map[string]bool {
	m := map[string]bool{}

	for k := range varmap.ReservedWords {
		m[k] = true
	}

	for k := range varmap.BuiltinNames {
		m[k] = true
	}

	return m
}

// collectCaptures implements the closure analysis of §4.8: walk fn's body
// collecting every identifier reference, then subtract parameters, names
// declared anywhere in the body, built-ins, reserved words, and known
// top-level function names. What remains is the ordered (first-reference)
// capture list. usesSelf reports whether the body references `self`.
func collectCaptures(fn *ast.FuncDecl, topLevel map[string]string) (captures []string, usesSelf bool) {
	refs := &refCollector{seen: map[string]bool{}}
	locals := map[string]bool{}

	for _, p := range fn.Params {
		locals[p] = true
	}

	collectLocals(fn.Body.Statements, locals)
	refs.walkStatements(fn.Body.Statements)

	for _, name := range refs.order {
		if locals[name] {
			continue
		}

		if isReservedOrBuiltin(name) {
			continue
		}

		if _, ok := topLevel[name]; ok {
			continue
		}

		captures = append(captures, name)
	}

	return captures, refs.usesSelf
}

func isReservedOrBuiltin(name string) bool {
	return reservedAndBuiltin[name]
}

// collectLocals gathers every name a VarDecl, nested FuncDecl, foreach
// binding, for-loop init, or catch clause declares anywhere within stmts,
// at any nesting depth — these are locals of the enclosing function body,
// never captures, regardless of how deeply nested their block is.
func collectLocals(stmts []ast.Stmt, out map[string]bool) {
	for _, s := range stmts {
		collectLocalsStmt(s, out)
	}
}

func collectLocalsStmt(s ast.Stmt, out map[string]bool) {
	switch n := s.(type) {
	case *ast.VarDecl:
		out[n.Name] = true
	case *ast.FuncDecl:
		out[n.Name] = true

		for _, p := range n.Params {
			out[p] = true
		}

		collectLocals(n.Body.Statements, out)
	case *ast.If:
		for _, b := range n.Blocks {
			collectLocals(b.Statements, out)
		}

		if n.Else != nil {
			collectLocals(n.Else.Statements, out)
		}
	case *ast.Loop:
		if n.Binding != "" {
			out[n.Binding] = true
		}

		if n.Init != nil {
			collectLocalsStmt(n.Init, out)
		}

		collectLocals(n.Body.Statements, out)
	case *ast.Try:
		if n.HasCatch {
			out[n.CatchName] = true
			collectLocals(n.CatchBody.Statements, out)
		}

		collectLocals(n.Body.Statements, out)

		if n.FinallyBody != nil {
			collectLocals(n.FinallyBody.Statements, out)
		}
	case *ast.Block:
		collectLocals(n.Statements, out)
	}
}

// refCollector walks a body recording every distinct Identifier name
// referenced, in first-seen order, plus whether `self` is referenced.
type refCollector struct {
	order    []string
	seen     map[string]bool
	usesSelf bool
}

func (r *refCollector) add(name string) {
	if r.seen[name] {
		return
	}

	r.seen[name] = true
	r.order = append(r.order, name)
}

func (r *refCollector) walkStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.walkStmt(s)
	}
}

func (r *refCollector) walkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Initializer != nil {
			r.walkExpr(n.Initializer)
		}
	case *ast.FuncDecl:
		// A nested function's own body is analysed separately when it is
		// lowered; references inside it still count as references of the
		// enclosing function (a grandchild capturing an outer binding
		// still makes that binding a capture here too), so walk it.
		r.walkStatements(n.Body.Statements)
	case *ast.ExprStmt:
		r.walkExpr(n.Value)
	case *ast.AssignStmt:
		r.walkExpr(n.Target)
		r.walkExpr(n.Value)
	case *ast.If:
		for _, c := range n.Conds {
			r.walkExpr(c)
		}

		for _, b := range n.Blocks {
			r.walkStatements(b.Statements)
		}

		if n.Else != nil {
			r.walkStatements(n.Else.Statements)
		}
	case *ast.Loop:
		if n.Count != nil {
			r.walkExpr(n.Count)
		}

		if n.Init != nil {
			r.walkStmt(n.Init)
		}

		if n.Cond != nil {
			r.walkExpr(n.Cond)
		}

		if n.Update != nil {
			r.walkStmt(n.Update)
		}

		if n.IterExpr != nil {
			r.walkExpr(n.IterExpr)
		}

		r.walkStatements(n.Body.Statements)
	case *ast.Return:
		if n.Value != nil {
			r.walkExpr(n.Value)
		}
	case *ast.Try:
		r.walkStatements(n.Body.Statements)

		if n.HasCatch {
			r.walkStatements(n.CatchBody.Statements)
		}

		if n.FinallyBody != nil {
			r.walkStatements(n.FinallyBody.Statements)
		}
	case *ast.Block:
		r.walkStatements(n.Statements)
	}
}

func (r *refCollector) walkExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Identifier:
		r.add(n.Name)
	case *ast.Self:
		r.usesSelf = true
	case *ast.Binary:
		r.walkExpr(n.Left)
		r.walkExpr(n.Right)
	case *ast.Unary:
		r.walkExpr(n.Operand)
	case *ast.Ternary:
		r.walkExpr(n.Cond)
		r.walkExpr(n.Then)
		r.walkExpr(n.Else)
	case *ast.Call:
		r.walkExpr(n.Callee)

		for _, a := range n.Args {
			r.walkExpr(a)
		}
	case *ast.Member:
		r.walkExpr(n.Object)
	case *ast.Index:
		r.walkExpr(n.Object)
		r.walkExpr(n.Index)
	case *ast.Array:
		for _, el := range n.Elements {
			r.walkExpr(el.Value)
		}
	case *ast.Object:
		for _, p := range n.Properties {
			r.walkExpr(p.Value)
		}
	}
}
