package codegen

import (
	"fmt"

	"github.com/flyuxc/flyuxc/pkg/ast"
)

// lowerStmt dispatches on the AST statement kind. It returns nothing —
// every branch is responsible for leaving the temp-value stack empty by
// the time it returns, per the statement-boundary invariant of §8.
func (g *Generator) lowerStmt(s ast.Stmt) {
	if g.blockTerminated {
		return
	}

	switch n := s.(type) {
	case *ast.VarDecl:
		g.lowerVarDecl(n)
	case *ast.FuncDecl:
		g.lowerFuncDecl(n)
	case *ast.ExprStmt:
		g.lowerExprStmt(n)
	case *ast.AssignStmt:
		g.lowerAssignStmt(n)
	case *ast.If:
		g.lowerIf(n)
	case *ast.Loop:
		g.lowerLoop(n)
	case *ast.Return:
		g.lowerReturn(n)
	case *ast.Break:
		g.lowerBreak(n)
	case *ast.Next:
		g.lowerNext(n)
	case *ast.Try:
		g.lowerTry(n)
	case *ast.Block:
		g.lowerStatements(n.Statements)
	default:
		g.errorAt(s, "", "unsupported statement node %T", s)
	}
}

func (g *Generator) lowerStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		if g.blockTerminated {
			return
		}

		g.lowerStmt(s)
	}
}

func (g *Generator) lowerVarDecl(v *ast.VarDecl) {
	irName := g.declareLocal(v.Name)

	if v.Initializer == nil {
		return
	}

	g.currentVarName = irName
	defer func() { g.currentVarName = "" }()

	if _, ok := v.Initializer.(*ast.Null); ok && v.Type != nil {
		tag := typeTag(v.Type.Name)
		val := g.call("box_null_typed", fmt.Sprintf("%d", tag))
		g.consumeTemp(val)
		g.storeIntoLocal(irName, val)

		return
	}

	val := g.lowerExpr(v.Initializer)
	g.consumeTemp(val)
	g.storeIntoLocal(irName, val)
}

// storeIntoLocal releases whatever the slot currently holds (handles
// re-entry through a loop body) and stores the new value without
// retaining — ownership transfers from the temporary into the slot (§4.7).
func (g *Generator) storeIntoLocal(irName, val string) {
	old := g.newTemp()
	g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", old, irName)
	g.call("value_release", old)
	g.emit("store %%struct.Value* %s, %%struct.Value** %%%s", val, irName)
}

// typeTag maps a declared type name to the boxed-null tag box_null_typed
// expects. The exact tag values are an internal runtime convention; the
// generator only needs a stable, distinct tag per declared type name.
func typeTag(name string) int {
	switch name {
	case "num":
		return 0
	case "str":
		return 1
	case "bl":
		return 2
	case "obj":
		return 3
	default:
		return -1
	}
}

func (g *Generator) lowerExprStmt(e *ast.ExprStmt) {
	v := g.lowerExpr(e.Value)
	g.releaseAfterUse(v)
	g.drainTemps()
}

// lowerAssignStmt mirrors VarDecl for a pre-existing target (§4.7). The
// target is evaluated (its address resolved) before the value.
func (g *Generator) lowerAssignStmt(a *ast.AssignStmt) {
	switch target := a.Target.(type) {
	case *ast.Identifier:
		g.lowerAssignIdentifier(target, a.Value)
	case *ast.Index:
		obj := g.lowerExpr(target.Object)
		idx := g.lowerExpr(target.Index)
		val := g.lowerExpr(a.Value)
		g.consumeTemp(val)

		g.call("value_set_index", obj, idx, val)
		g.releaseAfterUse(obj)
		g.releaseAfterUse(idx)
	case *ast.Member:
		obj := g.lowerExpr(target.Object)
		key := g.boxCString(target.Property)
		val := g.lowerExpr(a.Value)
		g.consumeTemp(val)

		g.call("value_set_field", obj, key, val)
		g.releaseAfterUse(obj)
	default:
		g.errorAt(a, "", "invalid assignment target")
	}

	g.drainTemps()
}

func (g *Generator) lowerAssignIdentifier(id *ast.Identifier, valueExpr ast.Expr) {
	irName, ok := g.scopes.resolve(id.Name)
	if !ok {
		g.errorAt(id, id.Name, "assignment to undeclared identifier")
		return
	}

	if _, isNull := valueExpr.(*ast.Null); isNull {
		old := g.newTemp()
		g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", old, irName)

		preserved := g.call("box_null_preserve_type", old)
		g.call("value_release", old)
		g.emit("store %%struct.Value* %s, %%struct.Value** %%%s", preserved, irName)
		g.consumeTemp(preserved)

		return
	}

	val := g.lowerExpr(valueExpr)
	g.consumeTemp(val)
	g.storeIntoLocal(irName, val)
}

// lowerReturn lowers the value (if any), retains it so scope cleanup
// cannot free it, runs cleanup for every scope in the current function,
// and emits ret (§4.7).
func (g *Generator) lowerReturn(r *ast.Return) {
	if r.Value == nil {
		val := g.call("box_null")
		g.consumeTemp(val)
		g.drainTemps()
		g.releaseAllScopes("")
		g.emit("ret %%struct.Value* %s", val)
		g.blockTerminated = true

		return
	}

	val := g.lowerExpr(r.Value)
	g.consumeTemp(val)
	g.call("value_retain", val)
	g.drainTemps()
	// val is always a fresh %tN temp, never a slot's own IR name, so no
	// frame local can alias it — releaseAllScopes needs no exemption here.
	g.releaseAllScopes("")
	g.emit("ret %%struct.Value* %s", val)
	g.blockTerminated = true
}

func (g *Generator) lowerBreak(b *ast.Break) {
	g.drainTemps()
	g.lowerLoopJump(b.Label, true)
}

func (g *Generator) lowerNext(n *ast.Next) {
	g.drainTemps()
	g.lowerLoopJump(n.Label, false)
}

// lowerLoopJump implements the release/branch rule of §4.7 for break and
// next, both plain and labelled.
func (g *Generator) lowerLoopJump(label string, isBreak bool) {
	if len(g.loops) == 0 {
		g.errorf(0, 0, "break/next outside a loop")
		return
	}

	if label == "" {
		innermost := g.loops[len(g.loops)-1]
		g.releaseSinceLoop(innermost.depth)

		if isBreak {
			g.emit("br label %%%s", innermost.endLabel)
		} else {
			g.emit("br label %%%s", innermost.continueLabel)
		}

		g.blockTerminated = true

		return
	}

	for i := len(g.loops) - 1; i >= 0; i-- {
		if g.loops[i].name != label {
			continue
		}

		if isBreak {
			g.releaseSinceLoop(g.loops[i].depth)
			g.emit("br label %%%s", g.loops[i].endLabel)
		} else {
			// next continues the named loop: release everything down to,
			// but not including, that loop's own frame.
			g.releaseSinceLoop(g.loops[i].depth + 1)
			g.emit("br label %%%s", g.loops[i].continueLabel)
		}

		g.blockTerminated = true

		return
	}

	g.errorf(0, 0, "no enclosing loop labelled %q", g.originalName(label))
}

func (g *Generator) lowerIf(n *ast.If) {
	for i, cond := range n.Conds {
		condVal := g.lowerExpr(cond)
		truthy := g.call("value_is_truthy", condVal)
		g.releaseAfterUse(condVal)

		isTrue := g.newTemp()
		g.emit("%s = icmp ne i32 %s, 0", isTrue, truthy)

		thenLabel := g.newLabel("if.then")
		endLabel := g.newLabel("if.end")

		g.emit("br i1 %s, label %%%s, label %%%s", isTrue, thenLabel, endLabel)

		g.emitLabel(thenLabel)
		g.pushScope()
		g.lowerStatements(n.Blocks[i].Statements)

		if !g.blockTerminated {
			g.releaseFrame(g.popScope(), "")
			g.emit("br label %%%s", endLabel)
		} else {
			g.popScope()
		}

		g.emitLabel(endLabel)
		g.blockTerminated = false
	}

	if n.Else != nil {
		g.pushScope()
		g.lowerStatements(n.Else.Statements)

		if !g.blockTerminated {
			g.releaseFrame(g.popScope(), "")
		} else {
			g.popScope()
		}
	}
}

func (g *Generator) lowerLoop(l *ast.Loop) {
	switch l.Kind {
	case ast.LoopRepeat:
		g.lowerRepeatLoop(l)
	case ast.LoopFor:
		g.lowerForLoop(l)
	case ast.LoopForeach:
		g.lowerForeachLoop(l)
	}
}

func (g *Generator) pushLoopScope(name string) *loopScope {
	ls := &loopScope{
		endLabel:      g.newLabel("loop.end"),
		continueLabel: g.newLabel("loop.cont"),
		name:          name,
		depth:         len(g.scopeTop),
	}
	g.loops = append(g.loops, ls)

	return ls
}

func (g *Generator) popLoopScope() {
	g.loops = g.loops[:len(g.loops)-1]
}

func (g *Generator) lowerRepeatLoop(l *ast.Loop) {
	countVal := g.lowerExpr(l.Count)
	countNum := g.call("unbox_number", countVal)
	g.releaseAfterUse(countVal)

	countInt := g.newTemp()
	g.emit("%s = fptosi double %s to i64", countInt, countNum)

	counter := g.newTemp()
	g.emit("%s = alloca i64", counter)
	g.emit("store i64 0, i64* %s", counter)

	headerLabel := g.newLabel("repeat.header")
	bodyLabel := g.newLabel("repeat.body")

	ls := g.pushLoopScope(l.Name)

	g.emit("br label %%%s", headerLabel)
	g.emitLabel(headerLabel)

	cur := g.newTemp()
	g.emit("%s = load i64, i64* %s", cur, counter)

	cond := g.newTemp()
	g.emit("%s = icmp slt i64 %s, %s", cond, cur, countInt)
	g.emit("br i1 %s, label %%%s, label %%%s", cond, bodyLabel, ls.endLabel)

	g.emitLabel(bodyLabel)
	g.pushScope()
	g.lowerStatements(l.Body.Statements)

	if !g.blockTerminated {
		g.releaseFrame(g.popScope(), "")
		g.emit("br label %%%s", ls.continueLabel)
	} else {
		g.popScope()
	}

	g.emitLabel(ls.continueLabel)

	next := g.newTemp()
	g.emit("%s = add i64 %s, 1", next, cur)
	g.emit("store i64 %s, i64* %s", next, counter)
	g.emit("br label %%%s", headerLabel)

	g.emitLabel(ls.endLabel)
	g.blockTerminated = false
	g.popLoopScope()
}

func (g *Generator) lowerForLoop(l *ast.Loop) {
	g.pushScope() // init's declaration (if any) lives for the whole loop

	if l.Init != nil {
		g.lowerStmt(l.Init)
	}

	headerLabel := g.newLabel("for.header")
	bodyLabel := g.newLabel("for.body")

	ls := g.pushLoopScope(l.Name)

	g.emit("br label %%%s", headerLabel)
	g.emitLabel(headerLabel)

	if l.Cond != nil {
		condVal := g.lowerExpr(l.Cond)
		truthy := g.call("value_is_truthy", condVal)
		g.releaseAfterUse(condVal)

		isTrue := g.newTemp()
		g.emit("%s = icmp ne i32 %s, 0", isTrue, truthy)
		g.emit("br i1 %s, label %%%s, label %%%s", isTrue, bodyLabel, ls.endLabel)
	} else {
		g.emit("br label %%%s", bodyLabel)
	}

	g.emitLabel(bodyLabel)
	g.pushScope()
	g.lowerStatements(l.Body.Statements)

	if !g.blockTerminated {
		g.releaseFrame(g.popScope(), "")
		g.emit("br label %%%s", ls.continueLabel)
	} else {
		g.popScope()
	}

	g.emitLabel(ls.continueLabel)

	if l.Update != nil {
		g.lowerStmt(l.Update)
	}

	g.emit("br label %%%s", headerLabel)

	g.emitLabel(ls.endLabel)
	g.blockTerminated = false
	g.popLoopScope()

	g.releaseFrame(g.popScope(), "")
}

// lowerForeachLoop evaluates the iterable once, reads its length, and
// walks [0, len) reading and retaining each element into the binding
// (§4.7: "foreach bindings are owned").
func (g *Generator) lowerForeachLoop(l *ast.Loop) {
	iterVal := g.lowerExpr(l.IterExpr)
	g.consumeTemp(iterVal)

	length := g.call("value_array_length", iterVal)

	idx := g.newTemp()
	g.emit("%s = alloca i64", idx)
	g.emit("store i64 0, i64* %s", idx)

	headerLabel := g.newLabel("foreach.header")
	bodyLabel := g.newLabel("foreach.body")

	ls := g.pushLoopScope(l.Name)

	g.emit("br label %%%s", headerLabel)
	g.emitLabel(headerLabel)

	cur := g.newTemp()
	g.emit("%s = load i64, i64* %s", cur, idx)

	cond := g.newTemp()
	g.emit("%s = icmp slt i64 %s, %s", cond, cur, length)
	g.emit("br i1 %s, label %%%s, label %%%s", cond, bodyLabel, ls.endLabel)

	g.emitLabel(bodyLabel)
	g.pushScope()

	elem := g.call("value_array_get", iterVal, cur)
	g.call("value_retain", elem)
	g.consumeTemp(elem)

	bindIR := g.declareLocal(l.Binding)
	g.emit("store %%struct.Value* %s, %%struct.Value** %%%s", elem, bindIR)

	g.lowerStatements(l.Body.Statements)

	if !g.blockTerminated {
		g.releaseFrame(g.popScope(), "")
		g.emit("br label %%%s", ls.continueLabel)
	} else {
		g.popScope()
	}

	g.emitLabel(ls.continueLabel)

	next := g.newTemp()
	g.emit("%s = add i64 %s, 1", next, cur)
	g.emit("store i64 %s, i64* %s", next, idx)
	g.emit("br label %%%s", headerLabel)

	g.emitLabel(ls.endLabel)
	g.blockTerminated = false
	g.popLoopScope()

	g.releaseAfterUse(iterVal)
}

// lowerTry implements the per-statement is_ok check of §4.7: clear the
// error channel, run the body statement by statement, and after each one
// branch to catch (if present) else finally else end on failure.
func (g *Generator) lowerTry(t *ast.Try) {
	g.call("value_clear_error")

	catchLabel := g.newLabel("try.catch")
	finallyLabel := g.newLabel("try.finally")
	endLabel := g.newLabel("try.end")

	onError := endLabel

	switch {
	case t.HasCatch:
		onError = catchLabel
	case t.FinallyBody != nil:
		onError = finallyLabel
	}

	wasInTry := g.inTryCatch
	g.inTryCatch = true

	g.pushScope()

	for _, stmt := range t.Body.Statements {
		if g.blockTerminated {
			break
		}

		g.lowerStmt(stmt)

		if g.blockTerminated {
			break
		}

		ok := g.call("value_is_ok")
		truthy := g.call("value_is_truthy", ok)
		g.releaseAfterUse(ok)

		cond := g.newTemp()
		g.emit("%s = icmp ne i32 %s, 0", cond, truthy)

		contLabel := g.newLabel("try.cont")
		g.emit("br i1 %s, label %%%s, label %%%s", cond, contLabel, onError)
		g.emitLabel(contLabel)
	}

	if !g.blockTerminated {
		g.releaseFrame(g.popScope(), "")
		g.emit("br label %%%s", finallyOrEnd(t, finallyLabel, endLabel))
	} else {
		g.popScope()
	}

	g.inTryCatch = wasInTry

	if t.HasCatch {
		g.emitLabel(catchLabel)
		g.blockTerminated = false
		g.pushScope()

		msg := g.call("value_last_error")
		status := g.call("value_last_status")

		statusInt := g.call("unbox_number", status)

		three := g.newTemp()
		g.emit("%s = fcmp oeq double %s, 3.0", three, statusInt)

		typeStr := g.newTemp()
		g.emit("%s = select i1 %s, i8* %s, i8* %s", typeStr, three, g.boxCString("TypeError"), g.boxCString("Error"))
		typeVal := g.call("box_string", typeStr)

		errObj := g.call("create_error_object", msg, status, typeVal)
		g.releaseAfterUse(msg)
		g.releaseAfterUse(status)
		g.releaseAfterUse(typeVal)

		catchIR := g.declareLocal(t.CatchName)
		g.emit("store %%struct.Value* %s, %%struct.Value** %%%s", errObj, catchIR)
		g.consumeTemp(errObj)

		g.call("value_clear_error")

		g.lowerStatements(t.CatchBody.Statements)

		if !g.blockTerminated {
			g.releaseFrame(g.popScope(), "")
			g.emit("br label %%%s", finallyOrEnd(t, finallyLabel, endLabel))
		} else {
			g.popScope()
		}
	}

	if t.FinallyBody != nil {
		g.emitLabel(finallyLabel)
		g.blockTerminated = false
		g.pushScope()
		g.lowerStatements(t.FinallyBody.Statements)

		if !g.blockTerminated {
			g.releaseFrame(g.popScope(), "")
			g.emit("br label %%%s", endLabel)
		} else {
			g.popScope()
		}
	}

	g.emitLabel(endLabel)
	g.blockTerminated = false
}

func finallyOrEnd(t *ast.Try, finallyLabel, endLabel string) string {
	if t.FinallyBody != nil {
		return finallyLabel
	}

	return endLabel
}
