package codegen

import (
	"fmt"
	"strings"

	"github.com/flyuxc/flyuxc/pkg/ast"
)

// lowerFuncDecl handles a FuncDecl encountered while lowering a function
// body — i.e. a nested function, which is always a closure (§4.8). A
// top-level FuncDecl never reaches here: lowerTopLevel peels those off and
// lowers them directly via lowerNamedFunction before main's body runs.
func (g *Generator) lowerFuncDecl(fn *ast.FuncDecl) {
	// Pre-register the closure's own name before resolving captures (§4.8
	// step 1): a self-referencing closure captures fn.Name, and that
	// capture must resolve against a scope where the name already exists.
	closureIR := g.declareLocal(fn.Name)

	captures, usesSelf := collectCaptures(fn, g.topLevelFuncs)
	fn.UsesSelf = usesSelf
	fn.Captures = captures

	irName := fmt.Sprintf("closure.%d", g.labelCounter+1)
	g.labelCounter++

	g.lowerNamedFunction(irName, fn.Params, captures, usesSelf, fn.Body, true)

	// Back in the enclosing function: build the capture array, retain each
	// captured value from the *outer* scope, box the function value, and
	// store it into a fresh local bound to the closure's source name.
	var capturePtr string

	if len(captures) > 0 {
		capturePtr = g.newTemp()
		g.emit("%s = alloca [%d x %%struct.Value*]", capturePtr, len(captures))

		for i, name := range captures {
			ir, ok := g.scopes.resolve(name)
			if !ok {
				g.errorAt(fn, name, "closure captures undeclared identifier")
				continue
			}

			v := g.newTemp()
			g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", v, ir)
			g.call("value_retain", v)

			slot := g.newTemp()
			g.emit("%s = getelementptr [%d x %%struct.Value*], [%d x %%struct.Value*]* %s, i64 0, i64 %d", slot, len(captures), len(captures), capturePtr, i)
			g.emit("store %%struct.Value* %s, %%struct.Value** %s", v, slot)
		}
	}

	capsArg := "null"
	if capturePtr != "" {
		bc := g.newTemp()
		g.emit("%s = bitcast [%d x %%struct.Value*]* %s to %%struct.Value**", bc, len(captures), capturePtr)
		capsArg = bc
	}

	fnPtr := g.newTemp()
	g.emit("%s = bitcast %%struct.Value*(%s)* @%s to i8*", fnPtr, closureParamTypeList(fn, captures), irName)

	self := 0
	if usesSelf {
		self = 1
	}

	fval := g.call("box_function", fnPtr, capsArg, fmt.Sprintf("%d", len(captures)), fmt.Sprintf("%d", len(fn.Params)), fmt.Sprintf("%d", self))
	g.consumeTemp(fval)

	g.emit("store %%struct.Value* %s, %%struct.Value** %%%s", fval, closureIR)

	// Self-referencing closure: the function's own name is in its own
	// capture list, so the slot captured at construction time is stale
	// (it predates fval existing). Patch it in place.
	for i, name := range captures {
		if name == fn.Name {
			g.call("update_closure_captured", fval, fmt.Sprintf("%d", i), fval)
		}
	}
}

// closureParamTypeList renders the LLVM parameter-type list a closure's
// function pointer type needs for the bitcast in lowerFuncDecl: one
// %struct.Value* per self/param/capture slot, in the same order
// lowerNamedFunction emits them.
func closureParamTypeList(fn *ast.FuncDecl, captures []string) string {
	n := len(fn.Params) + len(captures)
	if fn.UsesSelf {
		n++
	}

	types := make([]string, n)
	for i := range types {
		types[i] = "%struct.Value*"
	}

	return strings.Join(types, ", ")
}

// lowerNamedFunction emits `define %struct.Value* @irName(...)` with the
// self/params/captures calling convention of §4.8: self is prepended iff
// usesSelf, captures come last. It swaps in a completely fresh codegen
// context for the duration of the body (§4.8 step 4), then restores the
// caller's context and appends the finished definition to either the
// globals buffer (nested == true) or the top-level definitions buffer.
func (g *Generator) lowerNamedFunction(irName string, params, captures []string, usesSelf bool, body *ast.Block, nested bool) {
	savedScopes, savedScopeTop := g.scopes, g.scopeTop
	savedLoops, savedTempStack := g.loops, g.tempStack
	savedBody, savedAllocas := g.body, g.allocas
	savedTerminated := g.blockTerminated

	g.scopes = newSymbolTable()
	g.scopeTop = nil
	g.loops = nil
	g.tempStack = nil
	g.body = strings.Builder{}
	g.allocas = strings.Builder{}
	g.blockTerminated = false

	g.pushScope()

	var sig []string

	if usesSelf {
		selfIR := g.scopes.declare("self")
		g.emitAlloca(selfIR)
		g.emit("store %%struct.Value* %%arg.self, %%struct.Value** %%%s", selfIR)
		sig = append(sig, "%struct.Value* %arg.self")
	}

	for _, p := range params {
		ir := g.scopes.declare(p)
		g.emitAlloca(ir)
		g.emit("store %%struct.Value* %%arg.%s, %%struct.Value** %%%s", p, ir)
		sig = append(sig, fmt.Sprintf("%%struct.Value* %%arg.%s", p))
	}

	for _, c := range captures {
		ir := g.scopes.declare(c)
		g.emitAlloca(ir)
		g.emit("store %%struct.Value* %%cap.%s, %%struct.Value** %%%s", c, ir)
		sig = append(sig, fmt.Sprintf("%%struct.Value* %%cap.%s", c))
	}

	g.lowerStatements(body.Statements)

	if !g.blockTerminated {
		nullVal := g.call("box_null")
		g.consumeTemp(nullVal)
		g.releaseAllScopes("")
		g.emit("ret %%struct.Value* %s", nullVal)
	}

	g.popScope()

	var def strings.Builder

	fmt.Fprintf(&def, "define %%struct.Value* @%s(%s) {\nentry:\n", irName, strings.Join(sig, ", "))
	def.WriteString(g.allocas.String())
	def.WriteString(g.body.String())
	def.WriteString("}\n\n")

	if nested {
		g.globals.WriteString(def.String())
	} else {
		g.topLevelDefs.WriteString(def.String())
	}

	g.scopes, g.scopeTop = savedScopes, savedScopeTop
	g.loops, g.tempStack = savedLoops, savedTempStack
	g.body, g.allocas = savedBody, savedAllocas
	g.blockTerminated = savedTerminated
}
