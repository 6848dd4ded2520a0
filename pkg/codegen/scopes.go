package codegen

// scopeFrame is the ordered list of IR locals declared at one lexical
// level (a function body, an if-arm, a loop body, a try/catch/finally
// arm). Release emission walks a frame's locals in insertion order, per
// §4.7's scope-cleanup rule.
type scopeFrame struct {
	locals []string
}

// loopScope is one entry of the loop-scope stack (§3.5): the labels a
// break/next inside this loop must jump to, its optional name label, and
// the depth into scopeTop at which the loop's own frame begins — so
// break/next can release exactly the frames pushed since loop entry.
type loopScope struct {
	endLabel      string
	continueLabel string
	name          string
	depth         int
}

// pushScope opens a new lexical level: a fresh scope frame and a fresh
// symbol-table scope together, since a block's declarations are both
// name-resolved and release-tracked at the same granularity.
func (g *Generator) pushScope() {
	g.scopes.push()
	g.scopeTop = append(g.scopeTop, &scopeFrame{})
}

// popScope closes the innermost lexical level and returns its frame so the
// caller can decide whether to emit release calls for it (skipped when the
// block already terminated via return/break/next).
func (g *Generator) popScope() *scopeFrame {
	frame := g.scopeTop[len(g.scopeTop)-1]
	g.scopeTop = g.scopeTop[:len(g.scopeTop)-1]
	g.scopes.pop()

	return frame
}

// declareLocal allocates a fresh IR name for a source-level declaration,
// registers it in the symbol table, adds it to the innermost scope frame,
// and emits its entry-block alloca (§4.7: "Emit alloca ... once per IR
// name and initialize to null").
func (g *Generator) declareLocal(sourceName string) string {
	if g.scopes.declaredInCurrentScope(sourceName) {
		g.errorf(0, 0, "%q is already declared in this scope", g.originalName(sourceName))
	}

	irName := g.scopes.declare(sourceName)
	top := g.scopeTop[len(g.scopeTop)-1]
	top.locals = append(top.locals, irName)
	g.emitAlloca(irName)

	return irName
}

// releaseFrame emits value_release for every local in a frame, in
// declaration order, except a name passed in except (the retained return
// value, when cleanup is running as part of a return).
func (g *Generator) releaseFrame(frame *scopeFrame, except string) {
	for _, local := range frame.locals {
		if local == except {
			continue
		}

		t := g.newTemp()
		g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", t, local)
		g.call("value_release", t)
	}
}

// releaseAllScopes releases every local visible in the current function, in
// outer-to-inner insertion order, for a `return` — the whole function is
// exiting, not just its innermost block. except names the retained return
// value, if any.
func (g *Generator) releaseAllScopes(except string) {
	for _, frame := range g.scopeTop {
		g.releaseFrame(frame, except)
	}
}

// releaseSinceLoop releases every local declared since loop entry: the
// frames from depth to the top of scopeTop, used by plain and labelled
// break/next (§4.7).
func (g *Generator) releaseSinceLoop(depth int) {
	for i := depth; i < len(g.scopeTop); i++ {
		g.releaseFrame(g.scopeTop[i], "")
	}
}

// pushTemp records a freshly produced Value* as owned by the current
// expression.
func (g *Generator) pushTemp(name string) {
	g.tempStack = append(g.tempStack, name)
}

// consumeTemp removes name from the temp-value stack without releasing it
// — used at the point a temporary is stored, returned, or otherwise
// handed off to a longer-lived owner.
func (g *Generator) consumeTemp(name string) {
	for i := len(g.tempStack) - 1; i >= 0; i-- {
		if g.tempStack[i] == name {
			g.tempStack = append(g.tempStack[:i], g.tempStack[i+1:]...)
			return
		}
	}
}

// drainTemps releases every temporary still on the stack (e.g. at a
// statement boundary, or after an ExprStmt whose value nobody consumes)
// and clears it.
func (g *Generator) drainTemps() {
	for _, t := range g.tempStack {
		g.call("value_release", t)
	}

	g.tempStack = nil
}
