package codegen

import (
	"fmt"

	"github.com/flyuxc/flyuxc/pkg/ast"
)

// lowerExpr dispatches on the AST expression kind and returns the IR name
// of the %struct.Value* it produces. Every branch leaves its result on the
// temp-value stack (via call(), which does this automatically for any
// runtime call returning Value*) so the caller can release it, store it,
// or return it per §4.6.
func (g *Generator) lowerExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Num:
		return g.lowerNum(n)
	case *ast.Str:
		return g.lowerStr(n)
	case *ast.Bool:
		b := 0
		if n.Value {
			b = 1
		}

		return g.call("box_bool", fmt.Sprintf("%d", b))
	case *ast.Null:
		return g.call("box_null")
	case *ast.Undef:
		return g.call("box_undef")
	case *ast.Identifier:
		return g.lowerIdentifier(n)
	case *ast.Self:
		return g.lowerSelf(n)
	case *ast.Binary:
		return g.lowerBinary(n)
	case *ast.Unary:
		return g.lowerUnary(n)
	case *ast.Ternary:
		return g.lowerTernary(n)
	case *ast.Call:
		return g.lowerCall(n)
	case *ast.Member:
		return g.lowerMember(n)
	case *ast.Index:
		return g.lowerIndex(n)
	case *ast.Array:
		return g.lowerArray(n)
	case *ast.Object:
		return g.lowerObject(n)
	default:
		g.errorAt(e, "", "unsupported expression node %T", e)
		return g.call("box_undef")
	}
}

func (g *Generator) lowerNum(n *ast.Num) string {
	return g.call("box_number", fmt.Sprintf("%g", n.Value))
}

func (g *Generator) lowerStr(s *ast.Str) string {
	name := g.internStringConstant(s.Value)

	ptr := g.newTemp()
	g.emit("%s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0", ptr, len(s.Value)+1, len(s.Value)+1, name)

	return g.call("box_string_with_length", ptr, fmt.Sprintf("%d", len(s.Value)))
}

// lowerIdentifier loads the variable's current value and retains it —
// reading a variable does not transfer the slot's ownership, but every
// expression must still produce an owned result (§4.6). An identifier with
// no binding evaluates to box_undef(), per dynamic-language semantics,
// never a compile error.
func (g *Generator) lowerIdentifier(id *ast.Identifier) string {
	ir, ok := g.scopes.resolve(id.Name)
	if !ok {
		g.emit("; undefined identifier %s", g.originalName(id.Name))
		return g.call("box_undef")
	}

	t := g.newTemp()
	g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", t, ir)
	g.call("value_retain", t)
	g.pushTemp(t)

	return t
}

func (g *Generator) lowerSelf(n *ast.Self) string {
	ir, ok := g.scopes.resolve("self")
	if !ok {
		g.errorAt(n, "", "self referenced outside a method")
		return g.call("box_undef")
	}

	t := g.newTemp()
	g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", t, ir)
	g.call("value_retain", t)
	g.pushTemp(t)

	return t
}

// releaseAfterUse drops a produced temporary once its value has been
// consumed by something that does not take ownership of it (a runtime call
// borrows its arguments, per §4.5).
func (g *Generator) releaseAfterUse(name string) {
	g.consumeTemp(name)
	g.call("value_release", name)
}

var binaryRuntimeOp = map[ast.BinaryOp]string{
	ast.OpAdd: "value_add",
	ast.OpSub: "value_subtract",
	ast.OpMul: "value_multiply",
	ast.OpDiv: "value_divide",
	ast.OpPow: "value_power",
}

func (g *Generator) lowerBinary(b *ast.Binary) string {
	switch b.Op {
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpMod:
		return g.lowerIntegerBinary(b)
	case ast.OpAnd, ast.OpOr:
		return g.lowerLogicalBinary(b)
	}

	left := g.lowerExpr(b.Left)
	right := g.lowerExpr(b.Right)

	var result string

	switch b.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow:
		result = g.call(binaryRuntimeOp[b.Op], left, right)
	case ast.OpEq:
		result = g.call("value_equals", left, right)
	case ast.OpNotEq:
		result = g.invertBool(g.call("value_equals", left, right))
	case ast.OpLt:
		result = g.call("value_less_than", left, right)
	case ast.OpGt:
		result = g.call("value_greater_than", left, right)
	case ast.OpLtEq:
		result = g.invertBool(g.call("value_greater_than", left, right))
	case ast.OpGtEq:
		result = g.invertBool(g.call("value_less_than", left, right))
	default:
		g.errorAt(b, "", "unsupported binary operator")
		result = g.call("box_undef")
	}

	g.releaseAfterUse(left)
	g.releaseAfterUse(right)

	return result
}

// invertBool implements `<=` as `!value_greater_than`, `>=` as
// `!value_less_than`, and `!=` as `!value_equals` (§4.6): test truthiness,
// invert the bit, and box the result. The source boolean Value* is
// released since only its truthiness survives.
func (g *Generator) invertBool(v string) string {
	truthy := g.call("value_is_truthy", v)
	g.call("value_release", v)

	inv := g.newTemp()
	g.emit("%s = xor i32 %s, 1", inv, truthy)

	return g.call("box_bool", inv)
}

// lowerLogicalBinary implements && and || by always evaluating both
// operands and combining their truthiness bits — a deliberate choice
// documented at §4.6/§9: short-circuit evaluation would require control
// flow the reimplementation chooses not to add.
func (g *Generator) lowerLogicalBinary(b *ast.Binary) string {
	left := g.lowerExpr(b.Left)
	leftTruthy := g.call("value_is_truthy", left)
	g.releaseAfterUse(left)

	right := g.lowerExpr(b.Right)
	rightTruthy := g.call("value_is_truthy", right)
	g.releaseAfterUse(right)

	combined := g.newTemp()
	if b.Op == ast.OpAnd {
		g.emit("%s = and i32 %s, %s", combined, leftTruthy, rightTruthy)
	} else {
		g.emit("%s = or i32 %s, %s", combined, leftTruthy, rightTruthy)
	}

	nonzero := g.newTemp()
	g.emit("%s = icmp ne i32 %s, 0", nonzero, combined)

	asI32 := g.newTemp()
	g.emit("%s = zext i1 %s to i32", asI32, nonzero)

	return g.call("box_bool", asI32)
}

// lowerIntegerBinary handles the operators the runtime ABI has no entry
// point for — bitwise &, |, ^ and modulo — by unboxing to a double,
// truncating to i64, performing the integer op, and reboxing. The ABI
// (§6.3) only names value_add/subtract/multiply/divide/power/equals/
// less_than/greater_than; bitwise and modulo are resolved directly against
// the numeric representation instead of inventing unlisted runtime calls.
func (g *Generator) lowerIntegerBinary(b *ast.Binary) string {
	left := g.lowerExpr(b.Left)
	right := g.lowerExpr(b.Right)

	lnum := g.call("unbox_number", left)
	rnum := g.call("unbox_number", right)
	g.releaseAfterUse(left)
	g.releaseAfterUse(right)

	li := g.newTemp()
	g.emit("%s = fptosi double %s to i64", li, lnum)

	ri := g.newTemp()
	g.emit("%s = fptosi double %s to i64", ri, rnum)

	res := g.newTemp()

	switch b.Op {
	case ast.OpBitAnd:
		g.emit("%s = and i64 %s, %s", res, li, ri)
	case ast.OpBitOr:
		g.emit("%s = or i64 %s, %s", res, li, ri)
	case ast.OpBitXor:
		g.emit("%s = xor i64 %s, %s", res, li, ri)
	case ast.OpMod:
		g.emit("%s = srem i64 %s, %s", res, li, ri)
	}

	asDouble := g.newTemp()
	g.emit("%s = sitofp i64 %s to double", asDouble, res)

	return g.call("box_number", asDouble)
}

func (g *Generator) lowerUnary(u *ast.Unary) string {
	switch u.Op {
	case ast.OpPreInc, ast.OpPreDec, ast.OpPostInc, ast.OpPostDec:
		return g.lowerIncDec(u)
	}

	operand := g.lowerExpr(u.Operand)

	var result string

	switch u.Op {
	case ast.OpNeg:
		result = g.call("value_multiply", operand, g.call("box_number", "-1"))
	case ast.OpPos:
		return operand
	case ast.OpNot:
		truthy := g.call("value_is_truthy", operand)
		inv := g.newTemp()
		g.emit("%s = xor i32 %s, 1", inv, truthy)
		result = g.call("box_bool", inv)
	default:
		g.errorAt(u, "", "unsupported unary operator")
		result = g.call("box_undef")
	}

	g.releaseAfterUse(operand)

	return result
}

// lowerIncDec implements prefix/postfix ++/-- (§4.6): the operand must be
// an identifier. It loads the current value, computes old+1/old-1 via the
// runtime, stores the new value (releasing the old), and returns the old
// or new value per the postfix flag.
func (g *Generator) lowerIncDec(u *ast.Unary) string {
	id, ok := u.Operand.(*ast.Identifier)
	if !ok {
		g.errorAt(u, "", "++/-- requires an identifier operand")
		return g.call("box_undef")
	}

	ir, ok := g.scopes.resolve(id.Name)
	if !ok {
		g.errorAt(u, id.Name, "assignment to undeclared identifier")
		return g.call("box_undef")
	}

	oldVal := g.newTemp()
	g.emit("%s = load %%struct.Value*, %%struct.Value** %%%s", oldVal, ir)

	one := g.call("box_number", "1")

	fn := "value_add"
	if u.Op == ast.OpPreDec || u.Op == ast.OpPostDec {
		fn = "value_subtract"
	}

	newVal := g.call(fn, oldVal, one)

	g.call("value_release", oldVal) // slot still holds old; release the copy we loaded for arithmetic
	g.emit("store %%struct.Value* %s, %%struct.Value** %%%s", newVal, ir)
	g.consumeTemp(newVal)

	g.call("value_retain", newVal) // the stored value and the expression's result are both owned references now
	g.pushTemp(newVal)

	if u.Op == ast.OpPreInc || u.Op == ast.OpPreDec {
		g.releaseAfterUse(one)
		return newVal
	}

	// Postfix: the caller wants the value as it was before the update.
	// Re-derive it via subtract/add back rather than keeping oldVal alive,
	// since oldVal was already released above.
	inverseFn := "value_subtract"
	if fn == "value_subtract" {
		inverseFn = "value_add"
	}

	oldAgain := g.call(inverseFn, newVal, one)
	g.releaseAfterUse(one)
	g.releaseAfterUse(newVal)

	return oldAgain
}

func (g *Generator) lowerTernary(t *ast.Ternary) string {
	cond := g.lowerExpr(t.Cond)
	truthy := g.call("value_is_truthy", cond)
	g.releaseAfterUse(cond)

	isTrue := g.newTemp()
	g.emit("%s = icmp ne i32 %s, 0", isTrue, truthy)

	thenLabel := g.newLabel("ternary.then")
	elseLabel := g.newLabel("ternary.else")
	endLabel := g.newLabel("ternary.end")

	g.emit("br i1 %s, label %%%s, label %%%s", isTrue, thenLabel, elseLabel)

	g.emitLabel(thenLabel)
	thenVal := g.lowerExpr(t.Then)
	g.consumeTemp(thenVal)
	g.emit("br label %%%s", endLabel)

	g.emitLabel(elseLabel)
	elseVal := g.lowerExpr(t.Else)
	g.consumeTemp(elseVal)
	g.emit("br label %%%s", endLabel)

	g.emitLabel(endLabel)

	result := g.newTemp()
	g.emit("%s = phi %%struct.Value* [ %s, %%%s ], [ %s, %%%s ]", result, thenVal, thenLabel, elseVal, elseLabel)
	g.pushTemp(result)

	return result
}
