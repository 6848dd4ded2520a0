package parser

import (
	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/lexer"
)

// parseExpr parses a full expression starting at the lowest-precedence
// level, the ternary conditional (§4.4).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.Expr {
	loc := p.curLoc()
	cond := p.parseOr()

	if !p.match(lexer.Question) {
		return cond
	}

	then := p.parseExpr()
	p.expect(lexer.Colon, "':'")
	els := p.parseExpr()

	return &ast.Ternary{Location: loc, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()

	for p.check(lexer.OrOr) {
		loc := p.curLoc()
		p.advance()

		right := p.parseAnd()
		left = &ast.Binary{Location: loc, Op: ast.OpOr, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseBitOr()

	for p.check(lexer.AndAnd) {
		loc := p.curLoc()
		p.advance()

		right := p.parseBitOr()
		left = &ast.Binary{Location: loc, Op: ast.OpAnd, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()

	for p.check(lexer.Pipe) {
		loc := p.curLoc()
		p.advance()

		right := p.parseBitXor()
		left = &ast.Binary{Location: loc, Op: ast.OpBitOr, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()

	for p.check(lexer.Caret) {
		loc := p.curLoc()
		p.advance()

		right := p.parseBitAnd()
		left = &ast.Binary{Location: loc, Op: ast.OpBitXor, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseEquality()

	for p.check(lexer.Amp) {
		loc := p.curLoc()
		p.advance()

		right := p.parseEquality()
		left = &ast.Binary{Location: loc, Op: ast.OpBitAnd, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()

	for p.check(lexer.Eq) || p.check(lexer.NotEq) {
		loc := p.curLoc()
		op := ast.OpEq

		if p.peek().Kind == lexer.NotEq {
			op = ast.OpNotEq
		}

		p.advance()

		right := p.parseRelational()
		left = &ast.Binary{Location: loc, Op: op, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()

	for {
		var op ast.BinaryOp

		switch p.peek().Kind {
		case lexer.Lt:
			op = ast.OpLt
		case lexer.Gt:
			op = ast.OpGt
		case lexer.LtEq:
			op = ast.OpLtEq
		case lexer.GtEq:
			op = ast.OpGtEq
		default:
			return left
		}

		loc := p.curLoc()
		p.advance()

		right := p.parseAdditive()
		left = &ast.Binary{Location: loc, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()

	for {
		var op ast.BinaryOp

		switch p.peek().Kind {
		case lexer.Plus:
			op = ast.OpAdd
		case lexer.Minus:
			op = ast.OpSub
		default:
			return left
		}

		loc := p.curLoc()
		p.advance()

		right := p.parseMultiplicative()
		left = &ast.Binary{Location: loc, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePower()

	for {
		var op ast.BinaryOp

		switch p.peek().Kind {
		case lexer.Star:
			op = ast.OpMul
		case lexer.Slash:
			op = ast.OpDiv
		case lexer.Percent:
			op = ast.OpMod
		default:
			return left
		}

		loc := p.curLoc()
		p.advance()

		right := p.parsePower()
		left = &ast.Binary{Location: loc, Op: op, Left: left, Right: right}
	}
}

// parsePower is right-associative, per §4.4.
func (p *Parser) parsePower() ast.Expr {
	left := p.parseUnary()

	if !p.check(lexer.Pow) {
		return left
	}

	loc := p.curLoc()
	p.advance()

	right := p.parsePower()

	return &ast.Binary{Location: loc, Op: ast.OpPow, Left: left, Right: right}
}

func (p *Parser) parseUnary() ast.Expr {
	loc := p.curLoc()

	switch p.peek().Kind {
	case lexer.Bang:
		p.advance()
		return &ast.Unary{Location: loc, Op: ast.OpNot, Operand: p.parseUnary()}
	case lexer.Minus:
		p.advance()
		return &ast.Unary{Location: loc, Op: ast.OpNeg, Operand: p.parseUnary()}
	case lexer.Plus:
		p.advance()
		return &ast.Unary{Location: loc, Op: ast.OpPos, Operand: p.parseUnary()}
	case lexer.Inc:
		p.advance()
		return &ast.Unary{Location: loc, Op: ast.OpPreInc, Operand: p.parseUnary()}
	case lexer.Dec:
		p.advance()
		return &ast.Unary{Location: loc, Op: ast.OpPreDec, Operand: p.parseUnary()}
	}

	return p.parsePostfix()
}

// parsePostfix handles call, index, member (`.`, `?.`, `.>`) and postfix
// `++`/`--`, chained left-to-right (§4.4).
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch p.peek().Kind {
		case lexer.LParen:
			expr = p.finishCall(expr)
		case lexer.LBracket:
			loc := p.curLoc()
			p.advance()

			idx := p.parseExpr()
			p.expect(lexer.RBracket, "']'")

			expr = &ast.Index{Location: loc, Object: expr, Index: idx}
		case lexer.Dot:
			loc := p.curLoc()
			p.advance()

			name := p.expect(lexer.Ident, "member name").Lexeme
			expr = &ast.Member{Location: loc, Object: expr, Property: name, IsUnbound: true}
		case lexer.Question:
			if p.peekAt(1).Kind != lexer.Dot {
				return expr
			}

			loc := p.curLoc()
			p.advance()
			p.advance()

			name := p.expect(lexer.Ident, "member name").Lexeme
			expr = &ast.Member{Location: loc, Object: expr, Property: name, IsOptional: true, IsUnbound: true}
		case lexer.DigChain:
			expr = p.finishChainAccess(expr)
		case lexer.Inc:
			loc := p.curLoc()
			p.advance()

			expr = &ast.Unary{Location: loc, Op: ast.OpPostInc, Operand: expr, Postfix: true}
		case lexer.Dec:
			loc := p.curLoc()
			p.advance()

			expr = &ast.Unary{Location: loc, Op: ast.OpPostDec, Operand: expr, Postfix: true}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	loc := p.curLoc()
	p.advance() // '('

	var args []ast.Expr

	for !p.check(lexer.RParen) && !p.atEnd() {
		args = append(args, p.parseExpr())

		if !p.match(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.RParen, "')'")

	throwOnError := p.match(lexer.Bang)

	return &ast.Call{Location: loc, Callee: callee, Args: args, ThrowOnError: throwOnError}
}

// finishChainAccess desugars `.>method(args)` to `method(obj, args…)` and
// `.>prop` (no call) to plain field access, per §4.4.
func (p *Parser) finishChainAccess(obj ast.Expr) ast.Expr {
	loc := p.curLoc()
	p.advance() // .>

	name := p.advance().Lexeme // Ident or BuiltinFunc

	if !p.check(lexer.LParen) {
		return &ast.Member{Location: loc, Object: obj, Property: name}
	}

	p.advance() // '('

	args := []ast.Expr{obj}

	for !p.check(lexer.RParen) && !p.atEnd() {
		args = append(args, p.parseExpr())

		if !p.match(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.RParen, "')'")

	throwOnError := p.match(lexer.Bang)

	callee := &ast.Identifier{Location: loc, Name: name}

	return &ast.Call{Location: loc, Callee: callee, Args: args, ThrowOnError: throwOnError}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	loc := p.curLoc()

	switch tok.Kind {
	case lexer.Num:
		p.advance()
		return &ast.Num{Location: loc, Value: parseFloat(tok.Lexeme)}
	case lexer.Str:
		p.advance()
		return &ast.Str{Location: loc, Value: tok.Lexeme}
	case lexer.Bool:
		p.advance()
		return &ast.Bool{Location: loc, Value: tok.Lexeme == "true"}
	case lexer.Null:
		p.advance()
		return &ast.Null{Location: loc}
	case lexer.Undef:
		p.advance()
		return &ast.Undef{Location: loc}
	case lexer.Ident, lexer.BuiltinFunc:
		p.advance()
		return &ast.Identifier{Location: loc, Name: tok.Lexeme}
	case lexer.KwIdent:
		p.advance()

		if tok.Lexeme == "self" {
			return &ast.Self{Location: loc}
		}

		return &ast.Identifier{Location: loc, Name: tok.Lexeme}
	case lexer.LParen:
		p.advance()

		inner := p.parseExpr()
		p.expect(lexer.RParen, "')'")

		return inner
	case lexer.LBracket:
		return p.parseArrayLiteral()
	case lexer.LBrace:
		return p.parseObjectLiteral()
	}

	p.errorf("unexpected token in expression")
	p.advance()

	return &ast.Undef{Location: loc}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	loc := p.curLoc()
	p.advance() // '['

	var elems []ast.ArrayElement

	for !p.check(lexer.RBracket) && !p.atEnd() {
		spread := false

		// Spread is written `...expr`; the lexer has no single token for
		// "...", so three consecutive Dot tokens are matched here.
		if p.check(lexer.Dot) && p.peekAt(1).Kind == lexer.Dot && p.peekAt(2).Kind == lexer.Dot {
			p.advance()
			p.advance()
			p.advance()

			spread = true
		}

		elems = append(elems, ast.ArrayElement{Value: p.parseExpr(), Spread: spread})

		if !p.match(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.RBracket, "']'")

	return &ast.Array{Location: loc, Elements: elems}
}

func (p *Parser) parseObjectLiteral() ast.Expr {
	loc := p.curLoc()
	p.advance() // '{'

	var props []ast.ObjectProperty

	for !p.check(lexer.RBrace) && !p.atEnd() {
		var key string

		switch p.peek().Kind {
		case lexer.Str:
			key = p.advance().Lexeme
		case lexer.Ident, lexer.KwIdent, lexer.BuiltinFunc, lexer.TypeIdent:
			key = p.advance().Lexeme
		default:
			p.errorf("expected object key")
			p.advance()

			continue
		}

		p.expect(lexer.Colon, "':'")

		value := p.parseExpr()

		props = append(props, ast.ObjectProperty{Key: key, Value: value})

		if !p.match(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.RBrace, "'}'")

	return &ast.Object{Location: loc, Properties: props}
}
