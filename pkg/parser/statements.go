package parser

import (
	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/lexer"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// parseStatements parses statements until stop reports true, recovering at
// statement boundaries after an error so a single bad statement does not
// poison the rest of the block.
func (p *Parser) parseStatements(stop func() bool) []ast.Stmt {
	var stmts []ast.Stmt

	for !stop() && !p.atEnd() {
		before := p.pos

		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}

		if p.pos == before {
			// parseStatement made no progress (e.g. totally unexpected
			// token); force advancement so recovery terminates.
			p.errorf("unexpected token")
			p.synchronize()
		}
	}

	return stmts
}

func (p *Parser) parseBlock() *ast.Block {
	loc := p.curLoc()
	p.expect(lexer.LBrace, "'{'")

	stmts := p.parseStatements(func() bool { return p.check(lexer.RBrace) })

	p.expect(lexer.RBrace, "'}'")

	return &ast.Block{Location: loc, Statements: stmts}
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.peek().Kind {
	case lexer.KwIdent:
		switch p.peek().Lexeme {
		case "if":
			return p.parseIf()
		}
	case lexer.DigL:
		return p.parseLoop()
	case lexer.DigT:
		return p.parseTry()
	case lexer.DigR:
		return p.parseReturn()
	case lexer.DigB:
		return p.parseBreak()
	case lexer.DigN:
		return p.parseNext()
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.Semicolon:
		p.advance()
		return nil
	}

	if p.check(lexer.Ident) {
		next := p.peekAt(1).Kind
		if next == lexer.DigDeclare || next == lexer.DigTypeOpen ||
			(next == lexer.Colon && (p.peekAt(2).Kind == lexer.LBracket || p.peekAt(2).Kind == lexer.LParen)) {
			return p.parseVarOrFuncDecl()
		}
	}

	return p.parseAssignOrExprStatement()
}

// parseVarOrFuncDecl handles `Ident := Expr` and its typed forms
// `Ident:<T>:= Expr`, `Ident:[T]:= Expr` and `Ident:(T):= Expr` (§4.4). A
// declaration whose initializer is a bare `(params){body}` (optionally with
// a return-type annotation after the parameter list) is equivalent to a
// function declaration and is lowered identically by codegen, so it
// produces an *ast.FuncDecl here. A return type written before the `=`
// (`Ident :<Ret>= (params){body}`) is not parsed: the lexer reads its `>=`
// as one token, so the annotation is reported as malformed.
func (p *Parser) parseVarOrFuncDecl() ast.Stmt {
	loc := p.curLoc()
	name := p.advance().Lexeme

	var typeAnnot *ast.TypeAnnotation
	if p.check(lexer.DigTypeOpen) || p.check(lexer.Colon) {
		typeAnnot = p.parseTypeAnnotation()
	}

	p.expect(lexer.DigDeclare, "':='")

	if fn := p.tryParseFuncLiteral(name, loc); fn != nil {
		return fn
	}

	init := p.parseExpr()

	return &ast.VarDecl{
		Location:    loc,
		Name:        name,
		Type:        typeAnnot,
		Initializer: init,
		IsConst:     typeAnnot != nil && typeAnnot.IsConst,
	}
}

// parseTypeAnnotation parses `:<T>`, the form lexed through DigTypeOpen;
// the `:[T]` and `:(T)` forms share the same grammar position but are
// lexed as plain punctuation, so they are recognised here too.
func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	loc := p.curLoc()

	if p.match(lexer.DigTypeOpen) {
		name := p.parseTypeName()
		p.expect(lexer.Gt, "'>'")

		return &ast.TypeAnnotation{Location: loc, Name: name, IsConst: false}
	}

	if p.match(lexer.Colon) {
		switch {
		case p.match(lexer.LBracket):
			name := p.parseTypeName()
			p.expect(lexer.RBracket, "']'")

			return &ast.TypeAnnotation{Location: loc, Name: name, IsConst: false}
		case p.match(lexer.LParen):
			name := p.parseTypeName()
			p.expect(lexer.RParen, "')'")

			return &ast.TypeAnnotation{Location: loc, Name: name, IsConst: true}
		}
	}

	p.errorf("expected type annotation")

	return &ast.TypeAnnotation{Location: loc}
}

func (p *Parser) parseTypeName() string {
	if p.check(lexer.TypeIdent) || p.check(lexer.Ident) {
		return p.advance().Lexeme
	}

	p.errorf("expected type name")

	return ""
}

// tryParseFuncLiteral recognises `(params){body}` at the current position
// and, if matched, consumes and returns a FuncDecl; otherwise it leaves the
// parser position untouched and returns nil so the caller falls back to
// ordinary expression parsing.
func (p *Parser) tryParseFuncLiteral(name string, loc source.Location) *ast.FuncDecl {
	if !p.check(lexer.LParen) {
		return nil
	}

	if !p.looksLikeParamList() {
		return nil
	}

	start := p.pos
	params := p.parseParamList()

	var retType *ast.TypeAnnotation
	if p.check(lexer.DigTypeOpen) || p.check(lexer.Colon) {
		retType = p.parseTypeAnnotation()
	}

	if !p.check(lexer.LBrace) {
		p.pos = start
		return nil
	}

	body := p.parseBlock()

	return &ast.FuncDecl{
		Location:   loc,
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}
}

// looksLikeParamList scans ahead from the current '(' to decide whether it
// opens a parameter list (followed, after the matching ')', optionally by
// a return-type annotation and then '{') rather than a parenthesized
// expression. It does not consume tokens.
func (p *Parser) looksLikeParamList() bool {
	depth := 0
	i := 0

	for {
		tok := p.peekAt(i)
		switch tok.Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
			if depth == 0 {
				next := p.peekAt(i + 1)
				return next.Kind == lexer.LBrace || next.Kind == lexer.DigTypeOpen || next.Kind == lexer.Colon
			}
		case lexer.EOF:
			return false
		}

		i++

		if i > 4096 {
			return false
		}
	}
}

func (p *Parser) parseParamList() []string {
	p.expect(lexer.LParen, "'('")

	var params []string

	for !p.check(lexer.RParen) && !p.atEnd() {
		if p.check(lexer.Ident) || p.check(lexer.KwIdent) {
			params = append(params, p.advance().Lexeme)
		} else {
			p.errorf("expected parameter name")
			break
		}

		if !p.match(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.RParen, "')'")

	return params
}

// parseIf parses `if (cond) block`. The reserved-word table (§4.2) has no
// entry for "else" — an "else" written in source is remapped like any
// other identifier before the parser ever sees it — so the grammar has no
// surface form for an else arm; ast.If keeps slice fields so a future
// dialect extension has somewhere to grow, but this parser only ever fills
// in a single condition/block pair.
func (p *Parser) parseIf() ast.Stmt {
	loc := p.curLoc()
	p.advance() // "if"

	p.expect(lexer.LParen, "'('")
	cond := p.parseExpr()
	p.expect(lexer.RParen, "')'")
	block := p.parseBlock()

	return &ast.If{Location: loc, Conds: []ast.Expr{cond}, Blocks: []*ast.Block{block}}
}

// parseLoop parses all three L>(...) forms of §4.4, distinguished by the
// shape inside the parens: `[n]` repeat, `init;cond;update` C-style, or
// `iter:name` foreach. An optional name label follows the digraph
// (`L> name (...)`).
func (p *Parser) parseLoop() ast.Stmt {
	loc := p.curLoc()
	p.advance() // L>

	var label string
	if p.check(lexer.Ident) && p.peekAt(1).Kind != lexer.LParen && p.peekAt(1).Kind != lexer.LBracket {
		label = p.advance().Lexeme
	}

	if p.match(lexer.LBracket) {
		count := p.parseExpr()
		p.expect(lexer.RBracket, "']'")
		body := p.parseBlock()

		return &ast.Loop{Location: loc, Kind: ast.LoopRepeat, Name: label, Count: count, Body: body}
	}

	p.expect(lexer.LParen, "'('")

	if p.isForeachHeader() {
		iter := p.parseExpr()
		p.expect(lexer.Colon, "':'")
		binding := p.expect(lexer.Ident, "binding name").Lexeme
		p.expect(lexer.RParen, "')'")
		body := p.parseBlock()

		return &ast.Loop{Location: loc, Kind: ast.LoopForeach, Name: label, IterExpr: iter, Binding: binding, Body: body}
	}

	var initStmt ast.Stmt
	if p.check(lexer.Ident) && p.peekAt(1).Kind == lexer.DigDeclare {
		initStmt = p.parseVarOrFuncDecl()
		p.match(lexer.Semicolon)
	} else if !p.check(lexer.Semicolon) {
		initStmt = p.parseAssignOrExprStatement()
	} else {
		p.advance()
	}

	var cond ast.Expr
	if !p.check(lexer.Semicolon) {
		cond = p.parseExpr()
	}

	p.expect(lexer.Semicolon, "';'")

	var update ast.Stmt
	if !p.check(lexer.RParen) {
		update = p.parseAssignOrExprNoTerminator()
	}

	p.expect(lexer.RParen, "')'")

	body := p.parseBlock()

	return &ast.Loop{Location: loc, Kind: ast.LoopFor, Name: label, Init: initStmt, Cond: cond, Update: update, Body: body}
}

// isForeachHeader looks ahead for a top-level ':' before the matching ')'
// at paren depth 0, which distinguishes `(iter:name)` from `(init;cond;update)`.
func (p *Parser) isForeachHeader() bool {
	depth := 0
	i := 0

	for {
		tok := p.peekAt(i)

		switch tok.Kind {
		case lexer.LParen, lexer.LBracket:
			depth++
		case lexer.RParen:
			if depth == 0 {
				return false
			}

			depth--
		case lexer.RBracket:
			depth--
		case lexer.Semicolon:
			if depth == 0 {
				return false
			}
		case lexer.Colon:
			if depth == 0 {
				return true
			}
		case lexer.EOF:
			return false
		}

		i++

		if i > 4096 {
			return false
		}
	}
}

func (p *Parser) parseTry() ast.Stmt {
	loc := p.curLoc()
	p.advance() // T>

	body := p.parseBlock()

	t := &ast.Try{Location: loc, Body: body}

	if p.check(lexer.LParen) {
		p.advance()
		t.CatchName = p.expect(lexer.Ident, "catch binding name").Lexeme
		p.expect(lexer.RParen, "')'")
		t.HasCatch = true
		t.CatchBody = p.parseBlock()
	}

	if p.check(lexer.LBrace) {
		t.FinallyBody = p.parseBlock()
	}

	return t
}

func (p *Parser) parseReturn() ast.Stmt {
	loc := p.curLoc()
	p.advance() // R>

	if p.check(lexer.Semicolon) || p.check(lexer.RBrace) {
		return &ast.Return{Location: loc}
	}

	return &ast.Return{Location: loc, Value: p.parseExpr()}
}

func (p *Parser) parseBreak() ast.Stmt {
	loc := p.curLoc()
	p.advance() // B>

	var label string
	if p.check(lexer.Ident) {
		label = p.advance().Lexeme
	}

	return &ast.Break{Location: loc, Label: label}
}

func (p *Parser) parseNext() ast.Stmt {
	loc := p.curLoc()
	p.advance() // N>

	var label string
	if p.check(lexer.Ident) {
		label = p.advance().Lexeme
	}

	return &ast.Next{Location: loc, Label: label}
}

// parseAssignOrExprStatement parses a top-level statement that is either an
// assignment or a bare expression, consuming a trailing ';' if present
// (the normalizer has already turned most statement-separating newlines
// into ';', but a final statement in a block may omit it).
func (p *Parser) parseAssignOrExprStatement() ast.Stmt {
	stmt := p.parseAssignOrExprNoTerminator()

	p.match(lexer.Semicolon)

	return stmt
}

func (p *Parser) parseAssignOrExprNoTerminator() ast.Stmt {
	loc := p.curLoc()

	expr := p.parseExpr()

	if p.check(lexer.Assign) {
		p.advance()
		value := p.parseExpr()

		return &ast.AssignStmt{Location: loc, Target: expr, Value: value}
	}

	return &ast.ExprStmt{Location: loc, Value: expr}
}
