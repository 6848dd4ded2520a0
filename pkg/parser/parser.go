// Package parser implements the recursive-descent, precedence-climbing
// parser of §4.4: it consumes the lexer's token stream and produces an
// *ast.Program. Errors are recovered at the next top-level `;` or `}` so a
// single pass can surface every syntax mistake in a file, not just the
// first.
package parser

import (
	"fmt"
	"strconv"

	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/lexer"
	"github.com/flyuxc/flyuxc/pkg/source"
)

// Parser holds the token stream and cursor plus the diagnostics collector
// that error recovery feeds as it resynchronizes.
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostics.Diagnostics
}

// Parse runs the parser over a complete token stream (as produced by
// lexer.Lex, always EOF-terminated) and returns the program AST together
// with any diagnostics collected during error recovery. Both results are
// always non-nil; the collector is empty when the stream parsed cleanly.
func Parse(tokens []lexer.Token) (*ast.Program, *diagnostics.Diagnostics) {
	p := &Parser{tokens: tokens, diags: &diagnostics.Diagnostics{}}

	stmts := p.parseStatements(func() bool { return p.atEnd() })

	prog := &ast.Program{Statements: stmts}
	if len(tokens) > 0 {
		prog.Location = p.locFor(tokens[0])
	}

	return prog, p.diags
}

func (p *Parser) atEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *Parser) peek() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(off int) lexer.Token {
	i := p.pos + off
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}

	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Kind != lexer.EOF {
		p.pos++
	}

	return tok
}

func (p *Parser) check(k lexer.Kind) bool { return p.peek().Kind == k }

func (p *Parser) match(k lexer.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}

	return false
}

// expect consumes a token of kind k or records a diagnostic and returns the
// current token without consuming it; callers continue parsing with best-effort recovery rather
// than aborting, per §4.4.
func (p *Parser) expect(k lexer.Kind, what string) lexer.Token {
	if p.check(k) {
		return p.advance()
	}

	p.errorf("expected %s", what)

	return p.peek()
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.peek()
	p.diags.Add(diagnostics.New(diagnostics.StageParse, tok.OrigLine, tok.OrigColumn, fmt.Sprintf(format, args...)))
}

func (p *Parser) locFor(tok lexer.Token) source.Location {
	return source.Location{Line: tok.OrigLine, Column: tok.OrigColumn, Length: tok.OrigLength}
}

func (p *Parser) curLoc() source.Location { return p.locFor(p.peek()) }

// parseFloat converts a lexer-verified numeric lexeme to its double value.
// The lexer only ever produces well-formed numeric lexemes, so a parse
// failure here would indicate a lexer bug rather than bad input.
func parseFloat(lexeme string) float64 {
	v, _ := strconv.ParseFloat(lexeme, 64)
	return v
}

// synchronize advances past tokens until it reaches a statement boundary
// (it consumes a `;` and stops before a `}`), so a single
// malformed statement does not cascade into spurious downstream errors.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		switch p.peek().Kind {
		case lexer.Semicolon:
			p.advance()
			return
		case lexer.RBrace:
			return
		}

		p.advance()
	}
}
