// Package parser reads Python source into the declaration forms the schema
// compiler consumes: imports, assignments, annotated assignments, class
// declarations and function signatures. Every other statement shape is
// skipped by logical line or block, so arbitrary module code parses cleanly
// without being modeled.
package parser

import (
	"fmt"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/diagnostics"
	"github.com/funvibe/pyschema/internal/pipeline"
	"github.com/funvibe/pyschema/internal/token"
)

const MaxRecursionDepth = 200

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

const (
	LOWEST = iota
	UNION  // |
	SUM    // + -
	PRODUCT
	PREFIX
	CALL // foo(...) foo[...] foo.bar
)

var precedences = map[token.TokenType]int{
	token.PIPE:     UNION,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.STAR:     PRODUCT,
	token.SLASH:    PRODUCT,
	token.DOT:      CALL,
	token.LBRACKET: CALL,
	token.LPAREN:   CALL,
}

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseName,
		token.NONE:     p.parseConstant,
		token.TRUE:     p.parseConstant,
		token.FALSE:    p.parseConstant,
		token.INT:      p.parseConstant,
		token.FLOAT:    p.parseConstant,
		token.IMAG:     p.parseConstant,
		token.STRING:   p.parseConstant,
		token.BYTES:    p.parseConstant,
		token.ELLIPSIS: p.parseConstant,
		token.MINUS:    p.parseUnary,
		token.PLUS:     p.parseUnary,
		token.LPAREN:   p.parseGrouped,
		token.LBRACKET: p.parseDisplay,
		token.LBRACE:   p.parseDisplay,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PIPE:     p.parseBinOp,
		token.PLUS:     p.parseBinOp,
		token.MINUS:    p.parseBinOp,
		token.STAR:     p.parseBinOp,
		token.SLASH:    p.parseBinOp,
		token.DOT:      p.parseAttribute,
		token.LBRACKET: p.parseSubscript,
		token.LPAREN:   p.parseCall,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

// mark/reset allow speculative parses: statement dispatch tries to read an
// assignment and rewinds when the line turns out to be something else.
func (p *Parser) mark() (int, int) {
	return p.pos, len(p.ctx.Errors)
}

func (p *Parser) reset(pos, errCount int) {
	p.pos = pos
	p.ctx.Errors = p.ctx.Errors[:errCount]
	// Rebuild the two-token window.
	p.curToken = p.tokenAt(pos - 2)
	p.peekToken = p.tokenAt(pos - 1)
}

func (p *Parser) tokenAt(i int) token.Token {
	if i >= 0 && i < len(p.tokens) {
		return p.tokens[i]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewSyntaxError(
		p.ctx.FilePath, tok.Line, tok.Column, fmt.Sprintf(format, args...),
	))
}

func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(p.curToken, "expected %q, found %q", string(t), p.curToken.Lexeme)
	return false
}
