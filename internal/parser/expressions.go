package parser

import (
	"strconv"
	"strings"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addError(p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, "unexpected token %q in expression", p.curToken.Lexeme)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}
	return leftExp
}

func (p *Parser) parseName() ast.Expression {
	return &ast.Name{Span: ast.SpanFromTokens(p.curToken, p.curToken), Value: p.curToken.Lexeme}
}

func (p *Parser) parseConstant() ast.Expression {
	tok := p.curToken
	span := ast.SpanFromTokens(tok, tok)
	switch tok.Type {
	case token.NONE:
		return &ast.Constant{Span: span, ConstKind: ast.ConstNone}
	case token.TRUE:
		return &ast.Constant{Span: span, ConstKind: ast.ConstBool, Bool: true}
	case token.FALSE:
		return &ast.Constant{Span: span, ConstKind: ast.ConstBool, Bool: false}
	case token.STRING:
		return &ast.Constant{Span: span, ConstKind: ast.ConstString, Str: tok.Literal}
	case token.BYTES:
		return &ast.Constant{Span: span, ConstKind: ast.ConstBytes, Str: tok.Literal}
	case token.ELLIPSIS:
		return &ast.Constant{Span: span, ConstKind: ast.ConstEllipsis}
	case token.IMAG:
		return &ast.Constant{Span: span, ConstKind: ast.ConstComplex}
	case token.FLOAT:
		val, err := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
		if err != nil {
			p.addError(tok, "invalid float literal %q", tok.Lexeme)
			return nil
		}
		return &ast.Constant{Span: span, ConstKind: ast.ConstFloat, Float: val}
	case token.INT:
		digits := strings.ReplaceAll(tok.Literal, "_", "")
		val, err := strconv.ParseInt(digits, 0, 64)
		if err != nil {
			// Out of int64 range: degrade to float, the shape survives.
			f, ferr := strconv.ParseFloat(digits, 64)
			if ferr != nil {
				p.addError(tok, "invalid integer literal %q", tok.Lexeme)
				return nil
			}
			return &ast.Constant{Span: span, ConstKind: ast.ConstFloat, Float: f}
		}
		return &ast.Constant{Span: span, ConstKind: ast.ConstInt, Int: val}
	}
	p.addError(tok, "unexpected constant %q", tok.Lexeme)
	return nil
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.UnaryOp{
		Span:    ast.Span{Line: tok.Line, Column: tok.Column, EndLine: operand.GetSpan().EndLine, EndCol: operand.GetSpan().EndCol},
		Op:      tok.Lexeme,
		Operand: operand,
	}
}

func (p *Parser) parseBinOp(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := precedences[tok.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.BinOp{
		Span:  ast.Span{Line: left.GetSpan().Line, Column: left.GetSpan().Column, EndLine: right.GetSpan().EndLine, EndCol: right.GetSpan().EndCol},
		Left:  left,
		Op:    tok.Lexeme,
		Right: right,
	}
}

func (p *Parser) parseAttribute(left ast.Expression) ast.Expression {
	// curToken is DOT
	if !p.peekTokenIs(token.IDENT) {
		p.addError(p.peekToken, "expected attribute name after '.'")
		return nil
	}
	p.nextToken()
	return &ast.Attribute{
		Span:  ast.Span{Line: left.GetSpan().Line, Column: left.GetSpan().Column, EndLine: p.curToken.EndLine, EndCol: p.curToken.EndCol},
		Value: left,
		Attr:  p.curToken.Lexeme,
	}
}

// parseSubscript reads C[elem] or C[elem, elem, ...]. Multiple elements and
// trailing commas produce a Tuple index, matching how the annotation
// grammar distinguishes single- from multi-argument forms.
func (p *Parser) parseSubscript(left ast.Expression) ast.Expression {
	lbracket := p.curToken
	p.nextToken()

	var elems []ast.Expression
	trailingComma := false
	for !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.EOF) {
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			trailingComma = true
			continue
		}
		trailingComma = false
		p.nextToken()
		break
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.addError(p.curToken, "expected ']' in subscript, found %q", p.curToken.Lexeme)
		return nil
	}
	if len(elems) == 0 {
		p.addError(lbracket, "empty subscript")
		return nil
	}

	span := ast.Span{Line: left.GetSpan().Line, Column: left.GetSpan().Column, EndLine: p.curToken.EndLine, EndCol: p.curToken.EndCol}
	var index ast.Expression
	if len(elems) == 1 && !trailingComma {
		index = elems[0]
	} else {
		first, last := elems[0].GetSpan(), elems[len(elems)-1].GetSpan()
		index = &ast.Tuple{
			Span:  ast.Span{Line: first.Line, Column: first.Column, EndLine: last.EndLine, EndCol: last.EndCol},
			Elems: elems,
		}
	}
	return &ast.Subscript{Span: span, Value: left, Index: index}
}

// parseCall consumes a call's arguments without modeling them. Calls are
// never valid annotations; the node survives so diagnostics can name it.
func (p *Parser) parseCall(left ast.Expression) ast.Expression {
	// curToken is LPAREN
	end := p.skipBalanced(token.LPAREN, token.RPAREN)
	return &ast.Call{
		Span: ast.Span{Line: left.GetSpan().Line, Column: left.GetSpan().Column, EndLine: end.EndLine, EndCol: end.EndCol},
		Func: left,
	}
}

// parseGrouped handles parenthesized expressions. A single inner expression
// unwraps; anything with commas or unsupported content degrades to a Tuple
// or Opaque node.
func (p *Parser) parseGrouped() ast.Expression {
	lparen := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.Tuple{Span: ast.SpanFromTokens(lparen, p.curToken)}
	}

	pos, errCount := p.mark()
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if inner != nil && p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return inner
	}
	if inner != nil && p.peekTokenIs(token.COMMA) {
		elems := []ast.Expression{inner}
		p.nextToken()
		for p.curTokenIs(token.COMMA) {
			if p.peekTokenIs(token.RPAREN) {
				p.nextToken()
				break
			}
			p.nextToken()
			next := p.parseExpression(LOWEST)
			if next == nil {
				p.reset(pos, errCount)
				end := p.skipBalanced(token.LPAREN, token.RPAREN)
				return &ast.Opaque{Span: ast.SpanFromTokens(lparen, end), What: "Tuple"}
			}
			elems = append(elems, next)
			p.nextToken()
		}
		if p.curTokenIs(token.RPAREN) {
			return &ast.Tuple{Span: ast.SpanFromTokens(lparen, p.curToken), Elems: elems}
		}
	}

	// Generator expressions, yields, starred items and friends: consume
	// the group, keep going.
	p.reset(pos, errCount)
	end := p.skipBalanced(token.LPAREN, token.RPAREN)
	return &ast.Opaque{Span: ast.SpanFromTokens(lparen, end), What: "Expression"}
}

// parseDisplay consumes list/set/dict displays as opaque nodes.
func (p *Parser) parseDisplay() ast.Expression {
	open := p.curToken
	what := "List"
	closing := token.RBRACKET
	if open.Type == token.LBRACE {
		what = "Dict"
		closing = token.RBRACE
	}
	end := p.skipBalanced(open.Type, closing)
	return &ast.Opaque{Span: ast.SpanFromTokens(open, end), What: what}
}

// skipBalanced consumes from the current opening token through its matching
// closing token, counting nesting of all three bracket kinds. Returns the
// closing token.
func (p *Parser) skipBalanced(open, close token.TokenType) token.Token {
	depth := 0
	for {
		switch p.curToken.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			if depth == 0 {
				return p.curToken
			}
		case token.EOF:
			return p.curToken
		}
		p.nextToken()
	}
}

// tryParseValue parses an expression whose shape may not matter (assignment
// right-hand sides, parameter defaults). When the subset parser cannot
// model it, the tokens are consumed up to a terminator and an Opaque node
// stands in.
func (p *Parser) tryParseValue(terminators ...token.TokenType) ast.Expression {
	pos, errCount := p.mark()
	start := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr != nil && p.peekIsOneOf(terminators) {
		p.nextToken()
		return expr
	}
	p.reset(pos, errCount)
	last := p.curToken
	depth := 0
	lambdaParams := false
	for {
		switch p.curToken.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if depth == 0 {
				return &ast.Opaque{Span: ast.SpanFromTokens(start, last), What: start.Lexeme}
			}
			depth--
		case token.IDENT:
			// A lambda's parameter commas belong to the lambda, not to
			// the surrounding list, until its ':' is passed.
			if depth == 0 && p.curToken.Lexeme == "lambda" {
				lambdaParams = true
			}
		case token.COLON:
			if depth == 0 {
				lambdaParams = false
			}
		case token.EOF:
			return &ast.Opaque{Span: ast.SpanFromTokens(start, last), What: start.Lexeme}
		}
		if depth == 0 && !(lambdaParams && p.curTokenIs(token.COMMA)) {
			for _, t := range terminators {
				if p.curTokenIs(t) {
					return &ast.Opaque{Span: ast.SpanFromTokens(start, last), What: start.Lexeme}
				}
			}
		}
		last = p.curToken
		p.nextToken()
	}
}

func (p *Parser) peekIsOneOf(types []token.TokenType) bool {
	for _, t := range types {
		if p.peekTokenIs(t) {
			return true
		}
	}
	return false
}
