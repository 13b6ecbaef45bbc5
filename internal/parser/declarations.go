package parser

import (
	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/token"
)

// parseClass reads a class declaration with its direct body. Only annotated
// fields are retained from the body; methods and nested statements are
// consumed and dropped.
func (p *Parser) parseClass() ast.Statement {
	start := p.curToken
	p.nextToken()
	if !p.curTokenIs(token.IDENT) {
		p.addError(p.curToken, "expected class name")
		p.skipStatement()
		return nil
	}
	decl := &ast.ClassDeclaration{Name: p.curToken.Lexeme}
	p.nextToken()

	if p.curTokenIs(token.LPAREN) {
		p.nextToken()
		for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
				kw := ast.Keyword{Arg: p.curToken.Lexeme}
				p.nextToken() // onto '='
				p.nextToken() // onto the value
				kw.Value = p.tryParseValue(token.COMMA, token.RPAREN)
				decl.Keywords = append(decl.Keywords, kw)
				continue
			}
			base := p.tryParseValue(token.COMMA, token.RPAREN)
			decl.Bases = append(decl.Bases, base)
		}
		if !p.expect(token.RPAREN) {
			p.skipStatement()
			return nil
		}
	}

	if !p.curTokenIs(token.COLON) {
		p.addError(p.curToken, "expected ':' after class header")
		p.skipStatement()
		return nil
	}
	p.nextToken()

	end := p.parseClassBody(decl)
	decl.Span = ast.SpanFromTokens(start, end)
	return decl
}

// parseClassBody collects the annotated fields of a class block.
func (p *Parser) parseClassBody(decl *ast.ClassDeclaration) token.Token {
	// One-liner body: class Foo(Base): pass
	if !p.curTokenIs(token.NEWLINE) {
		return p.skipLogicalLine()
	}
	p.nextToken()
	if !p.curTokenIs(token.INDENT) {
		// Empty body (syntactically invalid source); nothing to collect.
		return p.curToken
	}
	p.nextToken()

	end := p.curToken
	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.NEWLINE, token.SEMICOLON:
			p.nextToken()
		case token.AT:
			p.skipLogicalLine()
		case token.DEF, token.CLASS, token.ASYNC, token.IMPORT, token.FROM, token.PASS:
			end = p.skipStatement()
		default:
			if stmt := p.parseAssignLike(); stmt != nil {
				if annAssign, ok := stmt.(*ast.AnnAssignStatement); ok {
					decl.Body = append(decl.Body, annAssign)
				}
				end = p.tokenAt(p.pos - 2)
			}
		}
	}
	if p.curTokenIs(token.DEDENT) {
		end = p.curToken
		p.nextToken()
	}
	return end
}

// parseFunction reads a def header in full and skips the body.
func (p *Parser) parseFunction() ast.Statement {
	start := p.curToken
	p.nextToken()
	if !p.curTokenIs(token.IDENT) {
		p.addError(p.curToken, "expected function name")
		p.skipStatement()
		return nil
	}
	decl := &ast.FunctionDeclaration{Name: p.curToken.Lexeme}
	p.nextToken()

	if !p.curTokenIs(token.LPAREN) {
		p.addError(p.curToken, "expected '(' after function name")
		p.skipStatement()
		return nil
	}
	p.nextToken()
	if !p.parseParams(decl) {
		p.skipStatement()
		return nil
	}
	// curToken is RPAREN here.
	p.nextToken()

	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		returns := p.parseExpression(LOWEST)
		if returns == nil {
			p.skipStatement()
			return nil
		}
		decl.Returns = returns
		p.nextToken()
	}

	if !p.curTokenIs(token.COLON) {
		p.addError(p.curToken, "expected ':' after function signature")
		p.skipStatement()
		return nil
	}
	p.nextToken()

	// Skip the body, keeping its extent for the declaration span.
	var end token.Token
	if p.curTokenIs(token.NEWLINE) {
		p.nextToken()
		if p.curTokenIs(token.INDENT) {
			end = p.skipBlock()
		} else {
			end = p.curToken
		}
	} else {
		end = p.skipLogicalLine()
	}
	decl.Span = ast.SpanFromTokens(start, end)
	return decl
}

// parseParams reads the parameter list up to (not past) the closing paren.
// Defaults for positional parameters are collected unpadded; keyword-only
// defaults are padded with nils, mirroring how the two default lists align
// differently against their parameter lists.
func (p *Parser) parseParams(decl *ast.FunctionDeclaration) bool {
	kwOnly := false
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		switch {
		case p.curTokenIs(token.COMMA):
			p.nextToken()
		case p.curTokenIs(token.SLASH):
			// Positional-only marker: everything seen so far moves over.
			decl.PosOnlyArgs = decl.Args
			decl.Args = nil
			p.nextToken()
		case p.curTokenIs(token.STAR):
			p.nextToken()
			if p.curTokenIs(token.COMMA) || p.curTokenIs(token.RPAREN) {
				kwOnly = true
				continue
			}
			param, ok := p.parseParam()
			if !ok {
				return false
			}
			decl.VarArg = param
			kwOnly = true
		case p.curTokenIs(token.DOUBLESTAR):
			p.nextToken()
			param, ok := p.parseParam()
			if !ok {
				return false
			}
			decl.KwArg = param
		case p.curTokenIs(token.IDENT):
			param, ok := p.parseParam()
			if !ok {
				return false
			}
			var def ast.Expression
			if p.curTokenIs(token.ASSIGN) {
				p.nextToken()
				def = p.tryParseValue(token.COMMA, token.RPAREN)
			}
			if kwOnly {
				decl.KwOnlyArgs = append(decl.KwOnlyArgs, param)
				decl.KwDefaults = append(decl.KwDefaults, def)
			} else {
				decl.Args = append(decl.Args, param)
				if def != nil {
					decl.Defaults = append(decl.Defaults, def)
				}
			}
		default:
			p.addError(p.curToken, "unexpected token %q in parameter list", p.curToken.Lexeme)
			return false
		}
	}
	return p.curTokenIs(token.RPAREN)
}

// parseParam reads `name [: annotation]` and leaves curToken on the token
// after it (',' , '=' or ')').
func (p *Parser) parseParam() (*ast.Param, bool) {
	if !p.curTokenIs(token.IDENT) {
		p.addError(p.curToken, "expected parameter name, found %q", p.curToken.Lexeme)
		return nil, false
	}
	param := &ast.Param{Span: ast.SpanFromTokens(p.curToken, p.curToken), Name: p.curToken.Lexeme}
	p.nextToken()
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		annotation := p.parseExpression(LOWEST)
		if annotation == nil {
			return nil, false
		}
		param.Annotation = annotation
		param.Span.EndLine = annotation.GetSpan().EndLine
		param.Span.EndCol = annotation.GetSpan().EndCol
		p.nextToken()
	}
	return param, true
}
