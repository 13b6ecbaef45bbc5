package parser

import (
	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/token"
)

// ParseModule reads every top-level statement. Recognized declaration forms
// become AST nodes; everything else is consumed and dropped.
func (p *Parser) ParseModule() *ast.Module {
	m := &ast.Module{File: p.ctx.FilePath}
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.NEWLINE, token.SEMICOLON, token.INDENT, token.DEDENT:
			p.nextToken()
		case token.AT:
			// Decorator: skip the line, the decorated def/class follows.
			p.skipLogicalLine()
		case token.IMPORT:
			if stmt := p.parseImport(); stmt != nil {
				m.Body = append(m.Body, stmt)
			}
		case token.FROM:
			if stmt := p.parseImportFrom(); stmt != nil {
				m.Body = append(m.Body, stmt)
			}
		case token.CLASS:
			if stmt := p.parseClass(); stmt != nil {
				m.Body = append(m.Body, stmt)
			}
		case token.DEF:
			if stmt := p.parseFunction(); stmt != nil {
				m.Body = append(m.Body, stmt)
			}
		case token.ASYNC:
			p.skipStatement()
		default:
			if stmt := p.parseAssignLike(); stmt != nil {
				m.Body = append(m.Body, stmt)
			}
		}
	}
	return m
}

// skipLogicalLine consumes through the next NEWLINE. Newlines inside
// brackets never reach the token stream, so this skips whole logical lines.
func (p *Parser) skipLogicalLine() token.Token {
	last := p.curToken
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
		last = p.curToken
		p.nextToken()
	}
	if p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
	return last
}

// skipStatement consumes a statement including any indented block hanging
// off it. Returns the last meaningful token, used for span ends.
func (p *Parser) skipStatement() token.Token {
	last := p.skipLogicalLine()
	if p.curTokenIs(token.INDENT) {
		last = p.skipBlock()
	}
	return last
}

// skipBlock consumes a balanced INDENT..DEDENT region.
func (p *Parser) skipBlock() token.Token {
	last := p.curToken
	depth := 0
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.INDENT:
			depth++
		case token.DEDENT:
			depth--
			if depth == 0 {
				p.nextToken()
				return last
			}
		case token.NEWLINE:
		default:
			last = p.curToken
		}
		p.nextToken()
	}
	return last
}

// parseImport reads `import a.b as c, d`.
func (p *Parser) parseImport() ast.Statement {
	start := p.curToken
	p.nextToken()

	var names []ast.Alias
	for {
		name, ok := p.parseDottedIdent()
		if !ok {
			p.skipLogicalLine()
			return nil
		}
		alias := ast.Alias{Name: name}
		if p.curTokenIs(token.AS) {
			p.nextToken()
			if !p.curTokenIs(token.IDENT) {
				p.addError(p.curToken, "expected name after 'as'")
				p.skipLogicalLine()
				return nil
			}
			alias.AsName = p.curToken.Lexeme
			p.nextToken()
		}
		names = append(names, alias)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	end := p.skipLogicalLine()
	return &ast.ImportStatement{Span: ast.SpanFromTokens(start, end), Names: names}
}

// parseImportFrom reads `from [dots][module] import names`. Leading dots
// set the relative-import level.
func (p *Parser) parseImportFrom() ast.Statement {
	start := p.curToken
	p.nextToken()

	level := 0
	for {
		if p.curTokenIs(token.DOT) {
			level++
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.ELLIPSIS) {
			level += 3
			p.nextToken()
			continue
		}
		break
	}

	module := ""
	if p.curTokenIs(token.IDENT) {
		name, ok := p.parseDottedIdent()
		if !ok {
			p.skipLogicalLine()
			return nil
		}
		module = name
	}
	if !p.curTokenIs(token.IMPORT) {
		p.addError(p.curToken, "expected 'import' in from-import")
		p.skipLogicalLine()
		return nil
	}
	p.nextToken()

	var names []ast.Alias
	if p.curTokenIs(token.STAR) {
		names = append(names, ast.Alias{Name: "*"})
		p.nextToken()
	} else {
		parenthesized := p.curTokenIs(token.LPAREN)
		if parenthesized {
			p.nextToken()
		}
		for p.curTokenIs(token.IDENT) {
			alias := ast.Alias{Name: p.curToken.Lexeme}
			p.nextToken()
			if p.curTokenIs(token.AS) {
				p.nextToken()
				if !p.curTokenIs(token.IDENT) {
					p.addError(p.curToken, "expected name after 'as'")
					p.skipLogicalLine()
					return nil
				}
				alias.AsName = p.curToken.Lexeme
				p.nextToken()
			}
			names = append(names, alias)
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if parenthesized && !p.expect(token.RPAREN) {
			p.skipLogicalLine()
			return nil
		}
	}
	if len(names) == 0 {
		p.addError(p.curToken, "expected import names")
		p.skipLogicalLine()
		return nil
	}
	end := p.skipLogicalLine()
	return &ast.ImportFromStatement{Span: ast.SpanFromTokens(start, end), Module: module, Names: names, Level: level}
}

func (p *Parser) parseDottedIdent() (string, bool) {
	if !p.curTokenIs(token.IDENT) {
		p.addError(p.curToken, "expected name, found %q", p.curToken.Lexeme)
		return "", false
	}
	name := p.curToken.Lexeme
	p.nextToken()
	for p.curTokenIs(token.DOT) && p.peekTokenIs(token.IDENT) {
		p.nextToken()
		name += "." + p.curToken.Lexeme
		p.nextToken()
	}
	return name, true
}

// parseAssignLike speculatively reads `target = value`,
// `target: annotation [= value]`, or gives up and skips the statement.
// Expression statements and anything the subset cannot model are dropped
// without diagnostics, matching how unrecognized declarations are ignored.
// reservedWords are keywords the lexer leaves as IDENT because no
// declaration form dispatches on them. A statement starting with one can
// never be an assignment, and compound ones drag an indented block that
// must be skipped with the statement.
var reservedWords = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"try": true, "except": true, "finally": true, "with": true,
	"match": true, "case": true, "return": true, "yield": true,
	"raise": true, "assert": true, "del": true, "global": true,
	"nonlocal": true, "lambda": true, "not": true, "await": true,
	"break": true, "continue": true,
}

func (p *Parser) parseAssignLike() ast.Statement {
	if p.curTokenIs(token.IDENT) && reservedWords[p.curToken.Lexeme] {
		p.skipStatement()
		return nil
	}

	pos, errCount := p.mark()
	start := p.curToken

	target := p.parseExpression(LOWEST)
	if target == nil {
		p.reset(pos, errCount)
		p.skipStatement()
		return nil
	}

	switch p.peekToken.Type {
	case token.ASSIGN:
		p.nextToken() // onto '='
		targets := []ast.Expression{target}
		var value ast.Expression
		for p.curTokenIs(token.ASSIGN) {
			p.nextToken() // onto the value's first token
			value = p.tryParseValue(token.ASSIGN, token.NEWLINE, token.SEMICOLON, token.EOF)
			if p.curTokenIs(token.ASSIGN) {
				// Chained assignment: what we read was another target.
				targets = append(targets, value)
			}
		}
		end := p.skipLogicalLine()
		return &ast.AssignStatement{Span: ast.SpanFromTokens(start, end), Targets: targets, Value: value}
	case token.COLON:
		p.nextToken() // onto ':'
		p.nextToken() // onto the annotation's first token
		annotation := p.tryParseValue(token.ASSIGN, token.NEWLINE, token.SEMICOLON, token.EOF)
		var value ast.Expression
		if p.curTokenIs(token.ASSIGN) {
			p.nextToken()
			value = p.tryParseValue(token.NEWLINE, token.SEMICOLON, token.EOF)
		}
		end := p.skipLogicalLine()
		return &ast.AnnAssignStatement{Span: ast.SpanFromTokens(start, end), Target: target, Annotation: annotation, Value: value}
	default:
		// Plain expression statement, augmented assignment, tuple
		// unpacking and the rest: not schema-relevant.
		p.reset(pos, errCount)
		p.skipStatement()
		return nil
	}
}
