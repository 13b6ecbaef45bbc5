package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/pyschema/internal/token"
)

// Lexer tokenizes Python source. It is indentation-aware: INDENT and DEDENT
// tokens bracket nested blocks, NEWLINE terminates logical lines, and
// newlines inside (), [] and {} are joined implicitly.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // 1-based line of the current char
	column       int  // 0-based column of the current char

	parenDepth  int
	indents     []int
	pending     []token.Token // queued DEDENTs
	atLineStart bool
	lastType    token.TokenType
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: -1, indents: []int{0}, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = -1
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	tok := l.nextToken()
	l.lastType = tok.Type
	return tok
}

func (l *Lexer) nextToken() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.parenDepth == 0 {
		if tok, ok := l.handleIndentation(); ok {
			return tok
		}
	}

	l.skipSpaces()

	startLine, startCol := l.line, l.column

	switch {
	case l.ch == 0:
		return l.finish(startLine, startCol)
	case l.ch == '\n':
		if l.parenDepth > 0 {
			// Implicit line joining inside brackets.
			l.readChar()
			return l.nextToken()
		}
		l.readChar()
		l.atLineStart = true
		return token.Token{Type: token.NEWLINE, Lexeme: "\n", Line: startLine, Column: startCol, EndLine: startLine, EndCol: startCol + 1}
	case isLetter(l.ch):
		return l.readIdentifierOrString(startLine, startCol)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(startLine, startCol)
	case l.ch == '"' || l.ch == '\'':
		return l.readString(startLine, startCol, false, false)
	default:
		return l.readOperator(startLine, startCol)
	}
}

// handleIndentation runs at the start of every logical line. Blank and
// comment-only lines never produce layout tokens.
func (l *Lexer) handleIndentation() (token.Token, bool) {
	for {
		indent := 0
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				indent += 8 - indent%8
			} else {
				indent++
			}
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.ch == 0 {
			l.atLineStart = false
			return token.Token{}, false
		}
		l.atLineStart = false
		current := l.indents[len(l.indents)-1]
		switch {
		case indent > current:
			l.indents = append(l.indents, indent)
			return token.Token{Type: token.INDENT, Line: l.line, Column: 0, EndLine: l.line, EndCol: indent}, true
		case indent < current:
			var toks []token.Token
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > indent {
				l.indents = l.indents[:len(l.indents)-1]
				toks = append(toks, token.Token{Type: token.DEDENT, Line: l.line, Column: 0, EndLine: l.line, EndCol: 0})
			}
			if l.indents[len(l.indents)-1] != indent {
				toks = append(toks, token.Token{Type: token.ILLEGAL, Lexeme: "unindent does not match any outer indentation level", Line: l.line, Column: 0, EndLine: l.line, EndCol: indent})
			}
			l.pending = append(l.pending, toks[1:]...)
			return toks[0], true
		default:
			return token.Token{}, false
		}
	}
}

// finish emits a trailing NEWLINE for files without one, unwinds the
// indentation stack, and finally yields EOF.
func (l *Lexer) finish(line, col int) token.Token {
	if l.lastType != "" && l.lastType != token.NEWLINE && l.lastType != token.DEDENT && l.lastType != token.INDENT && l.lastType != token.EOF {
		return token.Token{Type: token.NEWLINE, Lexeme: "\n", Line: line, Column: col, EndLine: line, EndCol: col}
	}
	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		return token.Token{Type: token.DEDENT, Line: line, Column: 0, EndLine: line, EndCol: 0}
	}
	return token.Token{Type: token.EOF, Line: line, Column: col, EndLine: line, EndCol: col}
}

func (l *Lexer) skipSpaces() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifierOrString(startLine, startCol int) token.Token {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	ident := l.input[position:l.position]

	// String prefixes: r"", b'', f"", rb"", ...
	if (l.ch == '"' || l.ch == '\'') && isStringPrefix(ident) {
		lower := strings.ToLower(ident)
		raw := strings.ContainsRune(lower, 'r')
		bytes := strings.ContainsRune(lower, 'b')
		return l.readString(startLine, startCol, raw, bytes)
	}

	return token.Token{
		Type:    token.LookupIdent(ident),
		Lexeme:  ident,
		Literal: ident,
		Line:    startLine,
		Column:  startCol,
		EndLine: l.line,
		EndCol:  l.column,
	}
}

func isStringPrefix(ident string) bool {
	if len(ident) > 2 {
		return false
	}
	seen := map[rune]bool{}
	for _, r := range strings.ToLower(ident) {
		if (r != 'r' && r != 'b' && r != 'f' && r != 'u') || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

func (l *Lexer) readString(startLine, startCol int, raw, bytes bool) token.Token {
	quote := l.ch
	triple := false
	l.readChar()
	if l.ch == quote && l.peekChar() == quote {
		triple = true
		l.readChar()
		l.readChar()
	} else if l.ch == quote {
		// Empty string.
		l.readChar()
		return l.stringToken(startLine, startCol, "", bytes)
	}

	var out []rune
	for {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: "unterminated string literal", Line: startLine, Column: startCol, EndLine: l.line, EndCol: l.column}
		}
		if !triple && l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: "unterminated string literal", Line: startLine, Column: startCol, EndLine: l.line, EndCol: l.column}
		}
		if l.ch == quote {
			if !triple {
				l.readChar()
				break
			}
			if l.peekChar() == quote {
				l.readChar()
				if l.peekChar() == quote {
					l.readChar()
					l.readChar()
					break
				}
				out = append(out, quote)
				continue
			}
		}
		if l.ch == '\\' && !raw {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '0':
				out = append(out, 0)
			case '\\':
				out = append(out, '\\')
			case '\'':
				out = append(out, '\'')
			case '"':
				out = append(out, '"')
			case '\n':
				// Escaped newline inside a string continues the literal.
			case 'x':
				if val, ok := l.readHexEscape(2); ok {
					out = append(out, rune(val))
				} else {
					out = append(out, '\\', 'x')
				}
			case 'u':
				if val, ok := l.readHexEscape(4); ok {
					out = append(out, rune(val))
				} else {
					out = append(out, '\\', 'u')
				}
			case 'U':
				if val, ok := l.readHexEscape(8); ok {
					out = append(out, rune(val))
				} else {
					out = append(out, '\\', 'U')
				}
			default:
				// Unknown escape - keep both
				out = append(out, '\\', l.ch)
			}
			l.readChar()
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}
	return l.stringToken(startLine, startCol, string(out), bytes)
}

func (l *Lexer) stringToken(startLine, startCol int, value string, bytes bool) token.Token {
	typ := token.STRING
	if bytes {
		typ = token.BYTES
	}
	return token.Token{Type: typ, Lexeme: value, Literal: value, Line: startLine, Column: startCol, EndLine: l.line, EndCol: l.column}
}

func (l *Lexer) readHexEscape(n int) (int64, bool) {
	var val int64
	for i := 0; i < n; i++ {
		l.readChar()
		var d int64
		if l.ch >= '0' && l.ch <= '9' {
			d = int64(l.ch - '0')
		} else if l.ch >= 'a' && l.ch <= 'f' {
			d = int64(l.ch - 'a' + 10)
		} else if l.ch >= 'A' && l.ch <= 'F' {
			d = int64(l.ch - 'A' + 10)
		} else {
			return 0, false
		}
		val = val*16 + d
	}
	return val, true
}

func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	position := l.position
	typ := token.INT

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			l.readChar()
			l.readChar()
			for isHexDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
			lexeme := l.input[position:l.position]
			return token.Token{Type: token.INT, Lexeme: lexeme, Literal: lexeme, Line: startLine, Column: startCol, EndLine: l.line, EndCol: l.column}
		}
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.ch == '.' && (isDigit(l.peekChar()) || !isLetter(l.peekChar())) {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		peek := l.peekChar()
		if isDigit(peek) || peek == '+' || peek == '-' {
			typ = token.FLOAT
			l.readChar()
			l.readChar()
			for isDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
		}
	}
	if l.ch == 'j' || l.ch == 'J' {
		typ = token.IMAG
		l.readChar()
	}
	lexeme := l.input[position:l.position]
	return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: startLine, Column: startCol, EndLine: l.line, EndCol: l.column}
}

func (l *Lexer) readOperator(startLine, startCol int) token.Token {
	make1 := func(typ token.TokenType, lexeme string) token.Token {
		return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: startLine, Column: startCol, EndLine: l.line, EndCol: l.column}
	}

	ch := l.ch
	switch ch {
	case '(', '[', '{':
		l.parenDepth++
		l.readChar()
		types := map[rune]token.TokenType{'(': token.LPAREN, '[': token.LBRACKET, '{': token.LBRACE}
		return make1(types[ch], string(ch))
	case ')', ']', '}':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		l.readChar()
		types := map[rune]token.TokenType{')': token.RPAREN, ']': token.RBRACKET, '}': token.RBRACE}
		return make1(types[ch], string(ch))
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "==")
		}
		return make1(token.ASSIGN, "=")
	case ':':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, ":=")
		}
		return make1(token.COLON, ":")
	case '-':
		l.readChar()
		if l.ch == '>' {
			l.readChar()
			return make1(token.ARROW, "->")
		}
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "-=")
		}
		return make1(token.MINUS, "-")
	case '+':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "+=")
		}
		return make1(token.PLUS, "+")
	case '*':
		l.readChar()
		if l.ch == '*' {
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return make1(token.OP, "**=")
			}
			return make1(token.DOUBLESTAR, "**")
		}
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "*=")
		}
		return make1(token.STAR, "*")
	case '/':
		l.readChar()
		if l.ch == '/' {
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return make1(token.OP, "//=")
			}
			return make1(token.OP, "//")
		}
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "/=")
		}
		return make1(token.SLASH, "/")
	case '.':
		l.readChar()
		if l.ch == '.' && l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return make1(token.ELLIPSIS, "...")
		}
		return make1(token.DOT, ".")
	case '|':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "|=")
		}
		return make1(token.PIPE, "|")
	case ',':
		l.readChar()
		return make1(token.COMMA, ",")
	case ';':
		l.readChar()
		return make1(token.SEMICOLON, ";")
	case '@':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return make1(token.OP, "@=")
		}
		return make1(token.AT, "@")
	case '%', '&', '^', '~', '<', '>', '!':
		l.readChar()
		lexeme := string(ch)
		for l.ch == '=' || l.ch == '<' || l.ch == '>' {
			lexeme += string(l.ch)
			l.readChar()
		}
		return make1(token.OP, lexeme)
	default:
		l.readChar()
		return make1(token.ILLEGAL, string(ch))
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
