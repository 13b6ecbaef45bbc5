package lexer

import (
	"testing"

	"github.com/funvibe/pyschema/internal/token"
)

func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || len(toks) > 10000 {
			return toks
		}
	}
}

func assertTypes(t *testing.T, input string, want []token.TokenType) {
	t.Helper()
	toks := collect(t, input)
	if len(toks) != len(want) {
		t.Fatalf("token count: got %d, want %d\ntokens: %v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Lexeme, want[i])
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	assertTypes(t, "x = 1\n", []token.TokenType{
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF,
	})
}

func TestMissingTrailingNewline(t *testing.T) {
	assertTypes(t, "x = 1", []token.TokenType{
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF,
	})
}

func TestIndentation(t *testing.T) {
	input := "def f():\n    pass\n"
	assertTypes(t, input, []token.TokenType{
		token.DEF, token.IDENT, token.LPAREN, token.RPAREN, token.COLON, token.NEWLINE,
		token.INDENT, token.PASS, token.NEWLINE, token.DEDENT, token.EOF,
	})
}

func TestNestedDedentsAtEOF(t *testing.T) {
	input := "class C:\n    def m(self):\n        pass\n"
	assertTypes(t, input, []token.TokenType{
		token.CLASS, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.DEF, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.COLON, token.NEWLINE,
		token.INDENT, token.PASS, token.NEWLINE,
		token.DEDENT, token.DEDENT, token.EOF,
	})
}

func TestBlankAndCommentLinesProduceNoLayout(t *testing.T) {
	input := "x = 1\n\n   \n# comment\ny = 2\n"
	assertTypes(t, input, []token.TokenType{
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF,
	})
}

func TestImplicitLineJoining(t *testing.T) {
	input := "x = (1,\n     2)\n"
	assertTypes(t, input, []token.TokenType{
		token.IDENT, token.ASSIGN, token.LPAREN, token.INT, token.COMMA,
		token.INT, token.RPAREN, token.NEWLINE, token.EOF,
	})
}

func TestBackslashContinuation(t *testing.T) {
	input := "x = 1 + \\\n    2\n"
	assertTypes(t, input, []token.TokenType{
		token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT,
		token.NEWLINE, token.EOF,
	})
}

func TestKeywords(t *testing.T) {
	input := "import x\nfrom y import z as w\nasync def f(): pass\nNone\nTrue\nFalse\n"
	assertTypes(t, input, []token.TokenType{
		token.IMPORT, token.IDENT, token.NEWLINE,
		token.FROM, token.IDENT, token.IMPORT, token.IDENT, token.AS, token.IDENT, token.NEWLINE,
		token.ASYNC, token.DEF, token.IDENT, token.LPAREN, token.RPAREN, token.COLON, token.PASS, token.NEWLINE,
		token.NONE, token.NEWLINE,
		token.TRUE, token.NEWLINE,
		token.FALSE, token.NEWLINE,
		token.EOF,
	})
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
		value string
	}{
		{`s = 'abc'` + "\n", token.STRING, "abc"},
		{`s = "a b"` + "\n", token.STRING, "a b"},
		{`s = ""` + "\n", token.STRING, ""},
		{`s = "a\nb"` + "\n", token.STRING, "a\nb"},
		{`s = r"a\nb"` + "\n", token.STRING, `a\nb`},
		{`s = b'xy'` + "\n", token.BYTES, "xy"},
		{`s = """one` + "\n" + `two"""` + "\n", token.STRING, "one\ntwo"},
		{`s = "\x41"` + "\n", token.STRING, "A"},
	}
	for _, tt := range tests {
		toks := collect(t, tt.input)
		str := toks[2]
		if str.Type != tt.typ {
			t.Errorf("%q: got type %s, want %s", tt.input, str.Type, tt.typ)
		}
		if str.Lexeme != tt.value {
			t.Errorf("%q: got value %q, want %q", tt.input, str.Lexeme, tt.value)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input  string
		typ    token.TokenType
		lexeme string
	}{
		{"42\n", token.INT, "42"},
		{"1_000\n", token.INT, "1_000"},
		{"0xFF\n", token.INT, "0xFF"},
		{"0b101\n", token.INT, "0b101"},
		{"3.14\n", token.FLOAT, "3.14"},
		{"1e10\n", token.FLOAT, "1e10"},
		{"2.5e-3\n", token.FLOAT, "2.5e-3"},
		{".5\n", token.FLOAT, ".5"},
		{"2j\n", token.IMAG, "2j"},
	}
	for _, tt := range tests {
		toks := collect(t, tt.input)
		num := toks[0]
		if num.Type != tt.typ || num.Lexeme != tt.lexeme {
			t.Errorf("%q: got %s %q, want %s %q", tt.input, num.Type, num.Lexeme, tt.typ, tt.lexeme)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input  string
		typ    token.TokenType
		lexeme string
	}{
		{"->", token.ARROW, "->"},
		{"**", token.DOUBLESTAR, "**"},
		{"...", token.ELLIPSIS, "..."},
		{"|", token.PIPE, "|"},
		{":=", token.OP, ":="},
		{"==", token.OP, "=="},
		{"//", token.OP, "//"},
		{"<=", token.OP, "<="},
		{"@", token.AT, "@"},
	}
	for _, tt := range tests {
		toks := collect(t, tt.input+"\n")
		op := toks[0]
		if op.Type != tt.typ || op.Lexeme != tt.lexeme {
			t.Errorf("%q: got %s %q, want %s %q", tt.input, op.Type, op.Lexeme, tt.typ, tt.lexeme)
		}
	}
}

func TestPositions(t *testing.T) {
	toks := collect(t, "x = 1\ny = 22\n")
	x := toks[0]
	if x.Line != 1 || x.Column != 0 || x.EndCol != 1 {
		t.Errorf("x: got line %d col %d endcol %d", x.Line, x.Column, x.EndCol)
	}
	two := toks[6]
	if two.Line != 2 || two.Column != 4 || two.EndCol != 6 {
		t.Errorf("22: got line %d col %d endcol %d", two.Line, two.Column, two.EndCol)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("s = 'abc\n")
	var illegal bool
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			illegal = true
		}
		if tok.Type == token.EOF {
			break
		}
	}
	if !illegal {
		t.Fatal("expected ILLEGAL token for unterminated string")
	}
}

func TestBadDedent(t *testing.T) {
	input := "if x:\n        a = 1\n    b = 2\n"
	l := New(input)
	var illegal bool
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			illegal = true
		}
		if tok.Type == token.EOF {
			break
		}
	}
	if !illegal {
		t.Fatal("expected ILLEGAL token for mismatched dedent")
	}
}
