package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Layout tokens. NEWLINE terminates a logical line; INDENT/DEDENT
	// bracket indented blocks, mirroring the grammar of the source syntax.
	NEWLINE TokenType = "NEWLINE"
	INDENT  TokenType = "INDENT"
	DEDENT  TokenType = "DEDENT"

	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	IMAG   TokenType = "IMAG"
	STRING TokenType = "STRING"
	BYTES  TokenType = "BYTES"

	// Keywords the parser dispatches on. Everything else an identifier
	// could be (for, while, return, ...) is skipped as part of an
	// unrecognized statement, so it stays IDENT.
	IMPORT TokenType = "IMPORT"
	FROM   TokenType = "FROM"
	CLASS  TokenType = "CLASS"
	DEF    TokenType = "DEF"
	ASYNC  TokenType = "ASYNC"
	AS     TokenType = "AS"
	PASS   TokenType = "PASS"
	NONE   TokenType = "NONE"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"

	ASSIGN     TokenType = "="
	COLON      TokenType = ":"
	SEMICOLON  TokenType = ";"
	COMMA      TokenType = ","
	DOT        TokenType = "."
	ELLIPSIS   TokenType = "..."
	LPAREN     TokenType = "("
	RPAREN     TokenType = ")"
	LBRACKET   TokenType = "["
	RBRACKET   TokenType = "]"
	LBRACE     TokenType = "{"
	RBRACE     TokenType = "}"
	ARROW      TokenType = "->"
	STAR       TokenType = "*"
	DOUBLESTAR TokenType = "**"
	SLASH      TokenType = "/"
	PIPE       TokenType = "|"
	PLUS       TokenType = "+"
	MINUS      TokenType = "-"
	AT         TokenType = "@"

	// OP is the catch-all for operators the compiler never dispatches on
	// (%=, <<, comparison chains, walrus, ...). They only ever appear
	// inside statements or expressions that are skipped or degraded to
	// opaque nodes.
	OP TokenType = "OP"
)

// Token carries the lexeme plus its full source span. Columns are 0-based
// and Line/EndLine are 1-based, matching how spans are reported in
// diagnostics.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string // decoded value for strings, raw digits for numbers
	Line    int
	Column  int
	EndLine int
	EndCol  int
}

var keywords = map[string]TokenType{
	"import": IMPORT,
	"from":   FROM,
	"class":  CLASS,
	"def":    DEF,
	"async":  ASYNC,
	"as":     AS,
	"pass":   PASS,
	"None":   NONE,
	"True":   TRUE,
	"False":  FALSE,
}

// LookupIdent maps an identifier to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
