package lexer

import (
	"github.com/funvibe/pyschema/internal/diagnostics"
	"github.com/funvibe/pyschema/internal/pipeline"
	"github.com/funvibe/pyschema/internal/token"
)

// LexerProcessor is the tokenizing stage of the front-end pipeline.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			ctx.Errors = append(ctx.Errors, diagnostics.NewSyntaxError(ctx.FilePath, tok.Line, tok.Column, tok.Lexeme))
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.Tokens = tokens
	return ctx
}
