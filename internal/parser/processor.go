package parser

import (
	"github.com/funvibe/pyschema/internal/pipeline"
)

// ParserProcessor is the parsing stage of the front-end pipeline.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		return ctx
	}
	p := New(ctx.Tokens, ctx)
	ctx.Module = p.ParseModule()
	return ctx
}
