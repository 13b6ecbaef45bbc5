package pipeline

import (
	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/token"
)

// PipelineContext carries one source file through the front-end stages.
type PipelineContext struct {
	FilePath   string
	SourceCode string
	Tokens     []token.Token
	Module     *ast.Module
	Errors     []error
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so a single
// pass collects diagnostics from every stage.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
