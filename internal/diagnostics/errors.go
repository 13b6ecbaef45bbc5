package diagnostics

import (
	"fmt"

	"github.com/funvibe/pyschema/internal/ast"
)

// InvalidAnnotation reports a type annotation the compiler cannot turn into
// a schema. The message format is part of the tool's contract; callers
// match on it.
type InvalidAnnotation struct {
	Span   ast.Span
	Reason string
}

func NewInvalidAnnotation(node ast.Node, reason string) *InvalidAnnotation {
	return &InvalidAnnotation{Span: node.GetSpan(), Reason: reason}
}

func (e *InvalidAnnotation) Error() string {
	var lineStr string
	if e.Span.Line == e.Span.EndLine {
		lineStr = fmt.Sprintf("line %d", e.Span.Line)
	} else {
		lineStr = fmt.Sprintf("lines %d to %d", e.Span.Line, e.Span.EndLine)
	}
	columnStr := fmt.Sprintf("character position [%d:%d]", e.Span.Column, e.Span.EndCol)
	return fmt.Sprintf("Invalid type annotation on %s, %s. Reason: %s", lineStr, columnStr, e.Reason)
}

// SyntaxError reports a source construct the reader could not tokenize or
// parse. It is deliberately distinct from InvalidAnnotation: parse failures
// surface as plain file errors, not annotation errors.
type SyntaxError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func NewSyntaxError(file string, line, column int, msg string) *SyntaxError {
	return &SyntaxError{File: file, Line: line, Column: column, Msg: msg}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}
