package ast

import (
	"github.com/funvibe/pyschema/internal/token"
)

// Span is the source extent of a node: 1-based lines, 0-based columns,
// end-exclusive column.
type Span struct {
	Line    int
	Column  int
	EndLine int
	EndCol  int
}

func SpanFromTokens(start, end token.Token) Span {
	return Span{Line: start.Line, Column: start.Column, EndLine: end.EndLine, EndCol: end.EndCol}
}

// Node is the base interface for all AST nodes.
type Node interface {
	GetSpan() Span
}

// Statement is a Node that represents a top-level or class-body statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an annotation or value expression.
type Expression interface {
	Node
	expressionNode()
	// Kind names the concrete node shape. Diagnostics for unsupported
	// annotations embed it, so the names are part of the error surface.
	Kind() string
}

// Module is the root node for one source file.
type Module struct {
	File string
	Body []Statement
}

// Alias is one name in an import list, optionally renamed.
// "typing" in `import typing`, "Union as U" in `from typing import Union as U`.
type Alias struct {
	Name   string
	AsName string
}

// LocalName returns the spelling the import binds in the current scope.
func (a Alias) LocalName() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

// ImportStatement represents `import a.b as c, d`.
type ImportStatement struct {
	Span  Span
	Names []Alias
}

func (s *ImportStatement) statementNode() {}
func (s *ImportStatement) GetSpan() Span  { return s.Span }

// ImportFromStatement represents `from [.]*module import a as b, c`.
// Level counts leading dots: 0 is absolute, 1 the current package, 2 the
// parent, and so on. Module is empty for `from . import x`.
type ImportFromStatement struct {
	Span   Span
	Module string
	Names  []Alias
	Level  int
}

func (s *ImportFromStatement) statementNode() {}
func (s *ImportFromStatement) GetSpan() Span  { return s.Span }

// AssignStatement represents `target = value` (first target only is ever
// inspected downstream, matching chained-assignment handling).
type AssignStatement struct {
	Span    Span
	Targets []Expression
	Value   Expression
}

func (s *AssignStatement) statementNode() {}
func (s *AssignStatement) GetSpan() Span  { return s.Span }

// AnnAssignStatement represents `target: annotation [= value]`. Only class
// bodies consume these; at module level they are carried but ignored.
type AnnAssignStatement struct {
	Span       Span
	Target     Expression
	Annotation Expression
	Value      Expression // nil when no initializer
}

func (s *AnnAssignStatement) statementNode() {}
func (s *AnnAssignStatement) GetSpan() Span  { return s.Span }

// Keyword is a class-level keyword argument, e.g. total=False.
type Keyword struct {
	Arg   string
	Value Expression
}

// ClassDeclaration represents a class statement with its direct body.
type ClassDeclaration struct {
	Span     Span
	Name     string
	Bases    []Expression
	Keywords []Keyword
	Body     []Statement
}

func (s *ClassDeclaration) statementNode() {}
func (s *ClassDeclaration) GetSpan() Span  { return s.Span }

// Param is a single parameter: name plus optional annotation.
type Param struct {
	Span       Span
	Name       string
	Annotation Expression // nil when unannotated
}

// FunctionDeclaration represents a def statement's full signature. The
// body is not retained. Defaults aligns right-to-left against the tail of
// Args; KwDefaults aligns index-for-index with KwOnlyArgs and contains nil
// gaps for keyword-only parameters without a default.
type FunctionDeclaration struct {
	Span        Span
	Name        string
	PosOnlyArgs []*Param
	Args        []*Param
	Defaults    []Expression
	VarArg      *Param // *args, nil when absent
	KwOnlyArgs  []*Param
	KwDefaults  []Expression
	KwArg       *Param // **kwargs, nil when absent
	Returns     Expression
}

func (s *FunctionDeclaration) statementNode() {}
func (s *FunctionDeclaration) GetSpan() Span  { return s.Span }
