package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/config"
	"github.com/funvibe/pyschema/internal/lexer"
	"github.com/funvibe/pyschema/internal/parser"
	"github.com/funvibe/pyschema/internal/pipeline"
	"github.com/funvibe/pyschema/internal/schema"
)

// typingScope returns a namespace and table as if every constructor had
// been imported unqualified from typing.
func typingScope() (Namespace, SchemaTable) {
	ns := NewNamespace()
	table := NewSchemaTable()
	for _, role := range config.AllRoles {
		ns.Register(role, string(role))
	}
	table["Any"] = schema.Any()
	return ns, table
}

func parseModule(t *testing.T, source string) *ast.Module {
	t.Helper()
	ctx := &pipeline.PipelineContext{FilePath: "test.py", SourceCode: source}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	require.Empty(t, ctx.Errors)
	require.NotNil(t, ctx.Module)
	return ctx.Module
}

func parseAnnotation(t *testing.T, annotation string) ast.Expression {
	t.Helper()
	m := parseModule(t, "x: "+annotation+"\n")
	stmt, ok := m.Body[0].(*ast.AnnAssignStatement)
	require.True(t, ok, "statement is %T", m.Body[0])
	require.NotNil(t, stmt.Annotation)
	return stmt.Annotation
}

func annotationJSON(t *testing.T, annotation string) string {
	t.Helper()
	ns, table := typingScope()
	s, err := SchemaFromAnnotation(parseAnnotation(t, annotation), ns, table)
	require.NoError(t, err)
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	return string(raw)
}

func annotationError(t *testing.T, annotation string) string {
	t.Helper()
	ns, table := typingScope()
	_, err := SchemaFromAnnotation(parseAnnotation(t, annotation), ns, table)
	require.Error(t, err)
	return err.Error()
}

func TestBaseTypeAnnotations(t *testing.T) {
	tests := []struct {
		annotation string
		want       string
	}{
		{"bool", `{"type":"boolean"}`},
		{"float", `{"type":"number"}`},
		{"int", `{"type":"integer"}`},
		{"str", `{"type":"string"}`},
		{"None", `{"type":"null"}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, annotationJSON(t, tt.annotation), tt.annotation)
	}
}

func TestAnyAnnotation(t *testing.T) {
	want := `{"anyOf":[{"type":"object"},{"type":"array"},{"type":"null"},{"type":"string"},{"type":"boolean"},{"type":"integer"},{"type":"number"}]}`
	assert.Equal(t, want, annotationJSON(t, "Any"))
}

func TestSubscriptAnnotations(t *testing.T) {
	tests := []struct {
		annotation string
		want       string
	}{
		{"List[str]", `{"type":"array","items":{"type":"string"}}`},
		{"List[List[int]]", `{"type":"array","items":{"type":"array","items":{"type":"integer"}}}`},
		{"Dict[str, int]", `{"type":"object","additionalProperties":{"type":"integer"}}`},
		{"Optional[str]", `{"anyOf":[{"type":"string"},{"type":"null"}]}`},
		{"Union[str]", `{"anyOf":[{"type":"string"}]}`},
		{"Union[str, int, None]", `{"anyOf":[{"type":"string"},{"type":"integer"},{"type":"null"}]}`},
		{"Union[str, str]", `{"anyOf":[{"type":"string"},{"type":"string"}]}`},
		{"Literal['a']", `{"enum":["a"]}`},
		{"Literal['a', 1, True, None, 2.5]", `{"enum":["a",1,true,null,2.5]}`},
		{"Literal['x', 'x']", `{"enum":["x","x"]}`},
		{"Optional[Dict[str, List[int]]]", `{"anyOf":[{"type":"object","additionalProperties":{"type":"array","items":{"type":"integer"}}},{"type":"null"}]}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, annotationJSON(t, tt.annotation), tt.annotation)
	}
}

func TestUnknownNameAnnotation(t *testing.T) {
	msg := annotationError(t, "MadeUp")
	assert.Contains(t, msg, "Only valid named type annotations are Any, bool, float, int, str. Are you missing an import?")
}

func TestUnknownSubscriptHead(t *testing.T) {
	msg := annotationError(t, "Tuple[str, int]")
	assert.Contains(t, msg, "Only valid subscript type annotations are Dict, List, Literal, Optional, Union. Are you missing an import?")
}

func TestConstantAnnotationErrors(t *testing.T) {
	msg := annotationError(t, "3")
	assert.Contains(t, msg, "Only valid constant type annotation is the None value")

	msg = annotationError(t, "'text'")
	assert.Contains(t, msg, "Only valid constant type annotation is the None value")
}

func TestSubscriptArityErrors(t *testing.T) {
	tests := []struct {
		annotation string
		reason     string
	}{
		{"Dict[str]", "Dict must contain more than one element"},
		{"Dict[int, str]", "Dict keys must be strings"},
		{"Optional[str, int]", "Optional must not contain more than one element"},
		{"List[str, int]", "List must not contain more than one element"},
	}
	for _, tt := range tests {
		assert.Contains(t, annotationError(t, tt.annotation), tt.reason, tt.annotation)
	}
}

func TestLiteralValueErrors(t *testing.T) {
	msg := annotationError(t, "Literal[int]")
	assert.Contains(t, msg, "Literal values must be constants")

	msg = annotationError(t, "Literal[...]")
	assert.Contains(t, msg, "Literal values must be either None, bool, str, int or float")

	msg = annotationError(t, "Literal[b'raw']")
	assert.Contains(t, msg, "Literal values must be either None, bool, str, int or float")
}

func TestUnsupportedNodeAnnotations(t *testing.T) {
	msg := annotationError(t, "int | None")
	assert.Contains(t, msg, "Invalid type annotation ast element 'BinOp'")

	msg = annotationError(t, "[int]")
	assert.Contains(t, msg, "Invalid type annotation ast element 'List'")

	// The subset parser degrades an unmodelable subscript to an opaque
	// node, so the whole annotation is rejected by shape.
	msg = annotationError(t, "Union[lambda x: x]")
	assert.Contains(t, msg, "Invalid type annotation ast element 'Union'")

	msg = annotationError(t, "Union[-1]")
	assert.Contains(t, msg, "Invalid subscript child ast element 'UnaryOp'")
}

func TestErrorSpanFormatting(t *testing.T) {
	ns, table := typingScope()
	_, err := SchemaFromAnnotation(parseAnnotation(t, "Wrong"), ns, table)
	require.Error(t, err)
	// "x: Wrong" puts the annotation at columns 3..8 on line 1.
	assert.Equal(t,
		"Invalid type annotation on line 1, character position [3:8]. Reason: Only valid named type annotations are Any, bool, float, int, str. Are you missing an import?",
		err.Error(),
	)
}

func TestQualifiedSpellingsResolve(t *testing.T) {
	ns := NewNamespace()
	table := NewSchemaTable()
	for _, role := range config.AllRoles {
		ns.Register(role, "typing."+string(role))
	}
	table["typing.Any"] = schema.Any()

	s, err := SchemaFromAnnotation(parseAnnotation(t, "typing.List[int]"), ns, table)
	require.NoError(t, err)
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"array","items":{"type":"integer"}}`, string(raw))
}
