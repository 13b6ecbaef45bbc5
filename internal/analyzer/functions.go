package analyzer

import (
	"fmt"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/diagnostics"
	"github.com/funvibe/pyschema/internal/schema"
)

// FunctionSchemas is the compiled signature of one callable: an object
// schema accepting its keyword-shaped arguments and a schema for its
// return value.
type FunctionSchemas struct {
	Input  *schema.Document `json:"input"`
	Output *schema.Document `json:"output"`
}

// CompileFunction converts a function declaration's parameter list and
// return annotation into schemas. Arguments are passed by name at
// validation time, so positional-only parameters and *args have no
// representation and are rejected outright.
func CompileFunction(fn *ast.FunctionDeclaration, ns Namespace, table SchemaTable) (*FunctionSchemas, error) {
	if len(fn.PosOnlyArgs) > 0 {
		return nil, diagnostics.NewInvalidAnnotation(fn, fmt.Sprintf(
			"Function '%s' contains positional only arguments", fn.Name,
		))
	}
	if fn.VarArg != nil {
		return nil, diagnostics.NewInvalidAnnotation(fn, fmt.Sprintf(
			"Function '%s' contains a variable number positional arguments i.e. *args", fn.Name,
		))
	}

	input := schema.Object(nil, nil, nil)
	if fn.KwArg != nil {
		if fn.KwArg.Annotation == nil {
			return nil, diagnostics.NewInvalidAnnotation(fn, fmt.Sprintf(
				"Function '%s' is missing its **%s type annotation", fn.Name, fn.KwArg.Name,
			))
		}
		s, err := SchemaFromAnnotation(fn.KwArg.Annotation, ns, table)
		if err != nil {
			return nil, err
		}
		input.Additional = &schema.AdditionalProperties{Schema: s}
	}

	// Positional defaults belong to the tail of the positional list, so
	// the defaults slice is left-padded; keyword-only defaults already
	// align index-for-index, gaps included.
	padding := len(fn.Args) - len(fn.Defaults)
	defaults := make([]ast.Expression, 0, len(fn.Args)+len(fn.KwOnlyArgs))
	for i := range fn.Args {
		if i < padding {
			defaults = append(defaults, nil)
		} else {
			defaults = append(defaults, fn.Defaults[i-padding])
		}
	}
	defaults = append(defaults, fn.KwDefaults...)

	params := make([]*ast.Param, 0, len(fn.Args)+len(fn.KwOnlyArgs))
	params = append(params, fn.Args...)
	params = append(params, fn.KwOnlyArgs...)

	for i, param := range params {
		if param.Annotation == nil {
			return nil, diagnostics.NewInvalidAnnotation(fn, fmt.Sprintf(
				"Function '%s' is missing type annotation for the parameter '%s'", fn.Name, param.Name,
			))
		}
		s, err := SchemaFromAnnotation(param.Annotation, ns, table)
		if err != nil {
			return nil, err
		}
		input.Properties = append(input.Properties, schema.Property{Name: param.Name, Schema: s})
		if defaults[i] == nil {
			input.Required = append(input.Required, param.Name)
		}
	}

	// No return annotation means the function returns nothing.
	output := schema.Null()
	if fn.Returns != nil {
		s, err := SchemaFromAnnotation(fn.Returns, ns, table)
		if err != nil {
			return nil, err
		}
		output = s
	}

	return &FunctionSchemas{
		Input:  schema.NewDocument(input),
		Output: schema.NewDocument(output),
	}, nil
}
