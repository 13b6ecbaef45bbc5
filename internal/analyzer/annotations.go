package analyzer

import (
	"fmt"
	"strings"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/config"
	"github.com/funvibe/pyschema/internal/diagnostics"
	"github.com/funvibe/pyschema/internal/schema"
)

// SchemaFromAnnotation converts one annotation expression into a schema.
// The dispatch is a closed type switch: any node shape outside the
// annotation grammar fails with a diagnostic naming it.
func SchemaFromAnnotation(node ast.Expression, ns Namespace, table SchemaTable) (*schema.Schema, error) {
	switch n := node.(type) {
	case *ast.Constant:
		if n.ConstKind == ast.ConstNone {
			return schema.Null(), nil
		}
		return nil, diagnostics.NewInvalidAnnotation(n, "Only valid constant type annotation is the None value")

	case *ast.Name, *ast.Attribute:
		spelling, ok := ast.DottedName(node)
		if !ok {
			break
		}
		if s, ok := table[spelling]; ok {
			return s, nil
		}
		return nil, diagnostics.NewInvalidAnnotation(node, fmt.Sprintf(
			"Only valid named type annotations are %s. Are you missing an import?",
			strings.Join(table.SortedNames(), ", "),
		))

	case *ast.Subscript:
		return schemaFromSubscript(n, ns, table)
	}

	return nil, diagnostics.NewInvalidAnnotation(node, fmt.Sprintf(
		"Invalid type annotation ast element '%s'", node.Kind(),
	))
}

func schemaFromSubscript(n *ast.Subscript, ns Namespace, table SchemaTable) (*schema.Schema, error) {
	head, _ := ast.DottedName(n.Value)
	role, ok := ns.SubscriptRole(head)
	if !ok {
		names := make([]string, len(config.SubscriptRoles))
		for i, r := range config.SubscriptRoles {
			names[i] = string(r)
		}
		return nil, diagnostics.NewInvalidAnnotation(n, fmt.Sprintf(
			"Only valid subscript type annotations are %s. Are you missing an import?",
			strings.Join(names, ", "),
		))
	}

	if tuple, ok := n.Index.(*ast.Tuple); ok {
		return schemaFromMultiSubscript(n, role, tuple.Elems, ns, table)
	}

	switch n.Index.(type) {
	case *ast.Constant, *ast.Name, *ast.Attribute, *ast.Subscript:
		return schemaFromSingleSubscript(n, role, n.Index, ns, table)
	}
	return nil, diagnostics.NewInvalidAnnotation(n, fmt.Sprintf(
		"Invalid subscript child ast element '%s'", n.Index.Kind(),
	))
}

func schemaFromSingleSubscript(n *ast.Subscript, role config.Role, child ast.Expression, ns Namespace, table SchemaTable) (*schema.Schema, error) {
	switch role {
	case config.RoleList:
		items, err := SchemaFromAnnotation(child, ns, table)
		if err != nil {
			return nil, err
		}
		return schema.Array(items), nil
	case config.RoleLiteral:
		value, err := validateLiteralValue(child)
		if err != nil {
			return nil, err
		}
		return schema.Enum(value), nil
	case config.RoleOptional:
		inner, err := SchemaFromAnnotation(child, ns, table)
		if err != nil {
			return nil, err
		}
		return schema.AnyOf(inner, schema.Null()), nil
	case config.RoleUnion:
		// Degenerate one-variant union, preserved as-is.
		inner, err := SchemaFromAnnotation(child, ns, table)
		if err != nil {
			return nil, err
		}
		return schema.AnyOf(inner), nil
	default:
		return nil, diagnostics.NewInvalidAnnotation(n, fmt.Sprintf(
			"%s must contain more than one element", role,
		))
	}
}

func schemaFromMultiSubscript(n *ast.Subscript, role config.Role, elems []ast.Expression, ns Namespace, table SchemaTable) (*schema.Schema, error) {
	switch role {
	case config.RoleDict:
		if len(elems) < 2 {
			return nil, diagnostics.NewInvalidAnnotation(n, "Dict must contain more than one element")
		}
		if name, ok := elems[0].(*ast.Name); !ok || name.Value != "str" {
			return nil, diagnostics.NewInvalidAnnotation(n, "Dict keys must be strings")
		}
		values, err := SchemaFromAnnotation(elems[1], ns, table)
		if err != nil {
			return nil, err
		}
		return schema.Mapping(values), nil
	case config.RoleLiteral:
		values := make([]schema.Literal, len(elems))
		for i, elem := range elems {
			value, err := validateLiteralValue(elem)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return schema.Enum(values...), nil
	case config.RoleUnion:
		variants := make([]*schema.Schema, len(elems))
		for i, elem := range elems {
			variant, err := SchemaFromAnnotation(elem, ns, table)
			if err != nil {
				return nil, err
			}
			variants[i] = variant
		}
		return schema.AnyOf(variants...), nil
	default:
		return nil, diagnostics.NewInvalidAnnotation(n, fmt.Sprintf(
			"%s must not contain more than one element", role,
		))
	}
}

func validateLiteralValue(node ast.Expression) (schema.Literal, error) {
	c, ok := node.(*ast.Constant)
	if !ok {
		return schema.Literal{}, diagnostics.NewInvalidAnnotation(node, "Literal values must be constants")
	}
	switch c.ConstKind {
	case ast.ConstNone:
		return schema.NoneLit(), nil
	case ast.ConstBool:
		return schema.BoolLit(c.Bool), nil
	case ast.ConstString:
		return schema.StringLit(c.Str), nil
	case ast.ConstInt:
		return schema.IntLit(c.Int), nil
	case ast.ConstFloat:
		return schema.FloatLit(c.Float), nil
	}
	return schema.Literal{}, diagnostics.NewInvalidAnnotation(node, "Literal values must be either None, bool, str, int or float")
}
