package analyzer

import (
	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/config"
	"github.com/funvibe/pyschema/internal/schema"
)

// processAssign registers a scalar type alias: a simple name assigned a
// recognized generic application. Every other assignment shape is ignored.
func processAssign(stmt *ast.AssignStatement, ns Namespace, table SchemaTable) error {
	if len(stmt.Targets) != 1 || stmt.Value == nil {
		return nil
	}
	name, ok := stmt.Targets[0].(*ast.Name)
	if !ok {
		return nil
	}
	sub, ok := stmt.Value.(*ast.Subscript)
	if !ok {
		return nil
	}
	head, ok := ast.DottedName(sub.Value)
	if !ok {
		return nil
	}
	if _, ok := ns.SubscriptRole(head); !ok {
		return nil
	}
	s, err := SchemaFromAnnotation(sub, ns, table)
	if err != nil {
		return err
	}
	table[name.Value] = s
	return nil
}

// processClassDef compiles a structural record: a class whose first base
// resolves to the TypedDict role. Each annotated field becomes a property;
// the class-wide total keyword decides whether fields are required.
// Classes with no recognized record base produce no table entry.
func processClassDef(decl *ast.ClassDeclaration, ns Namespace, table SchemaTable) error {
	if len(decl.Bases) == 0 {
		return nil
	}
	base, ok := ast.DottedName(decl.Bases[0])
	if !ok || !ns.Has(config.RoleTypedDict, base) {
		return nil
	}

	allRequired := true
	for _, kw := range decl.Keywords {
		if kw.Arg != "total" {
			continue
		}
		if c, ok := kw.Value.(*ast.Constant); ok && c.ConstKind == ast.ConstBool {
			allRequired = c.Bool
		}
	}

	properties := []schema.Property{}
	required := []string{}
	for _, stmt := range decl.Body {
		field, ok := stmt.(*ast.AnnAssignStatement)
		if !ok {
			continue
		}
		name, ok := field.Target.(*ast.Name)
		if !ok {
			continue
		}
		s, err := SchemaFromAnnotation(field.Annotation, ns, table)
		if err != nil {
			return err
		}
		properties = append(properties, schema.Property{Name: name.Value, Schema: s})
		if allRequired {
			required = append(required, name.Value)
		}
	}
	table[decl.Name] = schema.Object(properties, required, nil)
	return nil
}
