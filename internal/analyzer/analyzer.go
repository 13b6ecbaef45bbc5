// Package analyzer compiles annotated function signatures into schema
// documents. One Analyzer instance handles a whole run; per-file state
// (namespace and schema table) is rebuilt for every file.
package analyzer

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/lexer"
	"github.com/funvibe/pyschema/internal/modules"
	"github.com/funvibe/pyschema/internal/parser"
	"github.com/funvibe/pyschema/internal/pipeline"
)

// Analyzer drives compilation. Include and Exclude are glob patterns
// applied to function names and, during package walks, module names.
type Analyzer struct {
	Include []string
	Exclude []string

	// resolving tracks files currently being loaded for a relative
	// import, so an import cycle fails instead of recursing forever.
	resolving map[string]bool
}

func New(include, exclude []string) *Analyzer {
	return &Analyzer{
		Include:   include,
		Exclude:   exclude,
		resolving: make(map[string]bool),
	}
}

// ProcessFile compiles every matching annotated function in one source
// file, keyed by function name.
func (a *Analyzer) ProcessFile(filePath string) (map[string]*FunctionSchemas, error) {
	module, err := a.parseSource(filePath)
	if err != nil {
		return nil, err
	}

	ns := NewNamespace()
	table := NewSchemaTable()
	result := make(map[string]*FunctionSchemas)

	for _, stmt := range module.Body {
		handled, err := a.processDeclaration(stmt, filePath, ns, table)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		fn, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		if !modules.FilterByPatterns(fn.Name, a.Include, a.Exclude) {
			logrus.Infof("Function %s skipped", fn.Name)
			continue
		}
		logrus.Infof("Processing function %s ...", fn.Name)
		schemas, err := CompileFunction(fn, ns, table)
		if err != nil {
			return nil, err
		}
		result[fn.Name] = schemas
	}
	return result, nil
}

// ProcessPackage walks a package tree and aggregates every module's
// functions under their dotted qualified names.
func (a *Analyzer) ProcessPackage(packagePath string) (map[string]*FunctionSchemas, error) {
	files, err := modules.Walk(packagePath, a.Include, a.Exclude)
	if err != nil {
		return nil, err
	}
	result := make(map[string]*FunctionSchemas)
	for _, file := range files {
		fns, err := a.ProcessFile(file.FilePath)
		if err != nil {
			return nil, err
		}
		for name, schemas := range fns {
			result[file.ImportPath+"."+name] = schemas
		}
	}
	return result, nil
}

// processDeclaration handles the statement forms that feed the namespace
// and schema table. Reports whether the statement was one of them.
func (a *Analyzer) processDeclaration(stmt ast.Statement, filePath string, ns Namespace, table SchemaTable) (bool, error) {
	switch s := stmt.(type) {
	case *ast.ImportStatement:
		processImport(s, ns, table)
		return true, nil
	case *ast.ImportFromStatement:
		return true, a.processImportFrom(s, filePath, ns, table)
	case *ast.AssignStatement:
		return true, processAssign(s, ns, table)
	case *ast.ClassDeclaration:
		return true, processClassDef(s, ns, table)
	}
	return false, nil
}

func (a *Analyzer) parseSource(filePath string) (*ast.Module, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	ctx := &pipeline.PipelineContext{FilePath: filePath, SourceCode: string(source)}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		return nil, errors.Join(ctx.Errors...)
	}
	return ctx.Module, nil
}
