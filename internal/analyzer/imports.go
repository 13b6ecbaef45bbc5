package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/pyschema/internal/ast"
	"github.com/funvibe/pyschema/internal/config"
	"github.com/funvibe/pyschema/internal/schema"
)

// processImport handles whole-module imports. Only the typing module
// matters: importing it, under any alias, makes the attribute spellings
// of the recognized constructors available.
func processImport(stmt *ast.ImportStatement, ns Namespace, table SchemaTable) {
	for _, alias := range stmt.Names {
		if alias.Name != config.TypingModule {
			continue
		}
		local := alias.LocalName()
		for _, role := range config.AllRoles {
			ns.Register(role, local+"."+string(role))
		}
		table[local+"."+string(config.RoleAny)] = schema.Any()
	}
}

// processImportFrom handles two interesting shapes. `from typing import X`
// registers constructor spellings directly. A relative import loads the
// target module's declarations and merges the requested names, cloned so
// later mutations of either table stay independent. Everything else is
// ignored.
func (a *Analyzer) processImportFrom(stmt *ast.ImportFromStatement, filePath string, ns Namespace, table SchemaTable) error {
	if stmt.Level == 0 {
		if stmt.Module != config.TypingModule {
			return nil
		}
		for _, alias := range stmt.Names {
			role := config.Role(alias.Name)
			if !isRole(role) {
				continue
			}
			local := alias.LocalName()
			ns.Register(role, local)
			if role == config.RoleAny {
				table[local] = schema.Any()
			}
		}
		return nil
	}

	target, err := resolveRelativeImport(filePath, stmt)
	if err != nil {
		return err
	}
	declarations, err := a.declarationTable(target)
	if err != nil {
		return err
	}
	for _, alias := range stmt.Names {
		if s, ok := declarations[alias.Name]; ok {
			table[alias.LocalName()] = s.Clone()
		}
	}
	return nil
}

// resolveRelativeImport maps leading dots and the module path onto the
// filesystem: each dot past the first climbs one directory, the module
// segments then select either a source file or a package initializer.
func resolveRelativeImport(filePath string, stmt *ast.ImportFromStatement) (string, error) {
	dir := filepath.Dir(filePath)
	for i := 1; i < stmt.Level; i++ {
		dir = filepath.Join(dir, "..")
	}
	if stmt.Module == "" {
		return filepath.Join(dir, config.PackageInitFile), nil
	}
	base := filepath.Join(append([]string{dir}, strings.Split(stmt.Module, ".")...)...)
	if fileExists(base + config.SourceFileExt) {
		return base + config.SourceFileExt, nil
	}
	initFile := filepath.Join(base, config.PackageInitFile)
	if fileExists(initFile) {
		return initFile, nil
	}
	return "", fmt.Errorf("cannot resolve relative import of %q from %s", stmt.Module, filePath)
}

// declarationTable loads only the table-building declarations of a file:
// imports, aliases and record classes, never its functions.
func (a *Analyzer) declarationTable(filePath string) (SchemaTable, error) {
	key := filePath
	if abs, err := filepath.Abs(filePath); err == nil {
		key = abs
	}
	if a.resolving[key] {
		return nil, fmt.Errorf("import cycle detected at %s", filePath)
	}
	a.resolving[key] = true
	defer delete(a.resolving, key)

	module, err := a.parseSource(filePath)
	if err != nil {
		return nil, err
	}
	ns := NewNamespace()
	table := NewSchemaTable()
	for _, stmt := range module.Body {
		if _, err := a.processDeclaration(stmt, filePath, ns, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func isRole(role config.Role) bool {
	for _, r := range config.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
