// Package modules walks a package tree and turns it into an ordered list
// of (import path, source file) pairs for the compiler to process.
package modules

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/pyschema/internal/config"
)

// ModuleFile pairs a module's dotted import path with the source file
// backing it.
type ModuleFile struct {
	ImportPath string
	FilePath   string
}

// FilterByPatterns reports whether a name passes the include/exclude glob
// patterns. No include patterns means everything is included; an exclude
// match wins over an include match.
func FilterByPatterns(name string, include, exclude []string) bool {
	matchAny := func(patterns []string) bool {
		for _, pattern := range patterns {
			if ok, err := path.Match(pattern, name); err == nil && ok {
				return true
			}
		}
		return false
	}
	if matchAny(exclude) {
		return false
	}
	if len(include) > 0 && !matchAny(include) {
		return false
	}
	return true
}

// Walk lists the package initializer and every child module under
// packagePath, recursing into subpackages (directories carrying an
// initializer file). Children are visited in name order; module names are
// filtered against the patterns, the root package itself is not.
func Walk(packagePath string, include, exclude []string) ([]ModuleFile, error) {
	return walk(filepath.Clean(packagePath), "", include, exclude)
}

func walk(packagePath, importPrefix string, include, exclude []string) ([]ModuleFile, error) {
	packageName := filepath.Base(packagePath)
	importPath := packageName
	if importPrefix != "" {
		importPath = importPrefix + "." + packageName
	}

	files := []ModuleFile{{ImportPath: importPath, FilePath: filepath.Join(packagePath, config.PackageInitFile)}}

	entries, err := os.ReadDir(packagePath)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if !isPackageDir(filepath.Join(packagePath, name)) {
				continue
			}
			if !FilterByPatterns(name, include, exclude) {
				logrus.Infof("Module %s.%s skipped", packageName, name)
				continue
			}
			children, err := walk(filepath.Join(packagePath, name), importPath, include, exclude)
			if err != nil {
				return nil, err
			}
			files = append(files, children...)
			continue
		}
		if !strings.HasSuffix(name, config.SourceFileExt) || name == config.PackageInitFile {
			continue
		}
		moduleName := strings.TrimSuffix(name, config.SourceFileExt)
		if !FilterByPatterns(moduleName, include, exclude) {
			logrus.Infof("Module %s.%s skipped", packageName, moduleName)
			continue
		}
		files = append(files, ModuleFile{
			ImportPath: importPath + "." + moduleName,
			FilePath:   filepath.Join(packagePath, name),
		})
	}
	return files, nil
}

func isPackageDir(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, config.PackageInitFile))
	return err == nil
}
