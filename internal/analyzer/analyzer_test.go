package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProcessFileCompilesFunctions(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "service.py")
	writeFile(t, file, `from typing import List, Optional

def lookup(name: str, limit: Optional[int] = None) -> List[str]:
    return []

def internal(payload):
    pass
`)

	a := New([]string{"lookup"}, nil)
	result, err := a.ProcessFile(file)
	require.NoError(t, err)
	require.Contains(t, result, "lookup")
	assert.NotContains(t, result, "internal")

	input, err := json.Marshal(result["lookup"].Input)
	require.NoError(t, err)
	assert.Equal(t, `{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","properties":{"name":{"type":"string"},"limit":{"anyOf":[{"type":"integer"},{"type":"null"}]}},"required":["name"],"additionalProperties":false}`, string(input))

	output, err := json.Marshal(result["lookup"].Output)
	require.NoError(t, err)
	assert.Equal(t, `{"$schema":"http://json-schema.org/draft-07/schema#","type":"array","items":{"type":"string"}}`, string(output))
}

func TestProcessFileExcludeOverridesInclude(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mod.py")
	writeFile(t, file, `def get_a() -> None:
    pass

def get_b() -> None:
    pass
`)

	a := New([]string{"get_*"}, []string{"get_b"})
	result, err := a.ProcessFile(file)
	require.NoError(t, err)
	assert.Contains(t, result, "get_a")
	assert.NotContains(t, result, "get_b")
}

func TestProcessFileTypingImportForms(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "forms.py")
	writeFile(t, file, `import typing
import typing as t
from typing import List as L

def a(x: typing.List[int]) -> None:
    pass

def b(x: t.Optional[str]) -> None:
    pass

def c(x: L[bool]) -> None:
    pass
`)

	a := New(nil, nil)
	result, err := a.ProcessFile(file)
	require.NoError(t, err)
	require.Len(t, result, 3)

	input, err := json.Marshal(result["c"].Input)
	require.NoError(t, err)
	assert.Contains(t, string(input), `"x":{"type":"array","items":{"type":"boolean"}}`)
}

func TestProcessFileAnnotationErrorStopsCompilation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.py")
	writeFile(t, file, "def f(x: Unknown) -> None:\n    pass\n")

	a := New(nil, nil)
	_, err := a.ProcessFile(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Are you missing an import?")
}

func TestProcessFileRelativeImportMergesDeclarations(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "example")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "")
	writeFile(t, filepath.Join(pkg, "common.py"), `from typing import TypedDict, List

class Item(TypedDict):
    sku: str
    count: int

Skus = List[str]

def not_imported() -> None:
    pass
`)
	writeFile(t, filepath.Join(pkg, "orders.py"), `from typing import List
from .common import Item, Skus

def place(items: List[Item], skus: Skus) -> None:
    pass
`)

	a := New(nil, nil)
	result, err := a.ProcessFile(filepath.Join(pkg, "orders.py"))
	require.NoError(t, err)
	require.Contains(t, result, "place")

	input, err := json.Marshal(result["place"].Input)
	require.NoError(t, err)
	assert.Contains(t, string(input), `"items":{"type":"array","items":{"type":"object","properties":{"sku":{"type":"string"},"count":{"type":"integer"}}`)
	assert.Contains(t, string(input), `"skus":{"type":"array","items":{"type":"string"}}`)
}

func TestProcessFileRelativeImportWithAlias(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "pkg")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "")
	writeFile(t, filepath.Join(pkg, "types.py"), `from typing import TypedDict

class Config(TypedDict):
    debug: bool
`)
	writeFile(t, filepath.Join(pkg, "app.py"), `from .types import Config as Cfg

def setup(config: Cfg) -> None:
    pass
`)

	a := New(nil, nil)
	result, err := a.ProcessFile(filepath.Join(pkg, "app.py"))
	require.NoError(t, err)
	require.Contains(t, result, "setup")

	input, err := json.Marshal(result["setup"].Input)
	require.NoError(t, err)
	assert.Contains(t, string(input), `"config":{"type":"object","properties":{"debug":{"type":"boolean"}}`)
}

func TestProcessFileParentRelativeImport(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	writeFile(t, filepath.Join(root, "__init__.py"), "")
	writeFile(t, filepath.Join(root, "shared.py"), `from typing import TypedDict

class Shared(TypedDict):
    id: int
`)
	sub := filepath.Join(root, "sub")
	writeFile(t, filepath.Join(sub, "__init__.py"), "")
	writeFile(t, filepath.Join(sub, "worker.py"), `from ..shared import Shared

def handle(payload: Shared) -> None:
    pass
`)

	a := New(nil, nil)
	result, err := a.ProcessFile(filepath.Join(sub, "worker.py"))
	require.NoError(t, err)
	require.Contains(t, result, "handle")
}

func TestProcessFileTransitiveRelativeImports(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "chain")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "")
	writeFile(t, filepath.Join(pkg, "base.py"), `from typing import List

Names = List[str]
`)
	writeFile(t, filepath.Join(pkg, "middle.py"), `from .base import Names

Wrapped = Names
`)
	writeFile(t, filepath.Join(pkg, "top.py"), `from .middle import Names

def run(names: Names) -> None:
    pass
`)

	a := New(nil, nil)
	// middle re-exports Names by importing it; top imports the re-export.
	result, err := a.ProcessFile(filepath.Join(pkg, "top.py"))
	require.NoError(t, err)
	require.Contains(t, result, "run")
}

func TestProcessFileImportCycleFails(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "loop")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "")
	writeFile(t, filepath.Join(pkg, "a.py"), "from .b import B\n\ndef f() -> None:\n    pass\n")
	writeFile(t, filepath.Join(pkg, "b.py"), "from .a import A\n")

	a := New(nil, nil)
	_, err := a.ProcessFile(filepath.Join(pkg, "a.py"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import cycle detected")
}

func TestProcessFileAbsentImportedNamesSkipped(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "partial")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "")
	writeFile(t, filepath.Join(pkg, "defs.py"), `from typing import List

Known = List[int]
`)
	writeFile(t, filepath.Join(pkg, "use.py"), `from .defs import Known, missing_helper

def f(x: Known) -> None:
    pass
`)

	a := New(nil, nil)
	result, err := a.ProcessFile(filepath.Join(pkg, "use.py"))
	require.NoError(t, err)
	assert.Contains(t, result, "f")
}

func TestProcessPackageQualifiesNames(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "myapp")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "def boot() -> None:\n    pass\n")
	writeFile(t, filepath.Join(pkg, "api.py"), "def ping() -> str:\n    return ''\n")
	sub := filepath.Join(pkg, "jobs")
	writeFile(t, filepath.Join(sub, "__init__.py"), "")
	writeFile(t, filepath.Join(sub, "runner.py"), "def run() -> None:\n    pass\n")

	a := New(nil, nil)
	result, err := a.ProcessPackage(pkg)
	require.NoError(t, err)

	assert.Contains(t, result, "myapp.boot")
	assert.Contains(t, result, "myapp.api.ping")
	assert.Contains(t, result, "myapp.jobs.runner.run")
	assert.Len(t, result, 3)
}

func TestProcessPackageModuleFiltering(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "site")
	writeFile(t, filepath.Join(pkg, "__init__.py"), "")
	writeFile(t, filepath.Join(pkg, "public.py"), "def a() -> None:\n    pass\n")
	writeFile(t, filepath.Join(pkg, "secret.py"), "def b() -> None:\n    pass\n")

	a := New(nil, []string{"secret"})
	result, err := a.ProcessPackage(pkg)
	require.NoError(t, err)

	assert.Contains(t, result, "site.public.a")
	assert.NotContains(t, result, "site.secret.b")
}
