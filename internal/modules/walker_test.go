package modules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterByPatterns(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    bool
	}{
		{"anything", nil, nil, true},
		{"get_user", []string{"get_*"}, nil, true},
		{"set_user", []string{"get_*"}, nil, false},
		{"get_user", nil, []string{"get_*"}, false},
		{"get_user", []string{"get_*"}, []string{"*_user"}, false},
		{"get_item", []string{"get_*"}, []string{"*_user"}, true},
		{"exact", []string{"exact"}, nil, true},
		{"module_a", []string{"module_?"}, nil, true},
	}
	for _, tt := range tests {
		got := FilterByPatterns(tt.name, tt.include, tt.exclude)
		if got != tt.want {
			t.Errorf("FilterByPatterns(%q, %v, %v) = %v, want %v",
				tt.name, tt.include, tt.exclude, got, tt.want)
		}
	}
}

func makePackage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pkg := filepath.Join(dir, "example")
	files := []string{
		"__init__.py",
		"zeta.py",
		"alpha.py",
		"notes.txt",
		"sub/__init__.py",
		"sub/mod.py",
		"plaindir/ignored.py",
		"deep/__init__.py",
		"deep/in/__init__.py",
		"deep/in/leaf.py",
	}
	for _, name := range files {
		path := filepath.Join(pkg, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return pkg
}

func TestWalkOrderAndRecursion(t *testing.T) {
	pkg := makePackage(t)
	files, err := Walk(pkg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.ImportPath)
	}
	want := []string{
		"example",
		"example.alpha",
		"example.deep",
		"example.deep.in",
		"example.deep.in.leaf",
		"example.sub",
		"example.sub.mod",
		"example.zeta",
	}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q\nall: %v", i, paths[i], want[i], paths)
		}
	}

	// The initializer file backs the package's own import path.
	if filepath.Base(files[0].FilePath) != "__init__.py" {
		t.Errorf("root file: %s", files[0].FilePath)
	}
}

func TestWalkModuleFiltering(t *testing.T) {
	pkg := makePackage(t)
	files, err := Walk(pkg, nil, []string{"zeta", "deep"})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if f.ImportPath == "example.zeta" {
			t.Error("zeta should be excluded")
		}
		if f.ImportPath == "example.deep" || f.ImportPath == "example.deep.in.leaf" {
			t.Errorf("excluded subpackage leaked: %s", f.ImportPath)
		}
	}
}

func TestWalkRootIsNeverFiltered(t *testing.T) {
	pkg := makePackage(t)
	files, err := Walk(pkg, nil, []string{"example"})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 || files[0].ImportPath != "example" {
		t.Fatalf("root package missing: %v", files)
	}
}

func TestWalkMissingDirectory(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "absent"), nil, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
