package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigFile)
	content := `include:
  - "get_*"
exclude:
  - "internal"
output: schemas.json
pretty: true
cache:
  enabled: true
  path: .cache/results.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"get_*"}, p.Include)
	assert.Equal(t, []string{"internal"}, p.Exclude)
	assert.Equal(t, "schemas.json", p.Output)
	require.NotNil(t, p.Pretty)
	assert.True(t, *p.Pretty)
	assert.True(t, p.Cache.Enabled)
	assert.Equal(t, ".cache/results.db", p.Cache.Path)
}

func TestLoadProjectInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("include: {broken\n"), 0o644))

	_, err := LoadProject(path)
	assert.Error(t, err)
}

func TestFindProjectWalksParents(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigFile), []byte("output: found.json\n"), 0o644))
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, err := FindProject(nested)
	require.NoError(t, err)
	assert.Equal(t, "found.json", p.Output)
}

func TestFindProjectDefaultsWhenAbsent(t *testing.T) {
	p, err := FindProject(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, p.Include)
	assert.Empty(t, p.Output)
	assert.Nil(t, p.Pretty)
	assert.False(t, p.Cache.Enabled)
}
