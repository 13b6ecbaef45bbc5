package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfigFile is looked up in the target package's parent directories
// when no explicit config path is given.
const ProjectConfigFile = "pyschema.yaml"

// Project is the pyschema.yaml configuration. Command-line flags override
// every field.
type Project struct {
	// Include lists glob patterns; only functions and modules matching at
	// least one are compiled. Empty means include everything.
	Include []string `yaml:"include,omitempty"`

	// Exclude lists glob patterns; a match excludes even when Include
	// matches too.
	Exclude []string `yaml:"exclude,omitempty"`

	// Output is the path the schema document is written to. Empty means
	// stdout.
	Output string `yaml:"output,omitempty"`

	// Pretty forces indented output regardless of terminal detection.
	Pretty *bool `yaml:"pretty,omitempty"`

	// Cache configures the compiled-schema cache.
	Cache CacheConfig `yaml:"cache,omitempty"`
}

// CacheConfig controls reuse of previously compiled package results.
type CacheConfig struct {
	// Enabled turns the cache on. The cache key is a digest over every
	// source file in the package tree, so any edit invalidates it.
	Enabled bool `yaml:"enabled,omitempty"`

	// Path is the sqlite database location. Defaults to
	// .pyschema-cache.db next to the target package.
	Path string `yaml:"path,omitempty"`
}

// LoadProject reads and validates a pyschema.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

// FindProject walks from dir upwards looking for a pyschema.yaml. Returns
// an empty config when none exists.
func FindProject(dir string) (*Project, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return LoadProject(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return &Project{}, nil
		}
		dir = parent
	}
}
