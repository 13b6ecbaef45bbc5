// Package cli wires the command line onto the compiler: flag and config
// resolution, cache lookups and output formatting.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/funvibe/pyschema/internal/analyzer"
	"github.com/funvibe/pyschema/internal/cache"
	"github.com/funvibe/pyschema/internal/config"
)

// DefaultCacheFile is created next to the target package when caching is
// enabled without an explicit path.
const DefaultCacheFile = ".pyschema-cache.db"

// NewApp builds the pyschema command.
func NewApp() *cli.App {
	return &cli.App{
		Name:      "pyschema",
		Usage:     "compile Python type annotations into JSON schema documents",
		ArgsUsage: "<file-or-package>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "include",
				Aliases: []string{"i"},
				Usage:   "glob `pattern` for function and module names to compile",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "glob `pattern` for function and module names to skip",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `file` instead of stdout",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "project config `file` (default: nearest " + config.ProjectConfigFile + ")",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "indent the JSON output (default: when stdout is a terminal)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "ignore and do not update the package cache",
			},
			&cli.StringFlag{
				Name:  "cache-path",
				Usage: "sqlite `file` for the package cache",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warning",
				Usage: "logrus `level`: debug, info, warning, error",
			},
		},
		Action: run,
	}
}

// Execute runs the command line. Exposed so the binary stays a one-liner.
func Execute(args []string) error {
	return NewApp().Run(args)
}

func run(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q", c.String("log-level"))
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one source file or package directory")
	}
	target := c.Args().First()

	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	project, err := loadProject(c, target)
	if err != nil {
		return err
	}

	include := project.Include
	if c.IsSet("include") {
		include = c.StringSlice("include")
	}
	exclude := project.Exclude
	if c.IsSet("exclude") {
		exclude = c.StringSlice("exclude")
	}

	var payload []byte
	if info.IsDir() {
		payload, err = compilePackage(c, project, target, include, exclude)
	} else {
		payload, err = compileFile(target, include, exclude)
	}
	if err != nil {
		return err
	}

	output := project.Output
	if c.IsSet("output") {
		output = c.String("output")
	}
	return writeResult(c, project, output, payload)
}

func loadProject(c *cli.Context, target string) (*config.Project, error) {
	if c.IsSet("config") {
		return config.LoadProject(c.String("config"))
	}
	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}
	return config.FindProject(dir)
}

func compileFile(target string, include, exclude []string) ([]byte, error) {
	a := analyzer.New(include, exclude)
	result, err := a.ProcessFile(target)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// compilePackage compiles a package tree, consulting the digest cache
// when the project enables it.
func compilePackage(c *cli.Context, project *config.Project, target string, include, exclude []string) ([]byte, error) {
	if _, err := os.Stat(filepath.Join(target, config.PackageInitFile)); err != nil {
		return nil, fmt.Errorf("%s is not a package: missing %s", target, config.PackageInitFile)
	}

	useCache := project.Cache.Enabled && !c.Bool("no-cache")
	var store *cache.Store
	var digest string
	if useCache {
		cachePath := project.Cache.Path
		if c.IsSet("cache-path") {
			cachePath = c.String("cache-path")
		}
		if cachePath == "" {
			cachePath = filepath.Join(filepath.Dir(filepath.Clean(target)), DefaultCacheFile)
		}
		var err error
		store, err = cache.Open(cachePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		digest, err = cache.PackageDigest(target, include, exclude)
		if err != nil {
			return nil, err
		}
		if payload, ok, err := store.Get(digest); err != nil {
			return nil, err
		} else if ok {
			logrus.Debugf("Cache hit for %s", target)
			return payload, nil
		}
	}

	a := analyzer.New(include, exclude)
	result, err := a.ProcessPackage(target)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := store.Put(digest, payload); err != nil {
			logrus.Warnf("Cache write failed: %s", err)
		}
	}
	return payload, nil
}

func writeResult(c *cli.Context, project *config.Project, output string, payload []byte) error {
	pretty := output == "" && isatty.IsTerminal(os.Stdout.Fd())
	if project.Pretty != nil {
		pretty = *project.Pretty
	}
	if c.IsSet("pretty") {
		pretty = c.Bool("pretty")
	}
	if pretty {
		indented, err := json.MarshalIndent(json.RawMessage(payload), "", "  ")
		if err != nil {
			return err
		}
		payload = indented
	}

	if output == "" {
		_, err := fmt.Fprintln(os.Stdout, string(payload))
		return err
	}
	return os.WriteFile(output, append(payload, '\n'), 0o644)
}
