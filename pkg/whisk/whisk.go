// Package whisk provides the public Go library API for whisk.
//
// whisk configures a multi-product Yocto build environment. It resolves
// the product, mode, site and version selection from explicit options,
// the cached selection of a previous run, and the project defaults,
// then renders the environment file and the bitbake configuration that
// drive the build.
//
// # Basic Usage
//
//	client, err := whisk.New(whisk.Options{
//	    Root: "/path/to/project",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Initialize a build environment
//	result, err := client.Configure(ctx, whisk.ConfigureOptions{
//	    Init:     true,
//	    Products: []string{"widget"},
//	})
//
//	// List the selectable options
//	catalogs, err := client.Catalogs(ctx)
package whisk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bianoble/whisk/internal/config"
	"github.com/bianoble/whisk/internal/engine"
	"github.com/bianoble/whisk/internal/selection"
)

// Options configures a whisk client.
type Options struct {
	// Root is the project root directory. Required.
	Root string

	// ConfigPath is the project configuration file.
	// Default: "<Root>/whisk.yaml".
	ConfigPath string

	// EnvPath is the environment file rewritten on every run.
	// Default: "<Root>/whisk.env".
	EnvPath string

	// ToolDir is the directory holding the bundled meta-whisk layer.
	// Default: the directory of the running executable.
	ToolDir string

	// Env supplies the variables available to configuration templates.
	// Nil means a snapshot of the process environment. The project root
	// is always added under WHISK_PROJECT_ROOT.
	Env map[string]string
}

// ConfigureOptions configures a single configure run.
type ConfigureOptions struct {
	// Products replaces the selected product set. Each entry may hold
	// several space-separated names.
	Products []string
	Mode     string
	Site     string
	Version  string

	// BuildDir relocates the build directory. Only valid with Init.
	BuildDir string

	// Init initializes a new build environment, discarding any pinned
	// version.
	Init bool

	// Write regenerates the build configuration even when the
	// selection did not change.
	Write bool

	// NoCache ignores the persisted selection and does not update it.
	NoCache bool
}

// Client configures build environments for one project.
// It is the library counterpart of the whisk command line tool.
type Client struct {
	root     string
	confPath string
	envPath  string
	toolDir  string
	env      map[string]string
}

// New creates a whisk Client.
func New(opts Options) (*Client, error) {
	if opts.Root == "" {
		return nil, errors.New("project root is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	confPath := opts.ConfigPath
	if confPath == "" {
		confPath = filepath.Join(root, "whisk.yaml")
	}
	envPath := opts.EnvPath
	if envPath == "" {
		envPath = filepath.Join(root, "whisk.env")
	}

	toolDir := opts.ToolDir
	if toolDir == "" {
		if exe, err := os.Executable(); err == nil {
			toolDir = filepath.Dir(exe)
		} else {
			toolDir = "."
		}
	}

	env := opts.Env
	if env == nil {
		env = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env[k] = v
			}
		}
	}

	return &Client{
		root:     root,
		confPath: confPath,
		envPath:  envPath,
		toolDir:  toolDir,
		env:      env,
	}, nil
}

func (c *Client) loadDocument() (*config.Document, error) {
	vars := make(map[string]string, len(c.env)+1)
	for k, v := range c.env {
		vars[k] = v
	}
	vars["WHISK_PROJECT_ROOT"] = c.root
	return config.Load(c.confPath, vars)
}

// Configure resolves the selection and writes the build environment.
func (c *Client) Configure(ctx context.Context, opts ConfigureOptions) (*RunResult, error) {
	doc, err := c.loadDocument()
	if err != nil {
		return nil, err
	}

	var prior *selection.Selection
	if !opts.NoCache {
		prior = selection.Load(doc.CachePath(c.root))
	}

	eng := &engine.Engine{
		Root:    c.root,
		EnvPath: c.envPath,
		ToolDir: c.toolDir,
	}
	return eng.Run(ctx, doc, prior, engine.RunOptions{
		Overrides: engine.Overrides{
			Products: opts.Products,
			Mode:     opts.Mode,
			Site:     opts.Site,
			Version:  opts.Version,
			BuildDir: opts.BuildDir,
		},
		Init:    opts.Init,
		Write:   opts.Write,
		NoCache: opts.NoCache,
	})
}

// Catalogs lists every selectable option, marking the entries the next
// run would use.
func (c *Client) Catalogs(ctx context.Context) ([]Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := c.loadDocument()
	if err != nil {
		return nil, err
	}

	prior := selection.Load(doc.CachePath(c.root))
	return engine.Catalogs(doc, prior), nil
}
