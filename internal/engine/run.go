package engine

import (
	"context"

	"github.com/bianoble/whisk/internal/config"
	"github.com/bianoble/whisk/internal/selection"
)

// Engine runs the configure operation against one project.
type Engine struct {
	Root    string // absolute project root
	EnvPath string // environment export file
	ToolDir string // directory holding the built-in meta-whisk layer
}

// Run resolves the selection, renders the environment file, persists the
// selection, and regenerates the build configuration when requested.
// The environment file is written on every successful run; the build
// configuration only on init, when an override changed the selection, or
// when explicitly asked for. Nothing is written if resolution, binding,
// or the layer check fails.
func (e *Engine) Run(ctx context.Context, doc *config.Document, prior *selection.Selection, opts RunOptions) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := Resolve(doc, prior, opts.Overrides, opts.Init)
	if err != nil {
		return nil, err
	}
	if err := Bind(doc, r); err != nil {
		return nil, err
	}

	version, err := BoundVersion(doc, r)
	if err != nil {
		return nil, err
	}

	graph, err := BuildGraph(doc, version, r.ActualVersion, r.Products)
	if err != nil {
		return nil, err
	}

	w := &Writer{EnvPath: e.EnvPath, Root: e.Root, ToolDir: e.ToolDir}
	if err := w.WriteEnv(doc, version, r); err != nil {
		return nil, err
	}

	if !opts.NoCache {
		if err := selection.Save(doc.CachePath(e.Root), record(r)); err != nil {
			return nil, err
		}
	}

	result := &RunResult{Selection: r}
	if opts.Write || opts.Init || opts.Overrides.changesSelection() {
		if err := w.WriteBuildConf(doc, graph, r); err != nil {
			return nil, err
		}
		result.WroteBuildConf = true
	}

	return result, nil
}

// record converts a resolved selection into its persisted form.
func record(r *Resolved) *selection.Selection {
	return &selection.Selection{
		Mode:          r.Mode,
		Products:      r.Products,
		Site:          r.Site,
		Version:       r.Version,
		ActualVersion: r.ActualVersion,
		BuildDir:      r.BuildDir,
	}
}
