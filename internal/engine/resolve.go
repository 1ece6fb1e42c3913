package engine

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bianoble/whisk/internal/config"
	"github.com/bianoble/whisk/internal/selection"
)

// baseline merges the persisted selection over the document defaults.
// Field by field, a persisted value wins over a default; the symbolic
// version falls back to DefaultVersion and the build directory to
// defaultBuildDir.
func baseline(doc *config.Document, prior *selection.Selection) Resolved {
	base := Resolved{
		Mode:     doc.Defaults.Mode,
		Products: append([]string(nil), doc.Defaults.Products...),
		Site:     doc.Defaults.Site,
		Version:  DefaultVersion,
		BuildDir: doc.Defaults.BuildDir,
	}
	if base.BuildDir == "" {
		base.BuildDir = defaultBuildDir
	}

	if prior == nil {
		return base
	}

	if prior.Mode != "" {
		base.Mode = prior.Mode
	}
	if len(prior.Products) > 0 {
		base.Products = append([]string(nil), prior.Products...)
	}
	if prior.Site != "" {
		base.Site = prior.Site
	}
	if prior.Version != "" {
		base.Version = prior.Version
	}
	base.ActualVersion = prior.ActualVersion
	if prior.BuildDir != "" {
		base.BuildDir = prior.BuildDir
	}

	return base
}

// Resolve merges the command-line overrides over the persisted selection
// and document defaults. Each override is validated before it is
// applied; the version and build directory are immutable outside init.
// The merged result is then checked as a whole, so a persisted selection
// that predates a configuration edit cannot leak stale names through.
func Resolve(doc *config.Document, prior *selection.Selection, o Overrides, isInit bool) (*Resolved, error) {
	r := baseline(doc, prior)
	r.Init = isInit

	if len(o.Products) > 0 {
		requested := splitProducts(o.Products)
		for _, p := range requested {
			if _, ok := doc.Products[p]; !ok {
				return nil, unknownProduct(p)
			}
		}
		r.Products = requested
	}

	if o.Mode != "" {
		if _, ok := doc.Modes[o.Mode]; !ok {
			return nil, unknownMode(o.Mode)
		}
		r.Mode = o.Mode
	}

	if o.Site != "" {
		if _, ok := doc.Sites[o.Site]; !ok {
			return nil, unknownSite(o.Site)
		}
		r.Site = o.Site
	}

	if o.Version != "" {
		if isInit {
			if o.Version != DefaultVersion {
				if _, ok := doc.Versions[o.Version]; !ok {
					return nil, unknownVersion(o.Version)
				}
			}
			r.Version = o.Version
		} else if o.Version != r.Version {
			return nil, versionImmutable(o.Version)
		}
	}

	if o.BuildDir != "" {
		if !isInit {
			return nil, buildDirImmutable(o.BuildDir)
		}
		r.BuildDir = o.BuildDir
	}

	if len(r.Products) == 0 {
		return nil, missingProducts()
	}
	if r.Mode == "" {
		return nil, missingMode()
	}
	if r.Site == "" {
		return nil, missingSite()
	}

	r.Products = normalizeProducts(r.Products)
	for _, p := range r.Products {
		if _, ok := doc.Products[p]; !ok {
			return nil, unknownProduct(p)
		}
	}
	if _, ok := doc.Modes[r.Mode]; !ok {
		return nil, unknownMode(r.Mode)
	}
	if _, ok := doc.Sites[r.Site]; !ok {
		return nil, unknownSite(r.Site)
	}

	abs, err := filepath.Abs(r.BuildDir)
	if err != nil {
		return nil, fmt.Errorf("resolving build directory %s: %w", r.BuildDir, err)
	}
	r.BuildDir = abs

	return &r, nil
}

// splitProducts flattens repeated --products values, splitting each on
// whitespace, and returns the sorted union.
func splitProducts(values []string) []string {
	var names []string
	for _, v := range values {
		names = append(names, strings.Fields(v)...)
	}
	return normalizeProducts(names)
}

func normalizeProducts(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
