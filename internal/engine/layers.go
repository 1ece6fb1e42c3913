package engine

import (
	"sort"

	"github.com/bianoble/whisk/internal/config"
)

// Namespace describes layer inclusion and masking for one namespace:
// the core pseudo-product or an active product.
type Namespace struct {
	Name     string
	Required []string // collection names the namespace declares
	Included []string // paths of required collections, declaration order, first duplicate wins
	Masked   []string // paths of every other declared collection, declaration order
}

// Graph is the per-namespace layer resolution for one bound version.
type Graph struct {
	Namespaces []Namespace // core first, then products in the resolved order
	Included   []string    // paths of collections requested by any namespace, declaration order
}

// BuildGraph resolves layer collections for the core namespace and every
// active product against the bound version. Collections a namespace
// requires but the version does not declare are collected across all
// namespaces before failing, so one run reports every gap.
func BuildGraph(doc *config.Document, version config.Version, versionName string, products []string) (*Graph, error) {
	declared := make(map[string]bool, len(version.Layers))
	for _, lc := range version.Layers {
		declared[lc.Name] = true
	}

	namespaces := append([]string{config.CoreNamespace}, products...)

	var missing []NamespaceMissing
	for _, ns := range namespaces {
		absentSet := make(map[string]bool)
		for _, name := range doc.NamespaceLayers(ns) {
			if !declared[name] {
				absentSet[name] = true
			}
		}
		if len(absentSet) > 0 {
			absent := make([]string, 0, len(absentSet))
			for name := range absentSet {
				absent = append(absent, name)
			}
			sort.Strings(absent)
			missing = append(missing, NamespaceMissing{Namespace: ns, Collections: absent})
		}
	}
	if len(missing) > 0 {
		return nil, &MissingLayersError{Version: versionName, Missing: missing}
	}

	g := &Graph{}
	requested := make(map[string]bool)

	for _, ns := range namespaces {
		required := doc.NamespaceLayers(ns)
		requiredSet := make(map[string]bool, len(required))
		for _, name := range required {
			requiredSet[name] = true
			requested[name] = true
		}

		n := Namespace{Name: ns, Required: append([]string(nil), required...)}
		seen := make(map[string]bool)
		for _, lc := range version.Layers {
			if requiredSet[lc.Name] {
				for _, p := range lc.Paths {
					if !seen[p] {
						seen[p] = true
						n.Included = append(n.Included, p)
					}
				}
			} else {
				n.Masked = append(n.Masked, lc.Paths...)
			}
		}
		g.Namespaces = append(g.Namespaces, n)
	}

	for _, lc := range version.Layers {
		if requested[lc.Name] {
			g.Included = append(g.Included, lc.Paths...)
		}
	}

	return g, nil
}
