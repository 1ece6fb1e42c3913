package engine

import (
	"fmt"

	"github.com/bianoble/whisk/internal/config"
)

// Bind fixes the concrete version for a resolved selection. On init any
// previously pinned concrete version is discarded. The symbolic default
// folds over the selected products' default versions, seeded with the
// surviving pin; products that disagree on the concrete version cannot
// be built together. An explicit symbolic version binds to itself.
func Bind(doc *config.Document, r *Resolved) error {
	if r.Init {
		r.ActualVersion = ""
	}

	if r.Version != DefaultVersion {
		r.ActualVersion = r.Version
		return nil
	}

	actual := r.ActualVersion
	for _, p := range r.Products {
		v := doc.Products[p].DefaultVersion
		if actual == "" {
			actual = v
		} else if v != actual {
			return incompatibleVersions(p, v, actual)
		}
	}
	r.ActualVersion = actual

	return nil
}

// BoundVersion looks up the version entry for a bound selection. A
// missing entry is a configuration consistency problem rather than a
// user error: the name came from the document or the persisted
// selection, never from free-form input.
func BoundVersion(doc *config.Document, r *Resolved) (config.Version, error) {
	v, ok := doc.Versions[r.ActualVersion]
	if !ok {
		return config.Version{}, fmt.Errorf("version '%s' is not defined in the configuration", r.ActualVersion)
	}
	return v, nil
}
