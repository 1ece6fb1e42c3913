package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Selection error kinds. A SelectionError wraps exactly one of these so
// callers can branch with errors.Is instead of parsing messages.
var (
	ErrUnknownProduct       = errors.New("unknown product")
	ErrUnknownMode          = errors.New("unknown mode")
	ErrUnknownSite          = errors.New("unknown site")
	ErrUnknownVersion       = errors.New("unknown version")
	ErrMissingSelection     = errors.New("missing selection")
	ErrVersionImmutable     = errors.New("version immutable")
	ErrBuildDirImmutable    = errors.New("build directory immutable")
	ErrIncompatibleVersions = errors.New("incompatible product versions")
)

// SelectionError reports an invalid or incomplete selection. Catalog
// names the option catalog to show alongside the message, if any.
type SelectionError struct {
	Kind    error
	Msg     string
	Catalog string // CatalogProducts, CatalogModes, CatalogSites, CatalogVersions, or empty
}

func (e *SelectionError) Error() string { return e.Msg }

func (e *SelectionError) Unwrap() error { return e.Kind }

func unknownProduct(name string) error {
	return &SelectionError{
		Kind:    ErrUnknownProduct,
		Msg:     fmt.Sprintf("Unknown product '%s'. Please choose from:", name),
		Catalog: CatalogProducts,
	}
}

func unknownMode(name string) error {
	return &SelectionError{
		Kind:    ErrUnknownMode,
		Msg:     fmt.Sprintf("Unknown mode '%s'. Please choose from:", name),
		Catalog: CatalogModes,
	}
}

func unknownSite(name string) error {
	return &SelectionError{
		Kind:    ErrUnknownSite,
		Msg:     fmt.Sprintf("Unknown site '%s'. Please choose from:", name),
		Catalog: CatalogSites,
	}
}

func unknownVersion(name string) error {
	return &SelectionError{
		Kind:    ErrUnknownVersion,
		Msg:     fmt.Sprintf("Unknown version '%s'. Please choose from:", name),
		Catalog: CatalogVersions,
	}
}

func missingProducts() error {
	return &SelectionError{
		Kind: ErrMissingSelection,
		Msg:  "One or more products must be specified with --product",
	}
}

func missingMode() error {
	return &SelectionError{
		Kind: ErrMissingSelection,
		Msg:  "A build mode must be specified with --mode",
	}
}

func missingSite() error {
	return &SelectionError{
		Kind: ErrMissingSelection,
		Msg:  "A site must be specified with --site",
	}
}

func versionImmutable(requested string) error {
	return &SelectionError{
		Kind: ErrVersionImmutable,
		Msg: fmt.Sprintf("The version cannot be changed after the environment is initialized. "+
			"Please initialize a new environment with '--version=%s'", requested),
	}
}

func buildDirImmutable(requested string) error {
	return &SelectionError{
		Kind: ErrBuildDirImmutable,
		Msg: fmt.Sprintf("Build directory cannot be changed after environment is initialized. "+
			"Please initialize a new environment with '--build-dir=%s'", requested),
	}
}

func incompatibleVersions(product, version, actual string) error {
	return &SelectionError{
		Kind: ErrIncompatibleVersions,
		Msg:  fmt.Sprintf("%s is incompatible with other products: %s != %s", product, version, actual),
	}
}

// NamespaceMissing lists the layer collections a namespace requires that
// the bound version does not declare.
type NamespaceMissing struct {
	Namespace   string
	Collections []string // sorted
}

// MissingLayersError aggregates every namespace whose required layer
// collections are absent from the bound version.
type MissingLayersError struct {
	Version string
	Missing []NamespaceMissing
}

func (e *MissingLayersError) Error() string {
	lines := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		lines[i] = fmt.Sprintf("Product '%s' requires layer collection(s) '%s' which is not present in version '%s'",
			m.Namespace, strings.Join(m.Collections, " "), e.Version)
	}
	return strings.Join(lines, "\n")
}
