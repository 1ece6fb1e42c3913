package engine

import (
	"github.com/bianoble/whisk/internal/config"
	"github.com/bianoble/whisk/internal/selection"
)

// Option catalog identifiers.
const (
	CatalogProducts = "products"
	CatalogModes    = "modes"
	CatalogSites    = "sites"
	CatalogVersions = "versions"
)

// CatalogEntry is one selectable option.
type CatalogEntry struct {
	Name        string
	Description string
	Active      bool
}

// Catalog is a titled list of selectable options.
type Catalog struct {
	Name    string
	Title   string
	Entries []CatalogEntry
}

// Catalogs lists every selectable option, marking entries active in the
// pre-override baseline (persisted selection, else defaults). The
// versions catalog always carries the symbolic default pseudo-entry.
func Catalogs(doc *config.Document, prior *selection.Selection) []Catalog {
	base := baseline(doc, prior)

	activeProducts := make(map[string]bool, len(base.Products))
	for _, p := range base.Products {
		activeProducts[p] = true
	}

	products := Catalog{Name: CatalogProducts, Title: "Possible products:"}
	for _, name := range doc.ProductNames() {
		products.Entries = append(products.Entries, CatalogEntry{
			Name:        name,
			Description: doc.Products[name].Description,
			Active:      activeProducts[name],
		})
	}

	modes := Catalog{Name: CatalogModes, Title: "Possible modes:"}
	for _, name := range doc.ModeNames() {
		modes.Entries = append(modes.Entries, CatalogEntry{
			Name:        name,
			Description: doc.Modes[name].Description,
			Active:      name == base.Mode,
		})
	}

	sites := Catalog{Name: CatalogSites, Title: "Possible sites:"}
	for _, name := range doc.SiteNames() {
		sites.Entries = append(sites.Entries, CatalogEntry{
			Name:        name,
			Description: doc.Sites[name].Description,
			Active:      name == base.Site,
		})
	}

	versions := Catalog{Name: CatalogVersions, Title: "Possible versions:"}
	for _, name := range doc.VersionNames() {
		versions.Entries = append(versions.Entries, CatalogEntry{
			Name:   name,
			Active: name == base.Version,
		})
	}
	versions.Entries = append(versions.Entries, CatalogEntry{
		Name:   DefaultVersion,
		Active: base.Version == DefaultVersion,
	})

	return []Catalog{products, modes, sites, versions}
}
