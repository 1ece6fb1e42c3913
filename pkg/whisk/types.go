package whisk

import "github.com/bianoble/whisk/internal/engine"

// Type aliases re-export engine types as the public API. Users import
// "github.com/bianoble/whisk/pkg/whisk" and use whisk.Resolved,
// whisk.Catalog, etc.

type Resolved = engine.Resolved
type RunResult = engine.RunResult
type Catalog = engine.Catalog
type CatalogEntry = engine.CatalogEntry
type SelectionError = engine.SelectionError
type MissingLayersError = engine.MissingLayersError
type NamespaceMissing = engine.NamespaceMissing
