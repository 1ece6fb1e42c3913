package config

import (
	"path/filepath"
	"sort"
)

// FormatVersion is the supported configuration document format.
const FormatVersion = 1

// CoreNamespace is the implicit pseudo-product that owns the shared layer
// set and configuration fragment. It participates in layer resolution like
// a product but is never selectable.
const CoreNamespace = "core"

// Document represents a whisk project configuration file.
type Document struct {
	Version  int                `yaml:"version"`
	Cache    string             `yaml:"cache,omitempty"`
	Hooks    Hooks              `yaml:"hooks,omitempty"`
	Defaults Defaults           `yaml:"defaults,omitempty"`
	Core     Core               `yaml:"core,omitempty"`
	Products map[string]Product `yaml:"products,omitempty"`
	Modes    map[string]Mode    `yaml:"modes,omitempty"`
	Sites    map[string]Site    `yaml:"sites,omitempty"`
	Versions map[string]Version `yaml:"versions,omitempty"`
}

// Hooks are shell fragments spliced verbatim into the environment file.
type Hooks struct {
	PreInit  string `yaml:"pre_init,omitempty"`
	PostInit string `yaml:"post_init,omitempty"`
}

// Defaults seeds the selection when neither the command line nor the
// persisted selection provides a value.
type Defaults struct {
	Mode     string   `yaml:"mode,omitempty"`
	Products []string `yaml:"products,omitempty"`
	Site     string   `yaml:"site,omitempty"`
	BuildDir string   `yaml:"build_dir,omitempty"`
}

// Core holds the layer requirements and configuration fragment shared by
// every build regardless of the selected products.
type Core struct {
	Layers []string `yaml:"layers,omitempty"`
	Conf   string   `yaml:"conf,omitempty"`
}

// Product is a buildable deliverable.
type Product struct {
	Description    string   `yaml:"description,omitempty"`
	DefaultVersion string   `yaml:"default_version"`
	Layers         []string `yaml:"layers,omitempty"`
	Targets        []string `yaml:"targets,omitempty"`
	Multiconfigs   []string `yaml:"multiconfigs,omitempty"`
	Conf           string   `yaml:"conf,omitempty"`
}

// Mode is a named build flavor contributing a site.conf fragment.
type Mode struct {
	Description string `yaml:"description,omitempty"`
	Conf        string `yaml:"conf,omitempty"`
}

// Site is a named build location contributing a site.conf fragment.
type Site struct {
	Description string `yaml:"description,omitempty"`
	Conf        string `yaml:"conf,omitempty"`
}

// Version describes one upstream release: how to bootstrap it and which
// layer collections it ships. The declaration order of Layers is
// meaningful and preserved through to the emitted artifacts.
type Version struct {
	OEInit     string            `yaml:"oeinit"`
	BitbakeDir string            `yaml:"bitbakedir,omitempty"`
	Pyrex      *Pyrex            `yaml:"pyrex,omitempty"`
	Layers     []LayerCollection `yaml:"layers,omitempty"`
}

// Pyrex configures the containerized bootstrap wrapper for a version.
type Pyrex struct {
	Root string `yaml:"root"`
	Conf string `yaml:"conf"`
}

// LayerCollection is a named group of layer paths within a version.
type LayerCollection struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths,omitempty"`
}

// NamespaceLayers returns the layer collections required by a namespace:
// the core pseudo-product or a declared product.
func (d *Document) NamespaceLayers(name string) []string {
	if name == CoreNamespace {
		return d.Core.Layers
	}
	return d.Products[name].Layers
}

// CachePath returns the persisted-selection path for a project root.
// A configured cache path is used verbatim; only the default lives
// under the root.
func (d *Document) CachePath(root string) string {
	if d.Cache != "" {
		return d.Cache
	}
	return filepath.Join(root, ".config.yaml")
}

// ProductNames returns the declared product names in sorted order.
func (d *Document) ProductNames() []string {
	return sortedNames(d.Products)
}

// ModeNames returns the declared mode names in sorted order.
func (d *Document) ModeNames() []string {
	return sortedNames(d.Modes)
}

// SiteNames returns the declared site names in sorted order.
func (d *Document) SiteNames() []string {
	return sortedNames(d.Sites)
}

// VersionNames returns the declared version names in sorted order.
func (d *Document) VersionNames() []string {
	return sortedNames(d.Versions)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
