package selection

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CacheVersion tags the persisted-selection format. A file written by a
// different version is discarded wholesale rather than migrated.
const CacheVersion = 1

// Selection records the resolved choices of a previous run. Fields are
// kept in the key order the file is written with.
type Selection struct {
	ActualVersion string   `yaml:"actual_version"`
	BuildDir      string   `yaml:"build_dir"`
	CacheVersion  int      `yaml:"cache_version"`
	Mode          string   `yaml:"mode"`
	Products      []string `yaml:"products"`
	Site          string   `yaml:"site"`
	Version       string   `yaml:"version"`
}

// Load reads a persisted selection. It returns nil when the file is
// absent, unreadable, malformed, or tagged with a different cache
// version: a stale or damaged selection resets silently and the run
// proceeds from the configured defaults.
func Load(path string) *Selection {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var sel Selection
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return nil
	}
	if sel.CacheVersion != CacheVersion {
		return nil
	}

	return &sel
}

// Save writes a selection atomically using a temp file and rename.
func Save(path string, sel *Selection) error {
	sel.CacheVersion = CacheVersion

	data, err := yaml.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshaling selection: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp selection %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp selection to %s: %w", path, err)
	}

	return nil
}
