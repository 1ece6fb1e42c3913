package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a whisk configuration file, expands %-style placeholders
// from vars, and validates the result.
func Load(path string, vars map[string]string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	text, err := Expand(string(data), vars)
	if err != nil {
		return nil, fmt.Errorf("expanding config %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if doc.Version != FormatVersion {
		// An absent version key and an explicit bad value report
		// differently; reparse to tell the two apart.
		var probe struct {
			Version *int `yaml:"version"`
		}
		_ = yaml.Unmarshal([]byte(text), &probe)
		if probe.Version == nil {
			return nil, fmt.Errorf("config file '%s' missing version", path)
		}
		return nil, fmt.Errorf("bad version %d in config file '%s'", doc.Version, path)
	}

	if errs := Validate(&doc); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &doc, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Document for structural correctness.
// Returns a list of validation error messages (empty if valid).
//
// Cross-references from defaults and product layer lists are left to
// resolution, which validates the merged selection against the document.
func Validate(doc *Document) []string {
	var errs []string

	for _, name := range doc.ProductNames() {
		p := doc.Products[name]
		if p.DefaultVersion == "" {
			errs = append(errs, fmt.Sprintf("product '%s': 'default_version' is required", name))
		} else if _, ok := doc.Versions[p.DefaultVersion]; !ok {
			errs = append(errs, fmt.Sprintf("product '%s': default_version '%s' is not a declared version", name, p.DefaultVersion))
		}
	}

	for _, name := range doc.VersionNames() {
		v := doc.Versions[name]
		if v.OEInit == "" {
			errs = append(errs, fmt.Sprintf("version '%s': 'oeinit' is required", name))
		}

		if v.Pyrex != nil {
			if v.Pyrex.Root == "" {
				errs = append(errs, fmt.Sprintf("version '%s': pyrex 'root' is required", name))
			}
			if v.Pyrex.Conf == "" {
				errs = append(errs, fmt.Sprintf("version '%s': pyrex 'conf' is required", name))
			}
		}

		seen := make(map[string]bool)
		for i, lc := range v.Layers {
			if lc.Name == "" {
				errs = append(errs, fmt.Sprintf("version '%s': layers[%d]: 'name' is required", name, i))
			} else if seen[lc.Name] {
				errs = append(errs, fmt.Sprintf("version '%s': duplicate layer collection '%s'", name, lc.Name))
			} else {
				seen[lc.Name] = true
			}
		}
	}

	return errs
}
