package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bianoble/whisk/internal/config"
	"github.com/bianoble/whisk/internal/engine"
	"github.com/bianoble/whisk/internal/selection"
	"github.com/fatih/color"
)

// templateVars snapshots the process environment for configuration
// template expansion. The project root is always available to the
// template, matching what the generated environment exports.
func templateVars(root string) map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	vars["WHISK_PROJECT_ROOT"] = root
	return vars
}

// toolDir locates the directory holding the bundled meta-whisk layer,
// next to the executable.
func toolDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// reportRunError prints selection and layer problems to the command
// output, with the relevant option catalog where one helps. Other
// errors pass through for the usual stderr reporting.
func reportRunError(w io.Writer, doc *config.Document, prior *selection.Selection, err error) error {
	var selErr *engine.SelectionError
	if errors.As(err, &selErr) {
		fmt.Fprintln(w, selErr.Msg)
		if selErr.Catalog != "" {
			for _, c := range engine.Catalogs(doc, prior) {
				if c.Name == selErr.Catalog {
					printCatalog(w, c)
				}
			}
		}
		return errReported
	}

	var missing *engine.MissingLayersError
	if errors.As(err, &missing) {
		fmt.Fprintln(w, missing.Error())
		return errReported
	}

	return err
}

// printCatalogs renders every option catalog with its title.
func printCatalogs(w io.Writer, catalogs []engine.Catalog) {
	for _, c := range catalogs {
		fmt.Fprintln(w, c.Title)
		printCatalog(w, c)
	}
}

// printCatalog renders one catalog as plain aligned columns: a marker
// column for the active entries, the name column padded to the longest
// name, then the description. Trailing whitespace is stripped.
func printCatalog(w io.Writer, c engine.Catalog) {
	nameWidth := 0
	for _, e := range c.Entries {
		if len(e.Name) > nameWidth {
			nameWidth = len(e.Name)
		}
	}

	for _, e := range c.Entries {
		marker := "  "
		if e.Active {
			marker = " " + color.GreenString("*")
		}
		line := fmt.Sprintf("%s  %-*s  %s", marker, nameWidth, e.Name, e.Description)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// printSummary prints the resolved selection. The concrete version is
// shown after the symbolic one only when they differ.
func printSummary(w io.Writer, r *engine.Resolved) {
	fmt.Fprintf(w, "PRODUCT    = %s\n", strings.Join(r.Products, " "))
	fmt.Fprintf(w, "MODE       = %s\n", r.Mode)
	fmt.Fprintf(w, "SITE       = %s\n", r.Site)
	if r.Version != r.ActualVersion {
		fmt.Fprintf(w, "VERSION    = %s (%s)\n", r.Version, r.ActualVersion)
	} else {
		fmt.Fprintf(w, "VERSION    = %s\n", r.Version)
	}
}
