package cmd

import (
	"strings"
	"testing"

	"github.com/bianoble/whisk/internal/engine"
	"github.com/fatih/color"
)

func TestPrintCatalogAlignment(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var b strings.Builder
	printCatalog(&b, engine.Catalog{
		Name: engine.CatalogProducts,
		Entries: []engine.CatalogEntry{
			{Name: "aa", Description: "First thing", Active: true},
			{Name: "longer-name", Description: "Second thing"},
		},
	})

	want := " *  aa           First thing\n" +
		"    longer-name  Second thing\n"
	if b.String() != want {
		t.Errorf("catalog:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestPrintCatalogNoDescriptions(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var b strings.Builder
	printCatalog(&b, engine.Catalog{
		Name: engine.CatalogVersions,
		Entries: []engine.CatalogEntry{
			{Name: "dunfell"},
			{Name: "default", Active: true},
		},
	})

	// No trailing whitespace after bare names.
	want := "    dunfell\n *  default\n"
	if b.String() != want {
		t.Errorf("catalog:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestPrintCatalogsTitles(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var b strings.Builder
	printCatalogs(&b, []engine.Catalog{
		{Name: engine.CatalogModes, Title: "Possible modes:", Entries: []engine.CatalogEntry{{Name: "internal", Active: true}}},
		{Name: engine.CatalogSites, Title: "Possible sites:", Entries: []engine.CatalogEntry{{Name: "home"}}},
	})

	want := "Possible modes:\n *  internal\nPossible sites:\n    home\n"
	if b.String() != want {
		t.Errorf("catalogs:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestPrintSummary(t *testing.T) {
	var b strings.Builder
	printSummary(&b, &engine.Resolved{
		Products:      []string{"camera", "widget"},
		Mode:          "internal",
		Site:          "home",
		Version:       "dunfell",
		ActualVersion: "dunfell",
	})

	want := "PRODUCT    = camera widget\n" +
		"MODE       = internal\n" +
		"SITE       = home\n" +
		"VERSION    = dunfell\n"
	if b.String() != want {
		t.Errorf("summary:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestPrintSummarySymbolicVersion(t *testing.T) {
	var b strings.Builder
	printSummary(&b, &engine.Resolved{
		Products:      []string{"widget"},
		Mode:          "internal",
		Site:          "home",
		Version:       "default",
		ActualVersion: "dunfell",
	})

	if !strings.Contains(b.String(), "VERSION    = default (dunfell)\n") {
		t.Errorf("summary does not show the concrete version:\n%s", b.String())
	}
}

func TestTemplateVars(t *testing.T) {
	t.Setenv("WHISK_TEST_MARKER", "present")

	vars := templateVars("/work/project")

	if vars["WHISK_PROJECT_ROOT"] != "/work/project" {
		t.Errorf("WHISK_PROJECT_ROOT = %q", vars["WHISK_PROJECT_ROOT"])
	}
	if vars["WHISK_TEST_MARKER"] != "present" {
		t.Errorf("environment not captured: %q", vars["WHISK_TEST_MARKER"])
	}
}
