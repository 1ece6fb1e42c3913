package whisk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bianoble/whisk/internal/engine"
)

// writeConfig writes a minimal valid project configuration and returns
// its path.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "whisk.yaml")
	content := `version: 1

defaults:
  mode: internal
  site: home
  products:
    - widget

core:
  layers:
    - core

products:
  widget:
    description: Widget device
    default_version: dunfell
    layers:
      - widget-layers
    targets:
      - widget-image

modes:
  internal:
    description: Internal development

sites:
  home:
    description: Home office

versions:
  dunfell:
    oeinit: /src/dunfell/oe-init-build-env
    layers:
      - name: core
        paths:
          - /src/dunfell/poky/meta
      - name: widget-layers
        paths:
          - /src/dunfell/meta-widget
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// newTestClient creates a client with isolated temp paths.
func newTestClient(t *testing.T, dir string) *Client {
	t.Helper()
	client, err := New(Options{
		Root:    dir,
		ToolDir: "/opt/whisk",
		Env:     map[string]string{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestNewDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)

	client, err := New(Options{Root: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.confPath != filepath.Join(dir, "whisk.yaml") {
		t.Errorf("confPath = %q", client.confPath)
	}
	if client.envPath != filepath.Join(dir, "whisk.env") {
		t.Errorf("envPath = %q", client.envPath)
	}
	if client.toolDir == "" {
		t.Error("toolDir not defaulted")
	}
	if client.env == nil {
		t.Error("env not defaulted to the process environment")
	}
}

func TestNewRequiresRoot(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestClientConfigure(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	client := newTestClient(t, dir)

	res, err := client.Configure(context.Background(), ConfigureOptions{
		Init:     true,
		BuildDir: filepath.Join(dir, "build"),
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if !res.WroteBuildConf {
		t.Error("init did not write the build configuration")
	}
	if res.Selection.ActualVersion != "dunfell" {
		t.Errorf("actual version = %q", res.Selection.ActualVersion)
	}
	if _, err := os.Stat(filepath.Join(dir, "whisk.env")); err != nil {
		t.Errorf("environment file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "conf", "site.conf")); err != nil {
		t.Errorf("site.conf: %v", err)
	}
}

func TestClientConfigureSelectionError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	client := newTestClient(t, dir)

	_, err := client.Configure(context.Background(), ConfigureOptions{
		Init:     true,
		Products: []string{"ghost"},
		BuildDir: filepath.Join(dir, "build"),
	})

	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(err, engine.ErrUnknownProduct) {
		t.Errorf("kind = %v", selErr.Kind)
	}
}

func TestClientConfigureRemembersSelection(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	client := newTestClient(t, dir)

	_, err := client.Configure(context.Background(), ConfigureOptions{
		Init:     true,
		Mode:     "internal",
		BuildDir: filepath.Join(dir, "build"),
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	res, err := client.Configure(context.Background(), ConfigureOptions{})
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if res.WroteBuildConf {
		t.Error("plain rerun regenerated the build configuration")
	}
	if res.Selection.BuildDir != filepath.Join(dir, "build") {
		t.Errorf("build dir = %q, want the cached one", res.Selection.BuildDir)
	}
}

func TestClientCatalogs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	client := newTestClient(t, dir)

	catalogs, err := client.Catalogs(context.Background())
	if err != nil {
		t.Fatalf("Catalogs: %v", err)
	}
	if len(catalogs) != 4 {
		t.Fatalf("catalogs = %d, want 4", len(catalogs))
	}

	products := catalogs[0]
	if products.Name != engine.CatalogProducts {
		t.Errorf("first catalog = %q", products.Name)
	}
	if len(products.Entries) != 1 || products.Entries[0].Name != "widget" {
		t.Errorf("product entries = %+v", products.Entries)
	}
	if !products.Entries[0].Active {
		t.Error("default product not marked active")
	}
}

func TestClientCatalogsCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	client := newTestClient(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Catalogs(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
