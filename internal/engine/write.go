package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bianoble/whisk/internal/config"
)

const generatedBanner = "# This file was dynamically generated by whisk\n"

// Writer emits the environment export file and the generated build
// configuration. Paths are absolute by the time a Writer is built.
type Writer struct {
	EnvPath string // environment export file consumed by the calling shell
	Root    string // absolute project root
	ToolDir string // directory holding the built-in meta-whisk layer
}

// WriteEnv renders the environment export file. It is rewritten on every
// run; on init it also chains into the version bootstrap.
func (w *Writer) WriteEnv(doc *config.Document, version config.Version, r *Resolved) error {
	var b strings.Builder

	fmt.Fprintf(&b, "export WHISK_PRODUCTS=\"%s\"\n", strings.Join(r.Products, " "))
	fmt.Fprintf(&b, "export WHISK_MODE=\"%s\"\n", r.Mode)
	fmt.Fprintf(&b, "export WHISK_SITE=\"%s\"\n", r.Site)
	fmt.Fprintf(&b, "export WHISK_VERSION=\"%s\"\n", r.Version)
	fmt.Fprintf(&b, "export WHISK_ACTUAL_VERSION=\"%s\"\n", r.ActualVersion)
	b.WriteString("\n")
	fmt.Fprintf(&b, "export WHISK_BUILD_DIR=%s\n", r.BuildDir)
	fmt.Fprintf(&b, "export WHISK_INIT=%t\n", r.Init)

	b.WriteString(doc.Hooks.PreInit)
	b.WriteString("\n")

	if r.Init {
		if version.BitbakeDir != "" {
			fmt.Fprintf(&b, "export BITBAKEDIR=\"%s\"\n", version.BitbakeDir)
		}
		b.WriteString(`export BB_ENV_EXTRAWHITE="${BB_ENV_EXTRAWHITE} WHISK_PROJECT_ROOT WHISK_PRODUCTS WHISK_MODE WHISK_SITE WHISK_ACTUAL_VERSION"` + "\n")
		bootstrapFor(version, w.Root).emit(&b)
	}

	b.WriteString(doc.Hooks.PostInit)
	b.WriteString("\n")

	b.WriteString("unset WHISK_BUILD_DIR WHISK_INIT\n")

	if err := os.WriteFile(w.EnvPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing environment file %s: %w", w.EnvPath, err)
	}
	return nil
}

// bootstrap is the version bootstrap emitted into the environment file
// on init: either a direct source of the upstream init script, or an
// indirect launch through pyrex.
type bootstrap interface {
	emit(b *strings.Builder)
}

type directBootstrap struct {
	oeInit string
}

func (d directBootstrap) emit(b *strings.Builder) {
	fmt.Fprintf(b, ". %s $WHISK_BUILD_DIR\n", d.oeInit)
}

type pyrexBootstrap struct {
	root      string // absolute project root, bind-mounted into the container
	pyrexRoot string
	oeInit    string
	conf      string
}

func (p pyrexBootstrap) emit(b *strings.Builder) {
	fmt.Fprintf(b, "PYREX_CONFIG_BIND=\"%s\"\n", p.root)
	fmt.Fprintf(b, "PYREX_ROOT=\"%s\"\n", p.pyrexRoot)
	fmt.Fprintf(b, "PYREX_OEINIT=\"%s\"\n", p.oeInit)
	fmt.Fprintf(b, "PYREXCONFFILE=\"%s\"\n", p.conf)
	b.WriteString("\n")
	fmt.Fprintf(b, ". %s/pyrex-init-build-env $WHISK_BUILD_DIR\n", p.pyrexRoot)
}

// bootstrapFor picks the bootstrap variant once from the version entry.
func bootstrapFor(version config.Version, root string) bootstrap {
	if version.Pyrex != nil {
		return pyrexBootstrap{
			root:      root,
			pyrexRoot: version.Pyrex.Root,
			oeInit:    version.OEInit,
			conf:      version.Pyrex.Conf,
		}
	}
	return directBootstrap{oeInit: version.OEInit}
}

// WriteBuildConf renders site.conf, one multiconfig file per declared
// product, and bblayers.conf under the build directory. Files are
// written in that order with no rollback: a failure may leave earlier
// files behind.
func (w *Writer) WriteBuildConf(doc *config.Document, g *Graph, r *Resolved) error {
	confDir := filepath.Join(r.BuildDir, "conf")
	multiconfigDir := filepath.Join(confDir, "multiconfig")
	if err := os.MkdirAll(multiconfigDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", multiconfigDir, err)
	}

	if err := writeSiteConf(filepath.Join(confDir, "site.conf"), doc, r); err != nil {
		return err
	}

	for _, name := range doc.ProductNames() {
		path := filepath.Join(multiconfigDir, "product-"+name+".conf")
		if err := writeProductConf(path, name, doc.Products[name]); err != nil {
			return err
		}
	}

	return w.writeBBLayersConf(filepath.Join(confDir, "bblayers.conf"), g)
}

func writeSiteConf(path string, doc *config.Document, r *Resolved) error {
	var b strings.Builder
	b.WriteString(generatedBanner)

	b.WriteString(doc.Sites[r.Site].Conf)
	b.WriteString("\n")
	b.WriteString(doc.Modes[r.Mode].Conf)
	b.WriteString("\n")

	b.WriteString(`
WHISK_PRODUCT ?= "core"

# Set TMPDIR to a version specific location
TMPDIR_BASE ?= "${TOPDIR}/tmp/${WHISK_MODE}/${WHISK_ACTUAL_VERSION}"
DEPLOY_DIR_BASE ?= "${TOPDIR}/deploy/${WHISK_MODE}/${WHISK_ACTUAL_VERSION}"

TMPDIR = "${TMPDIR_BASE}/${WHISK_PRODUCT}"

# Set the deploy directory to output to a well-known location
DEPLOY_DIR = "${DEPLOY_DIR_${WHISK_PRODUCT}}"
DEPLOY_DIR_IMAGE = "${DEPLOY_DIR}/images"

DEPLOY_DIR_core = "${DEPLOY_DIR_BASE}/core"
`)

	coreTargets := make([]string, len(r.Products))
	for i, p := range r.Products {
		coreTargets[i] = fmt.Sprintf("${WHISK_TARGETS_%s}", p)
	}
	fmt.Fprintf(&b, "WHISK_TARGETS_core = \"%s\"\n", strings.Join(coreTargets, " "))

	for _, name := range doc.ProductNames() {
		targets := append([]string(nil), doc.Products[name].Targets...)
		sort.Strings(targets)
		fmt.Fprintf(&b, "DEPLOY_DIR_%s = \"${DEPLOY_DIR_BASE}/%s\"\n", name, name)
		fmt.Fprintf(&b, "WHISK_TARGETS_%s = \"%s\"\n", name, strings.Join(targets, " "))
	}

	b.WriteString("\n")

	fmt.Fprintf(&b, "BBMULTICONFIG = \"%s\"\n", strings.Join(multiconfigs(doc, r.Products), " "))
	b.WriteString(`BBMASK += "${BBMASK_${WHISK_PRODUCT}}"` + "\n")
	b.WriteString("\n")
	b.WriteString(`BB_HASHBASE_WHITELIST_append = " WHISK_PROJECT_ROOT"` + "\n")

	b.WriteString(doc.Core.Conf)
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// multiconfigs collects the implicit product-<name> multiconfig of every
// active product plus their declared extras, sorted.
func multiconfigs(doc *config.Document, products []string) []string {
	set := make(map[string]bool)
	for _, p := range products {
		set["product-"+p] = true
		for _, mc := range doc.Products[p].Multiconfigs {
			set[mc] = true
		}
	}
	out := make([]string, 0, len(set))
	for mc := range set {
		out = append(out, mc)
	}
	sort.Strings(out)
	return out
}

func writeProductConf(path, name string, p config.Product) error {
	var b strings.Builder
	b.WriteString(generatedBanner)
	fmt.Fprintf(&b, "WHISK_PRODUCT = \"%s\"\n", name)
	fmt.Fprintf(&b, "WHISK_PRODUCT_DESCRIPTION = \"%s\"\n", p.Description)
	b.WriteString("\n")
	b.WriteString(p.Conf)
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (w *Writer) writeBBLayersConf(path string, g *Graph) error {
	var b strings.Builder
	b.WriteString(generatedBanner)
	b.WriteString(`BBPATH = "${TOPDIR}"` + "\n")
	b.WriteString(`BBFILES ?= ""` + "\n")
	b.WriteString("\n")

	for _, ns := range g.Namespaces {
		for _, p := range ns.Masked {
			fmt.Fprintf(&b, "BBMASK_%s += \"%s\"\n", ns.Name, p)
		}
		b.WriteString("\n")
	}

	for _, p := range g.Included {
		fmt.Fprintf(&b, "BBLAYERS += \"%s\"\n", p)
	}

	fmt.Fprintf(&b, "BBLAYERS += \"%s/meta-whisk\"\n\n", w.ToolDir)

	b.WriteString("\n")

	b.WriteString("# This line gives devtool a place to add its layers\n")
	b.WriteString(`BBLAYERS += ""` + "\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
