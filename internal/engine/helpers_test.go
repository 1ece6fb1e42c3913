package engine

import (
	"github.com/bianoble/whisk/internal/config"
)

// testDoc builds a configuration with two compatible products, one on a
// different default version, and an extra layer collection no namespace
// requests.
func testDoc() *config.Document {
	return &config.Document{
		Version: 1,
		Defaults: config.Defaults{
			Mode:     "internal",
			Site:     "home",
			Products: []string{"widget"},
		},
		Core: config.Core{
			Layers: []string{"core"},
			Conf:   "INHERIT += \"whisk-hooks\"\n",
		},
		Products: map[string]config.Product{
			"widget": {
				Description:    "Widget device",
				DefaultVersion: "dunfell",
				Layers:         []string{"widget-layers"},
				Targets:        []string{"widget-image"},
				Conf:           "MACHINE = \"widget\"\n",
			},
			"camera": {
				Description:    "Camera device",
				DefaultVersion: "dunfell",
				Layers:         []string{"camera-layers"},
				Targets:        []string{"camera-image", "camera-dev-image"},
				Multiconfigs:   []string{"camera-recovery"},
				Conf:           "MACHINE = \"camera\"\n",
			},
			"legacy": {
				Description:    "Legacy device",
				DefaultVersion: "zeus",
				Layers:         []string{"legacy-layers"},
			},
		},
		Modes: map[string]config.Mode{
			"internal": {Description: "Internal development", Conf: "INTERNAL = \"1\"\n"},
			"release":  {Description: "Release build", Conf: "RELEASE = \"1\"\n"},
		},
		Sites: map[string]config.Site{
			"home":   {Description: "Home office", Conf: "SSTATE_MIRRORS = \"\"\n"},
			"office": {Description: "Main office", Conf: "SSTATE_MIRRORS = \"file://office\"\n"},
		},
		Versions: map[string]config.Version{
			"dunfell": {
				OEInit: "/src/dunfell/oe-init-build-env",
				Layers: []config.LayerCollection{
					{Name: "core", Paths: []string{"/src/dunfell/poky/meta", "/src/dunfell/poky/meta-poky"}},
					{Name: "widget-layers", Paths: []string{"/src/dunfell/meta-widget"}},
					{Name: "camera-layers", Paths: []string{"/src/dunfell/meta-camera"}},
					{Name: "extra", Paths: []string{"/src/dunfell/meta-extra"}},
				},
			},
			"zeus": {
				OEInit: "/src/zeus/oe-init-build-env",
				Layers: []config.LayerCollection{
					{Name: "core", Paths: []string{"/src/zeus/poky/meta"}},
					{Name: "legacy-layers", Paths: []string{"/src/zeus/meta-legacy"}},
				},
			},
		},
	}
}
