package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/bianoble/whisk/internal/config"
	"github.com/bianoble/whisk/internal/engine"
	"github.com/bianoble/whisk/internal/selection"
	"github.com/spf13/cobra"
)

var (
	configureRoot     string
	configureConf     string
	configureEnv      string
	configureInit     bool
	configureProducts []string
	configureMode     string
	configureSite     string
	configureVersion  string
	configureBuildDir string
	configureList     bool
	configureWrite    bool
	configureNoCache  bool
	configureQuiet    bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the build environment",
	Long: `Resolves the build selection, writes the environment file, and
regenerates the bitbake configuration when the selection changed, on
initialization, or when --write is given. Selection problems are
reported with the list of valid choices.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		root, err := filepath.Abs(configureRoot)
		if err != nil {
			return fmt.Errorf("resolving project root %s: %w", configureRoot, err)
		}

		doc, err := config.Load(configureConf, templateVars(root))
		if err != nil {
			fmt.Fprintln(out, err)
			return errReported
		}

		var prior *selection.Selection
		if !configureNoCache {
			prior = selection.Load(doc.CachePath(root))
		}

		if configureList {
			printCatalogs(out, engine.Catalogs(doc, prior))
			return nil
		}

		eng := &engine.Engine{
			Root:    root,
			EnvPath: configureEnv,
			ToolDir: toolDir(),
		}
		res, err := eng.Run(cmd.Context(), doc, prior, engine.RunOptions{
			Overrides: engine.Overrides{
				Products: configureProducts,
				Mode:     configureMode,
				Site:     configureSite,
				Version:  configureVersion,
				BuildDir: configureBuildDir,
			},
			Init:    configureInit,
			Write:   configureWrite,
			NoCache: configureNoCache,
		})
		if err != nil {
			return reportRunError(out, doc, prior, err)
		}

		// A write-only refresh stays silent; everything else prints the
		// selection unless asked not to.
		if res.WroteBuildConf && !configureInit {
			return nil
		}
		if !configureQuiet {
			printSummary(out, res.Selection)
		}
		return nil
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureRoot, "root", "", "project root")
	configureCmd.Flags().StringVar(&configureConf, "conf", "", "project configuration file")
	configureCmd.Flags().StringVar(&configureEnv, "env", "", "path to environment output file")
	configureCmd.Flags().BoolVar(&configureInit, "init", false, "run first-time initialization")
	configureCmd.Flags().StringArrayVar(&configureProducts, "products", nil, "change build product(s)")
	configureCmd.Flags().StringVar(&configureMode, "mode", "", "change build mode")
	configureCmd.Flags().StringVar(&configureSite, "site", "", "change build site")
	configureCmd.Flags().StringVar(&configureVersion, "version", "", "set Yocto version")
	configureCmd.Flags().StringVar(&configureBuildDir, "build-dir", "", "set build directory")
	configureCmd.Flags().BoolVar(&configureList, "list", false, "list options")
	configureCmd.Flags().BoolVar(&configureWrite, "write", false, "write out new config files (useful if product configuration has changed)")
	configureCmd.Flags().BoolVarP(&configureNoCache, "no-config", "n", false, "ignore cached user configuration")
	configureCmd.Flags().BoolVarP(&configureQuiet, "quiet", "q", false, "suppress non-error output")

	_ = configureCmd.MarkFlagRequired("root")
	_ = configureCmd.MarkFlagRequired("conf")
	_ = configureCmd.MarkFlagRequired("env")

	rootCmd.AddCommand(configureCmd)
}
