package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bianoble/whisk/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errReported marks an error whose message was already printed by the
// command itself. Execute exits non-zero without printing it again.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "whisk",
	Short: "Layered build environment configurator",
	Long: `whisk configures a multi-product Yocto build environment. It resolves
the product, mode, site and version selection from the command line, the
cached selection of the previous run, and the project defaults, then
generates the environment file and the bitbake configuration that drive
the build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("whisk %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
		fmt.Printf("  config:  v%d\n", config.FormatVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	// Disable color output if NO_COLOR is set in the environment
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		color.NoColor = true
	}

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}
