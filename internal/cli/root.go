// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/dllx"
	"github.com/arc-language/dllx/pkg/config"
)

var (
	cfgFile  string
	workDir  string
	platform string
	keep     bool
	debug    bool
	cfg      *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dllx",
	Short: "Platform-aware native plugin packages",
	Long: `dllx - platform-aware native plugin packages

A .dllx package bundles a manifest.json with one native module per platform
(windows, macos, linux, ios, android) and any supporting files. dllx picks the
module for the running platform, extracts the package and calls an exported
function in it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dllx/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "extract packages here instead of a temporary directory")
	rootCmd.PersistentFlags().StringVar(&platform, "platform", "", "platform identifier to resolve (windows, macos, linux, ios, android)")
	rootCmd.PersistentFlags().BoolVar(&keep, "keep", false, "keep the temporary extraction directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(platformCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// Override config with flags
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if platform != "" {
		cfg.Platform = platform
	}
	if keep {
		cfg.KeepExtracted = true
	}
	if debug {
		cfg.Debug = true
	}
}

// newLoader builds a loader from the resolved configuration
func newLoader() *dllx.Loader {
	if cfg == nil {
		initConfig()
	}
	return dllx.NewLoader(dllx.FromFileConfig(cfg))
}
