// internal/cli/run.go
package cli

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <package> <symbol>",
	Short: "Call an exported function of a package's native module",
	Long: `Read the package manifest, pick the module for this platform, extract the
package and call <symbol> in the module. The export must take no arguments and
return nothing.

Examples:
  dllx run plugin.dllx run
  dllx run plugin.dllx init --work-dir ./extracted
  dllx run plugin.dllx init --platform macos --debug`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	return newLoader().LoadAndCall(args[0], args[1])
}
