// internal/cli/inspect.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectEntries bool

var inspectCmd = &cobra.Command{
	Use:     "inspect <package>",
	Aliases: []string{"info"},
	Short:   "Show a package's manifest and the module chosen for this platform",
	Args:    cobra.ExactArgs(1),
	RunE:    runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectEntries, "entries", false, "list every entry in the package")
}

func runInspect(cmd *cobra.Command, args []string) error {
	info, err := newLoader().Inspect(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Package:  %s\n", info.Manifest.Name)
	fmt.Fprintf(out, "File:     %s (%s)\n", info.Path, info.Format)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
	fmt.Fprintf(out, "\nPlatforms:\n")
	for _, p := range info.Manifest.PlatformNames() {
		marker := " "
		if p == info.Platform.Identifier {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %-8s %s\n", marker, p, info.Manifest.Platforms[p])
	}

	switch {
	case info.ModulePath == "":
		fmt.Fprintf(out, "\nNo module for %s\n", info.Platform.Identifier)
	case !info.ModuleInPackage:
		fmt.Fprintf(out, "\n%s is not in the package\n", info.ModulePath)
	}

	if inspectEntries {
		fmt.Fprintf(out, "\nEntries:\n")
		for _, e := range info.Entries {
			fmt.Fprintf(out, "  %10d  %s\n", e.Size, e.Name)
		}
	}

	return nil
}
