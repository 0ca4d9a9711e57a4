// internal/cli/platform.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/dllx/pkg/manifest"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the platform packages are resolved against",
	RunE:  runPlatform,
}

func runPlatform(cmd *cobra.Command, args []string) error {
	plat := newLoader().Platform()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Platform: %s/%s\n", plat.OS, plat.Arch)
	fmt.Fprintf(out, "Manifest key: %s\n", plat.Identifier)
	if !plat.Supported() {
		fmt.Fprintf(out, "\n%s is not a recognized platform; no package will match\n", plat.Identifier)
		return nil
	}
	fmt.Fprintf(out, "Library extensions: %v\n", plat.Extensions)

	fmt.Fprintf(out, "\nRecognized platforms:\n")
	for _, p := range manifest.Known {
		marker := " "
		if p == plat.Identifier {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, p)
	}

	return nil
}
