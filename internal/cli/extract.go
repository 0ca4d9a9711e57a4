// internal/cli/extract.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <package> <dir>",
	Short: "Extract every entry of a package into a directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	stats, err := newLoader().Extract(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d files, %d directories, %d symlinks (%d bytes) to %s\n",
		stats.Files, stats.Dirs, stats.Symlinks, stats.Bytes, args[1])
	return nil
}
