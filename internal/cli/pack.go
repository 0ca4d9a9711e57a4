// internal/cli/pack.go
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arc-language/dllx/pkg/archive"
)

var (
	packOutput string
	packFormat string
)

var packCmd = &cobra.Command{
	Use:   "pack <dir>",
	Short: "Build a package from a directory containing manifest.json",
	Long: `Validate <dir>/manifest.json and write the directory as a package.

Examples:
  dllx pack ./build
  dllx pack ./build -o myplugin.dllx
  dllx pack ./build -o myplugin.tar.xz --format tar.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "output file (default is <dir>.dllx)")
	packCmd.Flags().StringVar(&packFormat, "format", "", "container format: zip, tar, tar.gz, tar.xz, tar.zst, nar (default from output name, else zip)")
}

func runPack(cmd *cobra.Command, args []string) error {
	srcDir := args[0]

	output := packOutput
	if output == "" {
		abs, err := filepath.Abs(srcDir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", srcDir, err)
		}
		output = abs + ".dllx"
	}

	format := archive.FormatZip
	if packFormat != "" {
		var err error
		if format, err = archive.ParseFormat(packFormat); err != nil {
			return err
		}
	} else if f, ok := archive.FormatFromName(output); ok {
		format = f
	}

	m, err := newLoader().Pack(srcDir, output, format)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packed %s (%d platforms) into %s\n", m.Name, len(m.Platforms), output)
	return nil
}
