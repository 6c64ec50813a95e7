package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallDir string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove installed files",
	Long:  `Uninstall removes the files recorded in install_manifest.txt by the last install.`,
	Args:  cobra.NoArgs,
	RunE:  runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVarP(&uninstallDir, "build-dir", "b", "", "Build directory (default \"build\")")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	n, err := b.Uninstall(buildDirFlag(uninstallDir))
	if err != nil {
		return fmt.Errorf("failed to uninstall: %w", err)
	}
	successf(cmd, "Removed %d installed file(s)", n)
	return nil
}
