package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanDir string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build directory contents",
	Long:  `Clean removes the build directory, including the cmake cache, and recreates it empty.`,
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanDir, "build-dir", "b", "", "Build directory (default \"build\")")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	dir := buildDirFlag(cleanDir)
	cleaned, err := b.Clean(dir)
	if err != nil {
		return fmt.Errorf("failed to clean %s: %w", dir, err)
	}
	if !cleaned {
		infof(cmd, "Build directory %s did not exist, nothing to clean", dir)
		return nil
	}
	successf(cmd, "Build cache cleaned")
	return nil
}
