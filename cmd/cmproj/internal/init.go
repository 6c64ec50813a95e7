package internal

import (
	"fmt"

	"github.com/goplus/cmproj/internal/scaffold"
	"github.com/goplus/cmproj/pkgs/manifest"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project from CMake.toml",
	Long: `Init reads the CMake.toml in the project directory, creates the missing
directories and sources and regenerates CMakeLists.txt.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing sources")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(manifestPath())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", manifest.FileName, err)
	}
	infof(cmd, "Project %s (%s)", m.Name, m.Type.Describe())
	printDeps(cmd, m)

	written, err := scaffold.Project(workDir, m, initForce)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	successf(cmd, "Project initialized. Created or updated:")
	out := cmd.OutOrStdout()
	for _, f := range written {
		fmt.Fprintf(out, "  %s\n", f)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, scaffold.Guide(m, plat, true))
	return nil
}
