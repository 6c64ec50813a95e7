package internal

import (
	"fmt"
	"slices"

	"github.com/goplus/cmproj/internal/scaffold"
	"github.com/goplus/cmproj/pkgs/manifest"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <dep>...",
	Short: "Add dependencies to the project",
	Long: `Add appends pkg-config dependencies to CMake.toml and regenerates
CMakeLists.txt. Dependencies already listed are skipped.`,
	Example: `  cmproj add fmt sdl2`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	path := manifestPath()
	m, err := manifest.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", manifest.FileName, err)
	}

	var deps []string
	for _, dep := range args {
		if slices.Contains(m.Deps, dep) || slices.Contains(deps, dep) {
			infof(cmd, "%s is already a dependency", dep)
			continue
		}
		deps = append(deps, dep)
	}
	before := len(m.Deps)
	if err := addDeps(cmd, m, deps); err != nil {
		return err
	}
	if len(m.Deps) == before {
		return nil
	}

	if err := m.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifest.FileName, err)
	}
	if _, err := scaffold.Project(workDir, m, false); err != nil {
		return fmt.Errorf("failed to regenerate %s: %w", scaffold.ListsFile, err)
	}
	successf(cmd, "Added %v to %s", m.Deps[before:], m.Name)
	infof(cmd, "Install them with %s, then rebuild with 'cmproj build -C'", plat.PackageManagerHint())
	return nil
}
