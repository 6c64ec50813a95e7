package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/cmproj/internal/scaffold"
	"github.com/goplus/cmproj/pkgs/manifest"
	"github.com/spf13/cobra"
)

var (
	newExecutable bool
	newStatic     bool
	newShared     bool
	newPCH        bool
	newDeps       []string
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `New creates a project directory holding a CMake.toml descriptor, a
CMakeLists.txt and starter sources for an executable or a library.`,
	Example: `  cmproj new myapp -e -D fmt -D sdl2
  cmproj new mylib -s -D boost`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().BoolVarP(&newExecutable, "executable", "e", false, "Create an executable project (default)")
	newCmd.Flags().BoolVarP(&newStatic, "static", "s", false, "Create a static library project")
	newCmd.Flags().BoolVarP(&newShared, "shared", "d", false, "Create a shared library project")
	newCmd.Flags().BoolVarP(&newPCH, "pch", "p", false, "Enable precompiled headers")
	newCmd.Flags().StringArrayVarP(&newDeps, "dep", "D", nil, "Add a pkg-config dependency (repeatable)")
	newCmd.MarkFlagsMutuallyExclusive("executable", "static", "shared")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	name := manifest.DefaultName
	if len(args) > 0 {
		name = args[0]
	} else {
		warnf(cmd, "no project name given, using %s", name)
	}
	if strings.ContainsAny(name, `/\ "'`) || name == "." || name == ".." {
		return fmt.Errorf("invalid project name %q", name)
	}

	typ := manifest.Executable
	switch {
	case newStatic:
		typ = manifest.Static
	case newShared:
		typ = manifest.Shared
	}
	m := manifest.New(name, typ)
	m.PrecompileHeaders = newPCH
	if err := addDeps(cmd, m, newDeps); err != nil {
		return err
	}

	root := filepath.Join(workDir, name)
	descPath := filepath.Join(root, manifest.FileName)
	if _, err := os.Stat(descPath); err == nil {
		return fmt.Errorf("%s already exists, run 'cmproj init' inside it instead", descPath)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := m.WriteFile(descPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifest.FileName, err)
	}

	// Generate from what was persisted.
	saved, err := manifest.Load(descPath)
	if saved == nil {
		return fmt.Errorf("failed to read %s: %w", manifest.FileName, err)
	}
	if err != nil {
		warnf(cmd, "could not fully parse %s, using default settings", manifest.FileName)
	}
	if _, err := scaffold.Project(root, saved, false); err != nil {
		return fmt.Errorf("failed to create project files: %w", err)
	}

	infof(cmd, "Project %s (%s), platform %s", saved.Name, saved.Type.Describe(), plat.Name)
	printDeps(cmd, saved)
	successf(cmd, "\nProject created:")
	out := cmd.OutOrStdout()
	fmt.Fprint(out, scaffold.Tree(saved))
	fmt.Fprintln(out)
	fmt.Fprint(out, scaffold.Guide(saved, plat, false))
	return nil
}
