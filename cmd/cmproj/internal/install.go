package internal

import (
	"fmt"

	"github.com/goplus/cmproj/internal/build"
	"github.com/goplus/cmproj/internal/env"
	"github.com/spf13/cobra"
)

var (
	installDebug bool
	installDir   string
)

var installCmd = &cobra.Command{
	Use:   "install [prefix]",
	Short: "Build the project and install it",
	Long: `Install builds the project in Release mode and installs it under prefix.
Without a prefix the CMPROJ_PREFIX variable is used, then a per-user
location derived from the home directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installDebug, "debug", "d", false, "Build in Debug mode instead of Release")
	installCmd.Flags().StringVarP(&installDir, "build-dir", "b", "", "Build directory (default \"build\")")
	rootCmd.AddCommand(installCmd)
}

func installPrefix(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Prefix != "" {
		return cfg.Prefix
	}
	return plat.DefaultPrefix(env.HomeDir())
}

func runInstall(cmd *cobra.Command, args []string) error {
	m := loadProject(cmd)
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	req := build.Request{
		Mode:      modeFlag(installDebug, false, "Release"),
		Prefix:    installPrefix(args),
		BuildDir:  buildDirFlag(installDir),
		Generator: cfg.Generator,
	}
	infof(cmd, "Installing %s to %s", m.Name, req.Prefix)
	if _, err := b.Install(cmd.Context(), m, req); err != nil {
		return fmt.Errorf("failed to install %s: %w", m.Name, err)
	}
	successf(cmd, "Installed %s to %s", m.Name, req.Prefix)
	return nil
}
