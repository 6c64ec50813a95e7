package internal

import (
	"fmt"

	"github.com/goplus/cmproj/internal/build"
	"github.com/goplus/cmproj/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	buildDebug     bool
	buildRelease   bool
	buildPrefix    string
	buildDir       string
	buildConfigure bool
	buildClean     bool
	buildJobs      int
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [-- cmake-args...]",
	Short: "Configure and build the project",
	Long: `Build configures the project with cmake when the build directory has no
cache for the requested mode, then builds it. Arguments after -- are passed
to the configure step unchanged.`,
	Example: `  cmproj build -r
  cmproj build -d -p /opt/hello -- -DENABLE_TESTS=ON`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildDebug, "debug", "d", false, "Build in Debug mode (default)")
	buildCmd.Flags().BoolVarP(&buildRelease, "release", "r", false, "Build in Release mode")
	buildCmd.Flags().StringVarP(&buildPrefix, "prefix", "p", "", "Install prefix passed to configure")
	buildCmd.Flags().StringVarP(&buildDir, "build-dir", "b", "", "Build directory (default \"build\")")
	buildCmd.Flags().BoolVarP(&buildConfigure, "configure", "c", false, "Only run the configure step")
	buildCmd.Flags().BoolVarP(&buildClean, "clean", "C", false, "Remove the build directory first")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Parallel build jobs, 0 for one per CPU, -1 for the generator default")
	buildCmd.MarkFlagsMutuallyExclusive("debug", "release")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	m := loadProject(cmd)
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	prefix := buildPrefix
	if prefix == "" {
		prefix = installPrefix(nil)
	}
	req := build.Request{
		Mode:          modeFlag(buildDebug, buildRelease, build.DefaultMode),
		Prefix:        prefix,
		BuildDir:      buildDirFlag(buildDir),
		ConfigureOnly: buildConfigure,
		Clean:         buildClean,
		Extra:         args,
		Generator:     cfg.Generator,
		Jobs:          buildJobs,
	}
	infof(cmd, "Building %s in %s mode", m.Name, req.Mode)

	res, err := b.Run(cmd.Context(), m, req)
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", m.Name, err)
	}
	if !res.Configured {
		infof(cmd, "Build cache found, configure skipped")
	}
	if res.Built {
		successf(cmd, "Build succeeded: %s", scaffold.Artifact(m, plat))
	} else {
		successf(cmd, "Configured %s in %s", m.Name, b.BuildDir(req.BuildDir))
	}
	return nil
}
