package internal

import (
	"fmt"
	"os"

	"github.com/goplus/cmproj/internal/env"
	"github.com/goplus/cmproj/internal/platform"
	"github.com/goplus/cmproj/pkgs/buildsys"
	"github.com/gookit/color"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	noColor bool
	workDir string
)

var (
	cfg  = &env.Config{CMake: "cmake", BuildDir: "build"}
	plat = platform.Current()

	// executor runs every external command; tests replace it.
	executor buildsys.Executor = buildsys.OSExecutor{}
)

var rootCmd = &cobra.Command{
	Use:   "cmproj",
	Short: "cmproj creates and builds CMake projects",
	Long: `cmproj scaffolds C++ projects described by a CMake.toml file and drives
cmake to configure, build, install and uninstall them.`,
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRun: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", ".", "Project directory")
}

func setup(cmd *cobra.Command, args []string) {
	cfg = env.Load(workDir)
	level := cfg.LogLevel
	if verbose {
		level = log.Ldebug
	}
	log.SetOutputLevel(level)
	if noColor {
		color.Disable()
	}
	log.Debugf("%s: cmake=%s build-dir=%s generator=%q", plat.Name, cfg.CMake, cfg.BuildDir, cfg.Generator)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
//
// A failing external command makes the process exit with that command's
// status; any other error exits with 1.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Danger.Sprint("error: ")+err.Error())
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if code, ok := buildsys.ExitCode(err); ok {
		return code
	}
	return 1
}
