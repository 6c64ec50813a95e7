package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goplus/cmproj/internal/build"
	"github.com/goplus/cmproj/pkgs/manifest"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func infof(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), color.Info.Sprintf(format, args...))
}

func successf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), color.Success.Sprintf(format, args...))
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), color.Warn.Sprintf("warning: "+format, args...))
}

func manifestPath() string {
	return filepath.Join(workDir, manifest.FileName)
}

// loadProject reads the descriptor of the project in workDir. A missing or
// malformed descriptor is reported and the defaults are used instead.
func loadProject(cmd *cobra.Command) *manifest.Manifest {
	m, err := manifest.Load(manifestPath())
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		warnf(cmd, "no %s found, using default settings", manifest.FileName)
		m = manifest.Default()
	case errors.Is(err, manifest.ErrMalformed):
		warnf(cmd, "could not fully parse %s, using default settings", manifest.FileName)
	default:
		warnf(cmd, "%v, using default settings", err)
		m = manifest.Default()
	}
	return m
}

func newBuilder(cmd *cobra.Command) (*build.Builder, error) {
	b, err := build.NewBuilder(build.Options{
		SourceDir: workDir,
		CMake:     cfg.CMake,
		Exec:      executor,
		Platform:  plat,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Toolchain: cfg.Toolchain,
		Env:       cfg.CompilerEnv(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create builder: %w", err)
	}
	return b, nil
}

// addDeps appends deps to m. Dependencies beyond the limit are reported
// and skipped; an invalid name is an error.
func addDeps(cmd *cobra.Command, m *manifest.Manifest, deps []string) error {
	for _, dep := range deps {
		err := m.AddDep(dep)
		switch {
		case err == nil:
		case errors.Is(err, manifest.ErrTooManyDeps):
			warnf(cmd, "maximum of %d dependencies reached, ignoring %s", manifest.MaxDeps, dep)
		default:
			return fmt.Errorf("failed to add dependency: %w", err)
		}
	}
	return nil
}

func printDeps(cmd *cobra.Command, m *manifest.Manifest) {
	if len(m.Deps) > 0 {
		infof(cmd, "Dependencies: %s", strings.Join(m.Deps, " "))
	}
}

func buildDirFlag(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.BuildDir
}

func modeFlag(debug, release bool, def string) string {
	switch {
	case release:
		return "Release"
	case debug:
		return "Debug"
	}
	return def
}
