package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/cmproj/internal/build"
	"github.com/goplus/cmproj/internal/env"
	"github.com/goplus/cmproj/pkgs/buildsys"
	"github.com/spf13/pflag"
)

// fakeCMake stands in for cmake. Configure writes a cache recording the
// build type; install creates one file under the prefix and records it in
// the install manifest.
type fakeCMake struct {
	cmds     []*buildsys.Command
	failKind string
	failCode int
}

func (f *fakeCMake) Run(ctx context.Context, cmd *buildsys.Command) error {
	f.cmds = append(f.cmds, cmd)
	kind := commandKind(cmd)
	if kind == f.failKind {
		return &buildsys.ExitError{Cmd: cmd.String(), Code: f.failCode}
	}
	switch kind {
	case "configure":
		var dir, mode string
		for i, a := range cmd.Args {
			if a == "-B" {
				dir = cmd.Args[i+1]
			}
			if v, ok := strings.CutPrefix(a, "-DCMAKE_BUILD_TYPE:STRING="); ok {
				mode = v
			}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		cache := build.BuildTypeKey + ":STRING=" + mode + "\n"
		return os.WriteFile(filepath.Join(dir, build.CacheFile), []byte(cache), 0o644)
	case "install":
		dir, prefix := cmd.Args[1], ""
		for i, a := range cmd.Args {
			if a == "--prefix" {
				prefix = cmd.Args[i+1]
			}
		}
		file := filepath.Join(prefix, "bin", "installed")
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(file, nil, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, build.InstallManifestFile), []byte(file), 0o644)
	}
	return nil
}

func (f *fakeCMake) kinds() []string {
	var out []string
	for _, c := range f.cmds {
		out = append(out, commandKind(c))
	}
	return out
}

func commandKind(cmd *buildsys.Command) string {
	if len(cmd.Args) > 0 {
		switch cmd.Args[0] {
		case "--build":
			return "build"
		case "--install":
			return "install"
		}
	}
	return "configure"
}

func resetFlags() {
	verbose, noColor, workDir = false, false, "."
	newExecutable, newStatic, newShared, newPCH, newDeps = false, false, false, false, nil
	initForce = false
	buildDebug, buildRelease, buildPrefix, buildDir = false, false, "", ""
	buildConfigure, buildClean, buildJobs = false, false, 0
	cleanDir, installDebug, installDir, uninstallDir = "", false, "", ""
	infoFormat = "text"
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

// run executes the command line args against the project directory dir
// with fake as the cmake stand-in.
func run(t *testing.T, fake *fakeCMake, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	for _, key := range env.Keys {
		t.Setenv(key, "")
		os.Unsetenv(key) // let a project .env supply it
	}
	resetFlags()

	saved := executor
	executor = fake
	t.Cleanup(func() { executor = saved })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--no-color", "--dir", dir}, args...))
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
