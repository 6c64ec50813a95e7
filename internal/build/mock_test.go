package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/cmproj/pkgs/buildsys"
)

// mockExec implements buildsys.Executor for testing. It records every
// command and, like cmake, writes a cache file on configure.
type mockExec struct {
	cmds []*buildsys.Command
	// failAt makes the n-th command (1-based) exit with failCode.
	failAt   int
	failCode int
}

func (m *mockExec) Run(ctx context.Context, cmd *buildsys.Command) error {
	m.cmds = append(m.cmds, cmd)
	if m.failAt == len(m.cmds) {
		return &buildsys.ExitError{Cmd: cmd.String(), Code: m.failCode}
	}
	if buildDir, mode, ok := configureTarget(cmd); ok {
		return writeCache(buildDir, mode)
	}
	return nil
}

// kinds returns "configure", "build" or "install" per recorded command.
func (m *mockExec) kinds() []string {
	var out []string
	for _, c := range m.cmds {
		switch {
		case len(c.Args) > 0 && c.Args[0] == "--build":
			out = append(out, "build")
		case len(c.Args) > 0 && c.Args[0] == "--install":
			out = append(out, "install")
		default:
			out = append(out, "configure")
		}
	}
	return out
}

func configureTarget(cmd *buildsys.Command) (buildDir, mode string, ok bool) {
	for i, a := range cmd.Args {
		if a == "-B" && i+1 < len(cmd.Args) {
			buildDir = cmd.Args[i+1]
		}
		if v, found := strings.CutPrefix(a, "-D"+BuildTypeKey+":STRING="); found {
			mode = v
		}
	}
	return buildDir, mode, buildDir != ""
}

func writeCache(buildDir, mode string) error {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return err
	}
	content := "# This is the CMakeCache file.\n" +
		"//Choose the type of build.\n" +
		BuildTypeKey + ":STRING=" + mode + "\n" +
		"CMAKE_BUILD_TYPE-ADVANCED:INTERNAL=1\n"
	return os.WriteFile(filepath.Join(buildDir, CacheFile), []byte(content), 0o644)
}
