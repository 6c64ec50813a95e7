// Package cmake wraps the cmake configure/build/install workflow.
package cmake

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/goplus/cmproj/pkgs/buildsys"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake drives CMake-based builds through a buildsys.Executor.
type CMake struct {
	exec       buildsys.Executor
	program    string
	sourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  string
	toolchain  string
	jobs       int
	defines    map[string]defineValue
	env        map[string]string
	stdout     io.Writer
	stderr     io.Writer
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a CMake for the project at sourceDir building into buildDir.
// A nil exec runs commands with buildsys.OSExecutor.
func New(exec buildsys.Executor, sourceDir, buildDir string) *CMake {
	if exec == nil {
		exec = buildsys.OSExecutor{}
	}
	return &CMake{
		exec:      exec,
		program:   "cmake",
		sourceDir: sourceDir,
		buildDir:  buildDir,
		defines:   make(map[string]defineValue),
		env:       make(map[string]string),
	}
}

// Program overrides the cmake executable.
func (c *CMake) Program(name string) *CMake {
	if name != "" {
		c.program = name
	}
	return c
}

func (c *CMake) InstallDir(dir string) { c.installDir = dir }

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

// BuildType sets CMAKE_BUILD_TYPE (e.g. "Release", "Debug").
func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

// Toolchain sets CMAKE_TOOLCHAIN_FILE.
func (c *CMake) Toolchain(path string) *CMake {
	c.toolchain = path
	return c
}

// Jobs sets the --parallel hint of the build step. n <= 0 leaves the
// choice to the native build tool.
func (c *CMake) Jobs(n int) *CMake {
	c.jobs = n
	return c
}

// Output redirects the output of every command.
func (c *CMake) Output(stdout, stderr io.Writer) *CMake {
	c.stdout, c.stderr = stdout, stderr
	return c
}

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) *CMake {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) *CMake {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
	return c
}

func (c *CMake) Env(key, value string) {
	c.env[key] = value
}

// Use exposes headers, libraries and pkg-config files installed at root to
// the commands run by c. Only c's environment is touched.
func (c *CMake) Use(root string) {
	includeDir := filepath.Join(root, "include")
	libDir := filepath.Join(root, "lib")
	pkgconfigDir := filepath.Join(libDir, "pkgconfig")

	if exists(pkgconfigDir) {
		c.prependPath("PKG_CONFIG_PATH", pkgconfigDir)
	}
	c.prependPath("CMAKE_PREFIX_PATH", root)
	if exists(includeDir) {
		c.prependPath("CMAKE_INCLUDE_PATH", includeDir)
	}
	if exists(libDir) {
		c.prependPath("CMAKE_LIBRARY_PATH", libDir)
	}

	if runtime.GOOS == "windows" {
		if exists(includeDir) {
			c.prependPath("INCLUDE", includeDir)
		}
		if exists(libDir) {
			c.prependPath("LIB", libDir)
		}
	} else {
		if exists(includeDir) {
			c.appendFlag("CPPFLAGS", "-I"+includeDir)
		}
		if exists(libDir) {
			c.appendFlag("LDFLAGS", "-L"+libDir)
		}
	}
}

// ConfigureCommand returns "cmake -S <source> -B <build>" with all
// configured options. Extra args are appended at the end.
func (c *CMake) ConfigureCommand(args ...string) *buildsys.Command {
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.toolchain)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return c.command(cmakeArgs)
}

// Configure creates the build directory and runs ConfigureCommand.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return err
	}
	return c.exec.Run(ctx, c.ConfigureCommand(args...))
}

// BuildCommand returns "cmake --build <build>" with optional extra arguments.
func (c *CMake) BuildCommand(args ...string) *buildsys.Command {
	cmakeArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.buildType)
	}
	if c.jobs > 0 {
		cmakeArgs = append(cmakeArgs, "--parallel", strconv.Itoa(c.jobs))
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.command(cmakeArgs)
}

func (c *CMake) Build(ctx context.Context, args ...string) error {
	return c.exec.Run(ctx, c.BuildCommand(args...))
}

// InstallCommand returns "cmake --install <build>" with optional extra arguments.
func (c *CMake) InstallCommand(args ...string) *buildsys.Command {
	cmakeArgs := []string{"--install", c.buildDir}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.buildType)
	}
	if c.installDir != "" {
		cmakeArgs = append(cmakeArgs, "--prefix", c.installDir)
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.command(cmakeArgs)
}

func (c *CMake) Install(ctx context.Context, args ...string) error {
	return c.exec.Run(ctx, c.InstallCommand(args...))
}

// OutputDir returns installDir if set, otherwise buildDir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) command(args []string) *buildsys.Command {
	var env map[string]string
	if len(c.env) > 0 {
		env = make(map[string]string, len(c.env))
		for k, v := range c.env {
			env[k] = v
		}
	}
	return &buildsys.Command{
		Name:   c.program,
		Args:   args,
		Dir:    c.sourceDir,
		Env:    env,
		Stdout: c.stdout,
		Stderr: c.stderr,
	}
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}

// prependPath prepends value to a PATH-style variable, falling back to the
// process environment for the current value.
func (c *CMake) prependPath(key, value string) {
	sep := string(os.PathListSeparator)
	if cur := c.lookup(key); cur != "" {
		value += sep + cur
	}
	c.env[key] = value
}

// appendFlag appends a space-separated flag.
func (c *CMake) appendFlag(key, flag string) {
	if cur := strings.TrimSpace(c.lookup(key)); cur != "" {
		flag = cur + " " + flag
	}
	c.env[key] = flag
}

func (c *CMake) lookup(key string) string {
	if v, ok := c.env[key]; ok {
		return v
	}
	return os.Getenv(key)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
