package build

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/cmproj/internal/platform"
	"github.com/goplus/cmproj/pkgs/buildsys"
	"github.com/goplus/cmproj/pkgs/buildsys/cmake"
	"github.com/goplus/cmproj/pkgs/manifest"
	"github.com/qiniu/x/log"
)

const (
	DefaultMode     = "Debug"
	DefaultBuildDir = "build"
)

// ErrNothingInstalled is returned by Uninstall when the build directory
// holds no install manifest.
var ErrNothingInstalled = errors.New("nothing installed")

// State is a step of a build run.
type State int

const (
	Idle State = iota
	CleanPending
	ConfigurePending
	BuildPending
	Done
	Failed
)

var stateNames = [...]string{
	Idle:             "Idle",
	CleanPending:     "CleanPending",
	ConfigurePending: "ConfigurePending",
	BuildPending:     "BuildPending",
	Done:             "Done",
	Failed:           "Failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Request holds the parameters of one build invocation.
type Request struct {
	Mode          string // CMAKE_BUILD_TYPE, DefaultMode if empty
	Prefix        string // CMAKE_INSTALL_PREFIX, unset if empty
	BuildDir      string // relative to the source dir unless absolute
	ConfigureOnly bool
	Clean         bool
	Extra         []string // passed to the configure step verbatim
	Generator     string
	Jobs          int // 0 uses the platform hint, < 0 none
}

// Result describes what a run did.
type Result struct {
	State      State
	Configured bool
	Built      bool
	Trace      []State
}

func (r *Result) enter(s State) {
	r.State = s
	r.Trace = append(r.Trace, s)
}

func (r *Result) fail(err error) (*Result, error) {
	r.enter(Failed)
	return r, err
}

// Options configures a Builder.
type Options struct {
	SourceDir string // project root, the current directory if empty
	CMake     string // cmake program, "cmake" if empty
	Exec      buildsys.Executor
	Platform  *platform.Platform
	Stdout    io.Writer
	Stderr    io.Writer

	// Toolchain is passed as CMAKE_TOOLCHAIN_FILE when set.
	Toolchain string
	// Env is set for every cmake command, e.g. CC and CXX.
	Env map[string]string
}

// Builder drives the configure, build and install steps of a project.
type Builder struct {
	sourceDir string
	cmake     string
	exec      buildsys.Executor
	plat      *platform.Platform
	stdout    io.Writer
	stderr    io.Writer
	toolchain string
	env       map[string]string
}

// NewBuilder returns a Builder for opts.SourceDir.
func NewBuilder(opts Options) (*Builder, error) {
	dir := opts.SourceDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	b := &Builder{
		sourceDir: abs,
		cmake:     opts.CMake,
		exec:      opts.Exec,
		plat:      opts.Platform,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		toolchain: opts.Toolchain,
		env:       opts.Env,
	}
	if b.exec == nil {
		b.exec = buildsys.OSExecutor{}
	}
	if b.plat == nil {
		b.plat = platform.Current()
	}
	return b, nil
}

// BuildDir resolves dir against the source directory.
func (b *Builder) BuildDir(dir string) string {
	if dir == "" {
		dir = DefaultBuildDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(b.sourceDir, dir)
}

func (b *Builder) cmakeFor(req Request, buildDir string) *cmake.CMake {
	c := cmake.New(b.exec, b.sourceDir, buildDir).
		Program(b.cmake).
		Output(b.stdout, b.stderr).
		BuildType(req.Mode).
		Toolchain(b.toolchain)
	for k, v := range b.env {
		c.Env(k, v)
	}
	if req.Generator != "" {
		c.Generator(req.Generator)
	}
	if req.Prefix != "" {
		c.InstallDir(req.Prefix)
		c.Use(req.Prefix)
	}
	jobs := req.Jobs
	if jobs == 0 {
		jobs = b.plat.Jobs()
	}
	return c.Jobs(jobs)
}

// Run cleans (if asked), configures (if needed) and builds the project
// described by m.
//
// The configure step is skipped when the build cache records the
// requested mode. Any failing step ends the run in the Failed state; the
// error wraps the *buildsys.ExitError of the failed command. Nothing is
// retried or rolled back.
func (b *Builder) Run(ctx context.Context, m *manifest.Manifest, req Request) (*Result, error) {
	if m == nil {
		m = manifest.Default()
	}
	if req.Mode == "" {
		req.Mode = DefaultMode
	}
	buildDir := b.BuildDir(req.BuildDir)

	res := &Result{}
	res.enter(Idle)
	log.Debugf("build %s (%s) mode=%s dir=%s", m.Name, m.Type, req.Mode, buildDir)

	if req.Clean {
		res.enter(CleanPending)
		if err := resetDir(buildDir); err != nil {
			return res.fail(fmt.Errorf("clean %s: %w", buildDir, err))
		}
	}

	res.enter(ConfigurePending)
	c := b.cmakeFor(req, buildDir)
	last, known := LastBuildMode(buildDir)
	if NeedsConfigure(last, known, req.Mode) {
		if known {
			log.Infof("build mode changed from %s to %s, reconfiguring", last, req.Mode)
		}
		log.Debugf("run: %s", c.ConfigureCommand(req.Extra...))
		if err := c.Configure(ctx, req.Extra...); err != nil {
			return res.fail(fmt.Errorf("configure: %w", err))
		}
		res.Configured = true
	} else {
		log.Infof("found build cache for %s mode, skipping configure", last)
	}

	if req.ConfigureOnly {
		res.enter(Done)
		return res, nil
	}

	res.enter(BuildPending)
	log.Debugf("run: %s", c.BuildCommand())
	if err := c.Build(ctx); err != nil {
		return res.fail(fmt.Errorf("build: %w", err))
	}
	res.Built = true
	res.enter(Done)
	return res, nil
}

// Install builds the project like Run and then installs it to
// req.Prefix.
func (b *Builder) Install(ctx context.Context, m *manifest.Manifest, req Request) (*Result, error) {
	if req.Prefix == "" {
		return nil, errors.New("install: no prefix given")
	}
	if m == nil {
		m = manifest.Default()
	}
	req.ConfigureOnly = false
	res, err := b.Run(ctx, m, req)
	if err != nil {
		return res, err
	}
	c := b.cmakeFor(req, b.BuildDir(req.BuildDir))
	log.Debugf("run: %s", c.InstallCommand())
	if err := c.Install(ctx); err != nil {
		return res.fail(fmt.Errorf("install: %w", err))
	}
	log.Infof("installed %s to %s", m.Name, c.OutputDir())
	return res, nil
}

// Uninstall removes every file listed in the install manifest of
// buildDir and returns the number of files removed. Files already gone
// are skipped.
func (b *Builder) Uninstall(buildDir string) (int, error) {
	buildDir = b.BuildDir(buildDir)
	f, err := os.Open(filepath.Join(buildDir, InstallManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: no %s in %s", ErrNothingInstalled, InstallManifestFile, buildDir)
		}
		return 0, err
	}
	defer f.Close()

	removed := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		path := strings.TrimSpace(sc.Text())
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debugf("already removed: %s", path)
				continue
			}
			return removed, err
		}
		log.Debugf("removed %s", path)
		removed++
	}
	return removed, sc.Err()
}

// Clean empties buildDir. It reports false when there was nothing to
// clean; the directory exists afterwards in both cases.
func (b *Builder) Clean(buildDir string) (bool, error) {
	buildDir = b.BuildDir(buildDir)
	if _, err := os.Stat(buildDir); errors.Is(err, fs.ErrNotExist) {
		return false, os.MkdirAll(buildDir, 0o755)
	}
	if err := resetDir(buildDir); err != nil {
		return false, err
	}
	return true, nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
