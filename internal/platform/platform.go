// Package platform collects the OS specific facts the build logic needs,
// selected once at startup so callers stay platform agnostic.
package platform

import (
	"path/filepath"
	"runtime"
)

// Platform describes the host the tool runs on.
type Platform struct {
	Name         string // display name, e.g. "Linux"
	GOOS         string
	PathSep      rune
	ExeSuffix    string
	StaticLibExt string
	SharedLibExt string

	// SystemPrefix is the install prefix used when no home directory exists.
	SystemPrefix string

	// jobs reports usable processing units, 0 when unknown.
	jobs func() int
}

// Current returns the Platform for the running binary.
func Current() *Platform {
	return For(runtime.GOOS)
}

// For returns the Platform for the given GOOS value.
func For(goos string) *Platform {
	p := &Platform{
		GOOS:         goos,
		PathSep:      '/',
		StaticLibExt: ".a",
		SharedLibExt: ".so",
		SystemPrefix: "/usr/local",
		jobs:         numCPU,
	}
	switch goos {
	case "windows":
		p.Name = "Windows"
		p.PathSep = '\\'
		p.ExeSuffix = ".exe"
		p.StaticLibExt = ".lib"
		p.SharedLibExt = ".dll"
		p.SystemPrefix = `C:\Program Files`
	case "darwin":
		p.Name = "macOS"
		p.SharedLibExt = ".dylib"
	case "linux":
		p.Name = "Linux"
	default:
		p.Name = goos
	}
	return p
}

// DefaultPrefix derives the install prefix from a home directory.
func (p *Platform) DefaultPrefix(home string) string {
	if home == "" {
		return p.SystemPrefix
	}
	if p.GOOS == "windows" {
		return home + `\AppData\Local`
	}
	return filepath.Join(home, ".local")
}

// Jobs returns a parallelism hint for the build step, or 0 if the number of
// processing units cannot be determined.
func (p *Platform) Jobs() int {
	if p.jobs == nil {
		return 0
	}
	return p.jobs()
}

// Join joins path elements with the platform separator. It is meant for
// display only; filesystem paths go through path/filepath.
func (p *Platform) Join(elem ...string) string {
	out := ""
	for i, e := range elem {
		if i > 0 {
			out += string(p.PathSep)
		}
		out += e
	}
	return out
}

// PackageManagerHint names the package manager users should install
// dependencies with.
func (p *Platform) PackageManagerHint() string {
	switch p.GOOS {
	case "windows":
		return "vcpkg"
	case "darwin":
		return "Homebrew"
	}
	return "apt-get/yum"
}

// ToolchainHint explains what must be installed to build projects.
func (p *Platform) ToolchainHint() string {
	switch p.GOOS {
	case "windows":
		return "CMake and a compiler (MSVC or MinGW) are required"
	case "darwin":
		return "Xcode command line tools are required: xcode-select --install"
	}
	return "build-essential and cmake are required: sudo apt-get install build-essential cmake"
}
