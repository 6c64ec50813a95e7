package build

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Build directory layout:
//
//	buildDir/
//	  CMakeCache.txt          # written by the configure step
//	  install_manifest.txt    # written by the install step
//	  ...
const (
	CacheFile           = "CMakeCache.txt"
	InstallManifestFile = "install_manifest.txt"

	// BuildTypeKey is the cache entry holding the configured build mode,
	// stored as "CMAKE_BUILD_TYPE:STRING=Release".
	BuildTypeKey = "CMAKE_BUILD_TYPE"
)

// LastBuildMode returns the build mode recorded in the cache of buildDir.
// A missing or unreadable cache, or one without the build mode entry,
// reports ok == false.
func LastBuildMode(buildDir string) (mode string, ok bool) {
	f, err := os.Open(filepath.Join(buildDir, CacheFile))
	if err != nil {
		return "", false
	}
	defer f.Close()
	return scanBuildMode(f)
}

func scanBuildMode(r io.Reader) (string, bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		entry, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		// entry is "KEY:TYPE"
		if key, _, _ := strings.Cut(entry, ":"); key != BuildTypeKey {
			continue
		}
		value = strings.TrimRight(value, "\r\n")
		return value, value != ""
	}
	return "", false
}

// NeedsConfigure reports whether the configure step must run before
// building in mode requested, given the mode recovered from the cache.
//
// Only the build mode is compared. Changes to dependencies, the install
// prefix or extra flags do not trigger a reconfigure; use a clean build
// for those.
func NeedsConfigure(last string, known bool, requested string) bool {
	return !known || last != requested
}
