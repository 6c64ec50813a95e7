package scaffold

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goplus/cmproj/internal/platform"
	"github.com/goplus/cmproj/pkgs/manifest"
)

// Tree renders the layout of a freshly created project.
func Tree(m *manifest.Manifest) string {
	children := map[string][]string{}
	for _, f := range Sources(m) {
		dir, file, _ := strings.Cut(f.Path, "/")
		children[dir] = append(children[dir], file)
	}

	entries := []string{ListsFile, manifest.FileName}
	for _, d := range Dirs {
		entries = append(entries, d+"/")
	}

	var sb strings.Builder
	sb.WriteString(m.Name + "/\n")
	for i, e := range entries {
		last := i == len(entries)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		sb.WriteString(branch + e + "\n")
		files := children[strings.TrimSuffix(e, "/")]
		sort.Strings(files)
		for j, f := range files {
			b := "├── "
			if j == len(files)-1 {
				b = "└── "
			}
			sb.WriteString(indent + b + f + "\n")
		}
	}
	return sb.String()
}

// Artifact returns where the build places the target of m, relative to the
// project root and using the platform's naming.
func Artifact(m *manifest.Manifest, p *platform.Platform) string {
	libPrefix := "lib"
	if p.GOOS == "windows" {
		libPrefix = ""
	}
	switch m.Type {
	case manifest.Static:
		return p.Join("lib", "static", libPrefix+m.Name+p.StaticLibExt)
	case manifest.Shared:
		if p.GOOS == "windows" {
			return p.Join("bin", m.Name+p.SharedLibExt)
		}
		return p.Join("lib", "shared", libPrefix+m.Name+p.SharedLibExt)
	}
	return p.Join("bin", m.Name+p.ExeSuffix)
}

// Guide returns the next steps shown after a project is created.
func Guide(m *manifest.Manifest, p *platform.Platform, inPlace bool) string {
	var sb strings.Builder
	sb.WriteString("Next steps:\n")
	if !inPlace {
		fmt.Fprintf(&sb, "  cd %s\n", m.Name)
	}
	sb.WriteString("  cmproj build          # debug build\n")
	sb.WriteString("  cmproj build -r       # release build\n")
	sb.WriteString("  cmproj install        # install to the default prefix\n")
	fmt.Fprintf(&sb, "\nOutput: %s (%s)\n", Artifact(m, p), m.Type.Describe())
	if len(m.Deps) > 0 {
		fmt.Fprintf(&sb, "Dependencies are resolved with pkg-config; install them with %s.\n", p.PackageManagerHint())
	}
	fmt.Fprintf(&sb, "Note: %s.\n", p.ToolchainHint())
	return sb.String()
}
