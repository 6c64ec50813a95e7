// Package manifest reads and writes the CMake.toml project descriptor.
//
// The descriptor is a restricted key/value format with two sections:
//
//	[project]
//	name = "hello"
//	type = "executable"
//	version = "1.0.0"
//	precompile_headers = false
//
//	[dependencies]
//	fmt = "latest"
//
// Only this subset is understood. Unknown sections and keys are ignored.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileName is the conventional descriptor file name in a project root.
const FileName = "CMake.toml"

const (
	// MaxDeps is the upper bound on declared dependencies.
	MaxDeps = 20

	DefaultName    = "my_project"
	DefaultVersion = "1.0.0"
)

var (
	// ErrMalformed reports a descriptor without a usable project name.
	// It is soft: the returned Manifest holds the defaults.
	ErrMalformed = errors.New("manifest: no project name found")

	ErrTooManyDeps = fmt.Errorf("manifest: at most %d dependencies", MaxDeps)
	ErrEmptyDep    = errors.New("manifest: empty dependency name")
	ErrInvalidDep  = errors.New("manifest: invalid dependency name")
)

// ArtifactType is the kind of target a project produces.
type ArtifactType string

const (
	Executable ArtifactType = "executable"
	Static     ArtifactType = "static"
	Shared     ArtifactType = "shared"
)

// ParseArtifactType returns the artifact type named by s.
func ParseArtifactType(s string) (ArtifactType, bool) {
	switch t := ArtifactType(s); t {
	case Executable, Static, Shared:
		return t, true
	}
	return "", false
}

// IsLibrary reports whether t is a static or shared library.
func (t ArtifactType) IsLibrary() bool {
	return t == Static || t == Shared
}

// Describe returns a human readable label, e.g. "static library".
func (t ArtifactType) Describe() string {
	switch t {
	case Static:
		return "static library"
	case Shared:
		return "shared library"
	}
	return "executable"
}

// Manifest is the in-memory project descriptor.
type Manifest struct {
	Name              string       `json:"name" yaml:"name"`
	Type              ArtifactType `json:"type" yaml:"type"`
	Version           string       `json:"version" yaml:"version"`
	PrecompileHeaders bool         `json:"precompile_headers" yaml:"precompile_headers"`
	// Deps keeps declaration order, which is also the link order.
	Deps []string `json:"dependencies" yaml:"dependencies"`
}

// Default returns the descriptor used when none exists.
func Default() *Manifest {
	return New(DefaultName, Executable)
}

// New returns a descriptor for a fresh project.
func New(name string, typ ArtifactType) *Manifest {
	if _, ok := ParseArtifactType(string(typ)); !ok {
		typ = Executable
	}
	return &Manifest{
		Name:    name,
		Type:    typ,
		Version: DefaultVersion,
	}
}

// AddDep appends a dependency. Names already present are appended again;
// the list is not deduplicated.
func (m *Manifest) AddDep(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyDep
	}
	if strings.ContainsAny(name, "={#[ \t\"'“”‘’") {
		return fmt.Errorf("%w: %q", ErrInvalidDep, name)
	}
	if len(m.Deps) >= MaxDeps {
		return fmt.Errorf("%w: %s ignored", ErrTooManyDeps, name)
	}
	m.Deps = append(m.Deps, name)
	return nil
}

// Load reads and parses the descriptor at file.
//
// A missing file yields an error matching fs.ErrNotExist. A file that
// parses without a project name yields Default() and ErrMalformed.
func Load(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, ok := Parse(data)
	if !ok {
		return m, fmt.Errorf("%s: %w", file, ErrMalformed)
	}
	return m, nil
}

// WriteFile serializes m to file, replacing any previous content.
func (m *Manifest) WriteFile(file string) error {
	return os.WriteFile(file, m.Format(), 0o644)
}
