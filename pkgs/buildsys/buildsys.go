package buildsys

import "context"

// BuildSystem captures shared capabilities of build helpers (CMake, etc).
// It keeps the common lifecycle and env setup; implementations add their own extras.
type BuildSystem interface {
	// Use makes headers, libraries and pkg-config files installed under
	// root visible to the build.
	Use(root string)

	// InstallDir sets the install prefix.
	InstallDir(dir string)

	// Environment helper.
	Env(key, val string)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
