package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qiniu/x/log"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range Keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load(t.TempDir())
	if cfg.CMake != "cmake" {
		t.Errorf("CMake = %q, want cmake", cfg.CMake)
	}
	if cfg.BuildDir != "build" {
		t.Errorf("BuildDir = %q, want build", cfg.BuildDir)
	}
	if cfg.Generator != "" || cfg.Prefix != "" {
		t.Errorf("Generator/Prefix = %q/%q, want empty", cfg.Generator, cfg.Prefix)
	}
	if cfg.LogLevel != log.Lwarn {
		t.Errorf("LogLevel = %d, want %d", cfg.LogLevel, log.Lwarn)
	}
}

// TestLoadDotEnv checks that .env values apply but do not override the
// process environment.
func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := EnvGenerator + "=Ninja\n" + EnvPrefix + "=/opt/dotenv\n" + EnvCMake + "=/from/dotenv/cmake\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvCMake, "/usr/bin/cmake")

	cfg := Load(dir)
	if cfg.Generator != "Ninja" {
		t.Errorf("Generator = %q, want Ninja", cfg.Generator)
	}
	if cfg.Prefix != "/opt/dotenv" {
		t.Errorf("Prefix = %q, want /opt/dotenv", cfg.Prefix)
	}
	if cfg.CMake != "/usr/bin/cmake" {
		t.Errorf("CMake = %q, want process value", cfg.CMake)
	}
}

func TestLoadToolchainAndCompilers(t *testing.T) {
	clearEnv(t)
	if env := Load(t.TempDir()).CompilerEnv(); env != nil {
		t.Errorf("CompilerEnv() = %v, want nil", env)
	}

	t.Setenv(EnvToolchain, " /opt/tc/arm.cmake ")
	t.Setenv(EnvCXX, "clang++")
	cfg := Load(t.TempDir())
	if cfg.Toolchain != "/opt/tc/arm.cmake" {
		t.Errorf("Toolchain = %q, want /opt/tc/arm.cmake", cfg.Toolchain)
	}
	env := cfg.CompilerEnv()
	if len(env) != 1 || env["CXX"] != "clang++" {
		t.Errorf("CompilerEnv() = %v, want only CXX=clang++", env)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]int{
		"debug": log.Ldebug,
		"INFO":  log.Linfo,
		"error": log.Lerror,
		"":      log.Lwarn,
		"bogus": log.Lwarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := HomeDir(); got != home {
		t.Errorf("HomeDir() = %q, want %q", got, home)
	}
}
