// Package env resolves tool settings from the environment.
//
// A .env file in the project directory is loaded first; variables already
// set in the process environment win over it.
package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/qiniu/x/log"
)

const (
	EnvCMake     = "CMPROJ_CMAKE"
	EnvGenerator = "CMPROJ_GENERATOR"
	EnvBuildDir  = "CMPROJ_BUILD_DIR"
	EnvPrefix    = "CMPROJ_PREFIX"
	EnvLogLevel  = "CMPROJ_LOG_LEVEL"
	EnvToolchain = "CMPROJ_TOOLCHAIN"
	EnvCC        = "CMPROJ_CC"
	EnvCXX       = "CMPROJ_CXX"
)

// Keys lists every variable Load reads.
var Keys = []string{EnvCMake, EnvGenerator, EnvBuildDir, EnvPrefix, EnvLogLevel, EnvToolchain, EnvCC, EnvCXX}

// Config holds settings that may come from the environment.
type Config struct {
	CMake     string
	Generator string
	BuildDir  string
	Prefix    string // empty means derive from the home directory
	LogLevel  int
	Toolchain string // CMAKE_TOOLCHAIN_FILE
	CC        string
	CXX       string
}

// CompilerEnv returns the CC/CXX overrides for cmake commands, nil if
// none are set.
func (c *Config) CompilerEnv() map[string]string {
	var env map[string]string
	for key, val := range map[string]string{"CC": c.CC, "CXX": c.CXX} {
		if val == "" {
			continue
		}
		if env == nil {
			env = make(map[string]string)
		}
		env[key] = val
	}
	return env
}

// Load reads dir/.env, if present, and returns the resulting Config.
func Load(dir string) *Config {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
		log.Debugf("loaded %s", filepath.Join(dir, ".env"))
	}
	return &Config{
		CMake:     firstNonEmpty(os.Getenv(EnvCMake), "cmake"),
		Generator: strings.TrimSpace(os.Getenv(EnvGenerator)),
		BuildDir:  firstNonEmpty(os.Getenv(EnvBuildDir), "build"),
		Prefix:    strings.TrimSpace(os.Getenv(EnvPrefix)),
		LogLevel:  ParseLevel(os.Getenv(EnvLogLevel)),
		Toolchain: strings.TrimSpace(os.Getenv(EnvToolchain)),
		CC:        strings.TrimSpace(os.Getenv(EnvCC)),
		CXX:       strings.TrimSpace(os.Getenv(EnvCXX)),
	}
}

// ParseLevel maps a level name to a log level, defaulting to warnings.
func ParseLevel(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.Ldebug
	case "info":
		return log.Linfo
	case "error":
		return log.Lerror
	}
	return log.Lwarn
}

// HomeDir returns the user's home directory, or "" if it is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
