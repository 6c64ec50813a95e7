package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goplus/cmproj/internal/build"
	"github.com/goplus/cmproj/internal/scaffold"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the project descriptor and build state",
	Long:  `Info prints the parsed CMake.toml together with the build mode recorded in the cmake cache.`,
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoFormat, "format", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(infoCmd)
}

type projectInfo struct {
	Name              string   `json:"name" yaml:"name"`
	Type              string   `json:"type" yaml:"type"`
	Version           string   `json:"version" yaml:"version"`
	PrecompileHeaders bool     `json:"precompile_headers" yaml:"precompile_headers"`
	Dependencies      []string `json:"dependencies" yaml:"dependencies"`
	Artifact          string   `json:"artifact" yaml:"artifact"`
	BuildDir          string   `json:"build_dir" yaml:"build_dir"`
	BuildMode         string   `json:"build_mode,omitempty" yaml:"build_mode,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	m := loadProject(cmd)
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	dir := b.BuildDir(cfg.BuildDir)
	mode, _ := build.LastBuildMode(dir)

	deps := m.Deps
	if deps == nil {
		deps = []string{}
	}
	pi := projectInfo{
		Name:              m.Name,
		Type:              string(m.Type),
		Version:           m.Version,
		PrecompileHeaders: m.PrecompileHeaders,
		Dependencies:      deps,
		Artifact:          scaffold.Artifact(m, plat),
		BuildDir:          dir,
		BuildMode:         mode,
	}
	return writeInfo(cmd.OutOrStdout(), &pi, infoFormat)
}

func writeInfo(w io.Writer, pi *projectInfo, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(pi, "", "\t")
		if err != nil {
			return fmt.Errorf("failed to marshal project info: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pi); err != nil {
			return fmt.Errorf("failed to marshal project info: %w", err)
		}
		return enc.Close()
	case "text", "":
		mode := pi.BuildMode
		if mode == "" {
			mode = "(not configured)"
		}
		deps := strings.Join(pi.Dependencies, " ")
		if deps == "" {
			deps = "(none)"
		}
		fmt.Fprintf(w, "name:               %s\n", pi.Name)
		fmt.Fprintf(w, "type:               %s\n", pi.Type)
		fmt.Fprintf(w, "version:            %s\n", pi.Version)
		fmt.Fprintf(w, "precompile headers: %t\n", pi.PrecompileHeaders)
		fmt.Fprintf(w, "dependencies:       %s\n", deps)
		fmt.Fprintf(w, "artifact:           %s\n", pi.Artifact)
		fmt.Fprintf(w, "build dir:          %s\n", pi.BuildDir)
		_, err := fmt.Fprintf(w, "build mode:         %s\n", mode)
		return err
	}
	return fmt.Errorf("unknown format %q, want text, json or yaml", format)
}
