package manifest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		want   *Manifest
		wantOK bool
	}{
		{
			name: "full descriptor",
			data: `# CMake project descriptor
[project]
name = "hello"
type = "static"
version = "2.1.0"
precompile_headers = true

[dependencies]
fmt = "latest"
boost = "latest"
`,
			want: &Manifest{
				Name:              "hello",
				Type:              Static,
				Version:           "2.1.0",
				PrecompileHeaders: true,
				Deps:              []string{"fmt", "boost"},
			},
			wantOK: true,
		},
		{
			name: "dependency shapes",
			data: "[project]\nname = \"app\"\n[dependencies]\nfmt\nboost = \"1.83\"\nsdl2 = { version = \"2.28\" }\n",
			want: &Manifest{
				Name:    "app",
				Type:    Executable,
				Version: DefaultVersion,
				Deps:    []string{"fmt", "boost", "sdl2"},
			},
			wantOK: true,
		},
		{
			name: "unknown type keeps default",
			data: "[project]\nname = \"app\"\ntype = \"library\"\n",
			want: &Manifest{
				Name:    "app",
				Type:    Executable,
				Version: DefaultVersion,
			},
			wantOK: true,
		},
		{
			name: "non literal bool ignored",
			data: "[project]\nname = \"app\"\nprecompile_headers = true\nprecompile_headers = yes\n",
			want: &Manifest{
				Name:              "app",
				Type:              Executable,
				Version:           DefaultVersion,
				PrecompileHeaders: true,
			},
			wantOK: true,
		},
		{
			name: "invalid version keeps default",
			data: "[project]\nname = \"app\"\nversion = \"one\"\n",
			want: &Manifest{
				Name:    "app",
				Type:    Executable,
				Version: DefaultVersion,
			},
			wantOK: true,
		},
		{
			name: "curly and single quotes",
			data: "[project]\nname = “curly”\ntype = 'shared'\n",
			want: &Manifest{
				Name:    "curly",
				Type:    Shared,
				Version: DefaultVersion,
			},
			wantOK: true,
		},
		{
			name: "other sections ignored",
			data: "[project]\nname = \"app\"\n[tool]\nname = \"other\"\ndep\n[dependencies]\n# commented = \"1\"\nzlib # inline\n",
			want: &Manifest{
				Name:    "app",
				Type:    Executable,
				Version: DefaultVersion,
				Deps:    []string{"zlib"},
			},
			wantOK: true,
		},
		{
			name: "exact key matching",
			data: "[project]\nusername = \"bob\"\nname = \"app\"\nfiletype = \"shared\"\n",
			want: &Manifest{
				Name:    "app",
				Type:    Executable,
				Version: DefaultVersion,
			},
			wantOK: true,
		},
		{
			name:   "no name",
			data:   "[project]\ntype = \"shared\"\n[dependencies]\nfmt\n",
			want:   Default(),
			wantOK: false,
		},
		{
			name:   "empty",
			data:   "",
			want:   Default(),
			wantOK: false,
		},
		{
			name: "crlf line endings",
			data: "[project]\r\nname = \"win\"\r\n[dependencies]\r\nfmt = \"1\"\r\n",
			want: &Manifest{
				Name:    "win",
				Type:    Executable,
				Version: DefaultVersion,
				Deps:    []string{"fmt"},
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse([]byte(tt.data))
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDepCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("[project]\nname = \"capped\"\n[dependencies]\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "dep%02d = \"latest\"\n", i)
	}

	m, ok := Parse([]byte(b.String()))
	require.True(t, ok)
	require.Len(t, m.Deps, MaxDeps)
	for i, dep := range m.Deps {
		assert.Equal(t, fmt.Sprintf("dep%02d", i), dep)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"a"`, "a"},
		{`'a'`, "a"},
		{"“a”", "a"},
		{"‘a’", "a"},
		{`""a""`, `"a"`},
		{`"a'`, `"a'`},
		{`"`, `"`},
		{`""`, ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unquote(tt.in), "unquote(%q)", tt.in)
	}
}

func TestDepName(t *testing.T) {
	tests := []struct {
		line, want string
	}{
		{`fmt = "9.1.0"`, "fmt"},
		{`json = { name = "nlohmann_json" }`, "json"},
		{`sdl2 { version = "2" }`, "sdl2"},
		{`"quoted" = "1"`, "quoted"},
		{"bare", "bare"},
		{"bare trailing words", "bare"},
		{"bare#comment", "bare"},
		{` = "x"`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, depName(tt.line), "depName(%q)", tt.line)
	}
}
