package platform

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestFor(t *testing.T) {
	tests := []struct {
		goos      string
		name      string
		sep       rune
		shared    string
		exeSuffix string
	}{
		{"linux", "Linux", '/', ".so", ""},
		{"darwin", "macOS", '/', ".dylib", ""},
		{"windows", "Windows", '\\', ".dll", ".exe"},
		{"plan9", "plan9", '/', ".so", ""},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := For(tt.goos)
			if p.Name != tt.name {
				t.Errorf("Name = %q, want %q", p.Name, tt.name)
			}
			if p.PathSep != tt.sep {
				t.Errorf("PathSep = %q, want %q", p.PathSep, tt.sep)
			}
			if p.SharedLibExt != tt.shared {
				t.Errorf("SharedLibExt = %q, want %q", p.SharedLibExt, tt.shared)
			}
			if p.ExeSuffix != tt.exeSuffix {
				t.Errorf("ExeSuffix = %q, want %q", p.ExeSuffix, tt.exeSuffix)
			}
		})
	}
}

func TestDefaultPrefix(t *testing.T) {
	if got, want := For("linux").DefaultPrefix("/home/u"), filepath.Join("/home/u", ".local"); got != want {
		t.Errorf("linux DefaultPrefix = %q, want %q", got, want)
	}
	if got, want := For("windows").DefaultPrefix(`C:\Users\u`), `C:\Users\u\AppData\Local`; got != want {
		t.Errorf("windows DefaultPrefix = %q, want %q", got, want)
	}
	if got := For("linux").DefaultPrefix(""); got != "/usr/local" {
		t.Errorf("DefaultPrefix without home = %q, want /usr/local", got)
	}
	if got := For("windows").DefaultPrefix(""); got != `C:\Program Files` {
		t.Errorf("windows DefaultPrefix without home = %q", got)
	}
}

func TestJobs(t *testing.T) {
	n := Current().Jobs()
	if n < 1 || n > runtime.NumCPU() {
		t.Errorf("Jobs() = %d, want within [1, %d]", n, runtime.NumCPU())
	}
	if got := (&Platform{}).Jobs(); got != 0 {
		t.Errorf("zero Platform Jobs() = %d, want 0", got)
	}
}

func TestJoin(t *testing.T) {
	if got := For("windows").Join("build", "lib", "x.lib"); got != `build\lib\x.lib` {
		t.Errorf("Join = %q", got)
	}
	if got := For("linux").Join("build", "bin"); got != "build/bin" {
		t.Errorf("Join = %q", got)
	}
}
