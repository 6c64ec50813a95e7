package manifest

import (
	"bufio"
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/mod/semver"
)

type section int

const (
	sectionOther section = iota
	sectionProject
	sectionDeps
)

// quotePairs lists the quote characters stripped from keys and values.
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// Parse decodes a descriptor. It never fails hard: the second result
// reports whether a non-empty project name was found. When it is false the
// returned Manifest is Default().
//
// Dependencies beyond MaxDeps are dropped silently.
func Parse(data []byte) (*Manifest, bool) {
	m := Default()
	m.Name = ""

	sec := sectionOther
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if name, ok := sectionHeader(line); ok {
			switch name {
			case "project":
				sec = sectionProject
			case "dependencies":
				sec = sectionDeps
			default:
				sec = sectionOther
			}
			continue
		}

		switch sec {
		case sectionProject:
			m.setKey(line)
		case sectionDeps:
			if len(m.Deps) >= MaxDeps {
				continue
			}
			if dep := depName(line); dep != "" {
				m.Deps = append(m.Deps, dep)
			}
		}
	}

	if m.Name == "" {
		return Default(), false
	}
	return m, true
}

func sectionHeader(line string) (string, bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}

// setKey applies one "key = value" line of the [project] section.
// Keys are matched exactly.
func (m *Manifest) setKey(line string) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	key = unquote(strings.TrimSpace(key))
	value = unquote(strings.TrimSpace(value))

	switch key {
	case "name":
		m.Name = value
	case "type":
		if t, ok := ParseArtifactType(value); ok {
			m.Type = t
		}
	case "version":
		if validVersion(value) {
			m.Version = value
		}
	case "precompile_headers":
		switch value {
		case "true":
			m.PrecompileHeaders = true
		case "false":
			m.PrecompileHeaders = false
		}
	}
}

// depName extracts a dependency name from one [dependencies] line.
// Accepted shapes, tried in order:
//
//	name = "1.0"
//	name = { version = "1.0" }
//	name
func depName(line string) string {
	eq := strings.IndexByte(line, '=')
	brace := strings.IndexByte(line, '{')
	switch {
	case eq >= 0 && (brace < 0 || eq < brace):
		return unquote(strings.TrimSpace(line[:eq]))
	case brace >= 0:
		return unquote(strings.TrimSpace(line[:brace]))
	}
	if end := strings.IndexFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '#'
	}); end >= 0 {
		line = line[:end]
	}
	return line
}

// unquote strips one layer of matching quotes.
func unquote(s string) string {
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return s[len(q[0]) : len(s)-len(q[1])]
		}
	}
	return s
}

func validVersion(v string) bool {
	return semver.IsValid("v" + strings.TrimPrefix(v, "v"))
}
