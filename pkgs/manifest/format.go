package manifest

import (
	"bytes"
	"fmt"
)

const exampleDeps = `# fmt = "9.1.0"
# boost = "1.83.0"
# sdl2 = "2.28.5"
# glfw = "3.3.8"
# json = { name = "nlohmann_json", version = "3.11.2" }
`

// Format serializes m. Sections are always written in the order
// [project], [dependencies]. Without dependencies a commented example
// block is written instead of entries.
func (m *Manifest) Format() []byte {
	var buf bytes.Buffer
	buf.WriteString("# CMake project descriptor\n")
	buf.WriteString("[project]\n")
	fmt.Fprintf(&buf, "name = \"%s\"\n", m.Name)
	fmt.Fprintf(&buf, "type = \"%s\"\n", m.Type)
	version := m.Version
	if version == "" {
		version = DefaultVersion
	}
	fmt.Fprintf(&buf, "version = \"%s\"\n", version)
	fmt.Fprintf(&buf, "precompile_headers = %t\n", m.PrecompileHeaders)
	buf.WriteString("\n# dependencies\n")
	buf.WriteString("[dependencies]\n")
	if len(m.Deps) == 0 {
		buf.WriteString(exampleDeps)
		return buf.Bytes()
	}
	for _, dep := range m.Deps {
		fmt.Fprintf(&buf, "%s = \"latest\"\n", dep)
	}
	return buf.Bytes()
}
