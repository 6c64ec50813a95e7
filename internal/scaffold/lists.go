package scaffold

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goplus/cmproj/pkgs/manifest"
)

// ListsFile is the build description consumed by cmake.
const ListsFile = "CMakeLists.txt"

// CMakeLists renders the build description of m. Dependencies are looked
// up with pkg-config and linked in declaration order.
func CMakeLists(m *manifest.Manifest) []byte {
	var buf bytes.Buffer
	minVersion := "3.10"
	if m.PrecompileHeaders {
		minVersion = "3.16" // target_precompile_headers
	}
	fmt.Fprintf(&buf, "cmake_minimum_required(VERSION %s)\n", minVersion)
	fmt.Fprintf(&buf, "project(%s LANGUAGES CXX)\n\n", m.Name)
	buf.WriteString("set(CMAKE_CXX_STANDARD 11)\n")
	buf.WriteString("set(CMAKE_CXX_STANDARD_REQUIRED ON)\n")
	buf.WriteString("set(CMAKE_EXPORT_COMPILE_COMMANDS ON)\n\n")

	if len(m.Deps) > 0 {
		buf.WriteString("# dependencies\n")
		buf.WriteString("find_package(PkgConfig REQUIRED)\n")
		for _, dep := range m.Deps {
			fmt.Fprintf(&buf, "pkg_check_modules(%s REQUIRED IMPORTED_TARGET %s)\n", pkgVar(dep), dep)
		}
		buf.WriteString("\n")
	}

	name := m.Name
	switch m.Type {
	case manifest.Static:
		buf.WriteString("set(CMAKE_ARCHIVE_OUTPUT_DIRECTORY ${CMAKE_SOURCE_DIR}/lib/static)\n")
		fmt.Fprintf(&buf, "add_library(%s STATIC\n    src/%s.cpp\n)\n", name, name)
	case manifest.Shared:
		buf.WriteString("set(CMAKE_LIBRARY_OUTPUT_DIRECTORY ${CMAKE_SOURCE_DIR}/lib/shared)\n")
		buf.WriteString("set(CMAKE_RUNTIME_OUTPUT_DIRECTORY ${CMAKE_SOURCE_DIR}/bin)\n")
		fmt.Fprintf(&buf, "add_library(%s SHARED\n    src/%s.cpp\n)\n", name, name)
	default:
		buf.WriteString("set(CMAKE_RUNTIME_OUTPUT_DIRECTORY ${CMAKE_SOURCE_DIR}/bin)\n")
		fmt.Fprintf(&buf, "add_executable(%s\n    src/main.cpp\n)\n", name)
	}
	fmt.Fprintf(&buf, "target_include_directories(%s PRIVATE ${CMAKE_SOURCE_DIR}/include)\n", name)
	if m.PrecompileHeaders {
		fmt.Fprintf(&buf, "target_precompile_headers(%s PRIVATE ${CMAKE_SOURCE_DIR}/include/%s)\n", name, PCHHeader)
	}

	if len(m.Deps) > 0 {
		buf.WriteString("\n# link dependencies\n")
		fmt.Fprintf(&buf, "target_link_libraries(%s PRIVATE\n", name)
		for _, dep := range m.Deps {
			fmt.Fprintf(&buf, "    PkgConfig::%s\n", pkgVar(dep))
		}
		buf.WriteString(")\n")
	}

	buf.WriteString("\n# install rules\n")
	fmt.Fprintf(&buf, "install(TARGETS %s\n", name)
	buf.WriteString("    RUNTIME DESTINATION bin\n")
	buf.WriteString("    LIBRARY DESTINATION lib\n")
	buf.WriteString("    ARCHIVE DESTINATION lib\n")
	buf.WriteString(")\n")
	if m.Type.IsLibrary() {
		fmt.Fprintf(&buf, "install(FILES include/%s.h DESTINATION include)\n", name)
	}
	return buf.Bytes()
}

// pkgVar turns a pkg-config module name into a CMake variable prefix.
func pkgVar(dep string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, dep)
}
