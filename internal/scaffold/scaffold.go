// Package scaffold lays out the directories and starter files of a
// project described by a manifest.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/cmproj/pkgs/manifest"
	"github.com/qiniu/x/log"
)

// PCHHeader is the precompiled header placed under include/.
const PCHHeader = "pch.h"

// Dirs are created in every project root.
var Dirs = []string{"src", "include", "build"}

const mainSource = `#include <iostream>

int main() {
    std::cout << "Hello, World!" << std::endl;
    return 0;
}
`

const pchSource = `#pragma once

#include <iostream>
#include <string>
#include <vector>
`

// File is a starter file relative to the project root.
type File struct {
	Path string
	Data []byte
}

// Sources returns the starter files for m, not including CMakeLists.txt.
func Sources(m *manifest.Manifest) []File {
	var files []File
	if m.Type.IsLibrary() {
		files = append(files,
			File{Path: "src/" + m.Name + ".cpp", Data: librarySource(m.Name)},
			File{Path: "include/" + m.Name + ".h", Data: libraryHeader(m.Name)},
		)
	} else {
		files = append(files, File{Path: "src/main.cpp", Data: []byte(mainSource)})
	}
	if m.PrecompileHeaders {
		files = append(files, File{Path: "include/" + PCHHeader, Data: []byte(pchSource)})
	}
	return files
}

func librarySource(name string) []byte {
	return []byte(fmt.Sprintf("#include \"%s.h\"\n\nint %s_function() {\n    return 0;\n}\n", name, ident(name)))
}

func libraryHeader(name string) []byte {
	guard := Guard(name)
	return []byte(fmt.Sprintf("#ifndef %s\n#define %s\n\nint %s_function();\n\n#endif // %s\n",
		guard, guard, ident(name), guard))
}

// Guard returns the include guard macro for a header named after name.
func Guard(name string) string {
	return strings.ToUpper(ident(name)) + "_H"
}

func ident(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// Project creates the layout of m under dir and returns the files written,
// relative to dir. CMakeLists.txt is always rewritten; existing sources
// are only replaced when overwrite is set.
func Project(dir string, m *manifest.Manifest, overwrite bool) ([]string, error) {
	for _, d := range Dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return nil, err
		}
	}

	var written []string
	if err := os.WriteFile(filepath.Join(dir, ListsFile), CMakeLists(m), 0o644); err != nil {
		return nil, err
	}
	written = append(written, ListsFile)

	for _, f := range Sources(m) {
		path := filepath.Join(dir, filepath.FromSlash(f.Path))
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				log.Debugf("keeping existing %s", f.Path)
				continue
			} else if !errors.Is(err, fs.ErrNotExist) {
				return written, err
			}
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return written, err
		}
		written = append(written, f.Path)
	}
	return written, nil
}
