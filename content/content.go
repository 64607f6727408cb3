// Package content bundles the default class and monster definitions and
// provides the shared helpers used to load YAML definitions from any fs.FS.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Directory names inside a content root.
const (
	ClassesDir  = "classes"
	MonstersDir = "monsters"
)

//go:embed classes/*.yaml monsters/*.yaml
var embedded embed.FS

// Embedded returns the content compiled into the binary.
func Embedded() fs.FS { return embedded }

// Open returns the content root at dir, or the embedded content when dir is empty.
//
// Postcondition: Returns a non-nil fs.FS or an error if dir is not a readable directory.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening content dir %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %q is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// YAMLFiles lists the .yaml and .yml files directly inside dir, in lexical order.
//
// Postcondition: Returns slash-separated paths relative to fsys or an error.
func YAMLFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}
