package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// InputExt is the extension of the TEI-XML files picked from directories.
	InputExt = ".xml"

	// OutputExt is the default extension of converted files.
	OutputExt = ".conllu"
)

// Inputs expands the given paths into the list of files to read. A directory
// contributes its files with one of the extensions exts (default: *.xml),
// sorted by name, without descending into subdirectories. Files are kept as
// given, whatever their extension.
func Inputs(paths []string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{InputExt}
	}

	var inputs []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("input not found: %s", p)
		}

		if !info.IsDir() {
			inputs = append(inputs, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}

		var names []string
		for _, e := range entries {
			if e.IsDir() || !hasExt(e.Name(), exts) {
				continue
			}
			names = append(names, e.Name())
		}

		sort.Strings(names)
		for _, name := range names {
			inputs = append(inputs, filepath.Join(p, name))
		}
	}

	return inputs, nil
}

// OutputPath returns path with its extension replaced by ext. A path without
// extension gets ext appended.
func OutputPath(path, ext string) string {
	if ext == "" {
		ext = OutputExt
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
