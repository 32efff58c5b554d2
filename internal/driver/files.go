package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of kiln source files.
const SourceExt = ".kl"

// listKlFiles возвращает отсортированный список всех *.kl файлов в директории
func listKlFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandPaths turns command-line arguments into a list of source files.
// Directories contribute every *.kl file below them; plain files are kept
// as given, whatever their extension. Duplicates are dropped.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool, len(args))
	var out []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !st.IsDir() {
			add(arg)
			continue
		}
		files, err := listKlFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}
