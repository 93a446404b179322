package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/cflow/domain"
	"github.com/ludo-technologies/cflow/internal/config"
)

// FileReaderImpl implements domain.FileReader using doublestar globs
// for include/exclude filtering
type FileReaderImpl struct{}

// NewFileReader creates a file reader
func NewFileReader() domain.FileReader {
	return &FileReaderImpl{}
}

// CollectSourceFiles expands paths into the sorted list of source
// files to analyze. Explicit file paths are taken as-is; directories
// are walked recursively with the patterns applied to slash-separated
// paths relative to the directory.
func (fr *FileReaderImpl) CollectSourceFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error) {
	if len(includePatterns) == 0 {
		includePatterns = config.DefaultIncludePatterns
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		root := path
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if !matchesAny(includePatterns, rel) || matchesAny(excludePatterns, rel) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads one source file
func (fr *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return data, nil
}

func matchesAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
