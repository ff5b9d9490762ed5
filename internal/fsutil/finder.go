// Package fsutil provides file system utility functions for SZN topology
// discovery. The parser core never touches the file system; callers use
// this package to resolve paths into source text.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TopologyExtension is the file extension of SZN topology documents.
const TopologyExtension = ".szn"

// FindTopologyFiles resolves rootPath into the list of SZN files it
// denotes. A file path returns itself; a directory is searched recursively
// for files ending in .szn. Paths matching any of the shell-style exclude
// patterns (tested against the path relative to rootPath, and against the
// base name) are skipped. The result preserves walk order.
func FindTopologyFiles(rootPath string, excludes []string) ([]string, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", rootPath, err)
	}

	if !info.IsDir() {
		excluded, err := matchesAny(excludes, filepath.Base(rootPath), filepath.Base(rootPath))
		if err != nil {
			return nil, err
		}
		if excluded {
			return nil, nil
		}
		return []string{rootPath}, nil
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), TopologyExtension) {
			return nil
		}
		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			rel = path
		}
		excluded, matchErr := matchesAny(excludes, filepath.ToSlash(rel), d.Name())
		if matchErr != nil {
			return matchErr
		}
		if !excluded {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func matchesAny(patterns []string, rel, base string) (bool, error) {
	for _, pattern := range patterns {
		for _, candidate := range []string{rel, base} {
			ok, err := doublestar.Match(pattern, candidate)
			if err != nil {
				return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}
