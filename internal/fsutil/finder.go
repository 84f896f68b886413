// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindFiles returns rootPath itself if it is a regular file, or every file
// below it whose name ends in one of extensions. Results are sorted so that
// loading order does not depend on the file system.
func FindFiles(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("fsutil: at least one extension is required")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !hasExtension(rootPath, extensions) {
			return nil, fmt.Errorf("%s: unsupported file extension, want one of %s", rootPath, strings.Join(extensions, ", "))
		}
		return []string{rootPath}, nil
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(extensions, ext)
}
