// Package folder extracts the top-level folder name from a directory selection.
package folder

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	ErrNoFileSelected = errors.New("no file selected")
	ErrNoRelativePath = errors.New("selected entry has no relative path")
)

// Entry is one selected file. RelativePath is '/'-separated and starts with
// the name of the folder the user picked.
type Entry struct {
	Name         string
	RelativePath string
}

// Selection is the result of a folder pick, in selection order
type Selection []Entry

// TopFolderName returns the first '/'-separated segment of path.
// A path without '/' is returned whole; a leading '/' yields "".
func TopFolderName(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

// ExtractTopFolderName returns the top-level folder of the first selected entry
func ExtractTopFolderName(sel Selection) (string, error) {
	if len(sel) == 0 {
		return "", ErrNoFileSelected
	}
	first := sel[0]
	if first.RelativePath == "" {
		return "", fmt.Errorf("%w: %q", ErrNoRelativePath, first.Name)
	}
	return TopFolderName(first.RelativePath), nil
}

// FromPaths builds a selection from '/'-separated relative paths
func FromPaths(paths ...string) Selection {
	sel := make(Selection, 0, len(paths))
	for _, p := range paths {
		sel = append(sel, Entry{Name: baseName(p), RelativePath: p})
	}
	return sel
}

// SelectDir selects every regular file under dir the way a browser directory
// picker does: relative paths begin with the base name of dir.
func SelectDir(dir string) (Selection, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	parent := filepath.Dir(root)

	var sel Selection
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		sel = append(sel, Entry{Name: d.Name(), RelativePath: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return sel, nil
}

func baseName(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
