// Package fs provides file system adapters for resolving, walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// DefaultIgnores are directory names never descended into below a walk root.
var DefaultIgnores = []string{".git", ".jj", ".ybuild", "node_modules"}

// Walker yields regular files below a directory.
type Walker struct {
	ignores []string
}

// NewWalker creates a Walker skipping DefaultIgnores.
func NewWalker() *Walker {
	return &Walker{ignores: DefaultIgnores}
}

// WalkFiles yields the files below root in lexical order. Directories matching
// an ignore pattern are skipped unless they are root itself, so an explicit
// walk into node_modules still works.
func (w *Walker) WalkFiles(root string, extraIgnores []string) iter.Seq[string] {
	ignores := slices.Concat(w.ignores, extraIgnores)

	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && matchesAny(ignores, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
