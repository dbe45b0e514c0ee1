package types

import (
	"path/filepath"
	"sort"
)

// SourceRoot is one layered source tree participating in a mirror run.
// Priority is positional: later roots in the merge order overwrite files
// placed by earlier roots at the same relative path.
type SourceRoot struct {
	// Path is the absolute path of the source tree.
	Path string

	// WalkOnly makes the walker traverse and account for destination
	// paths without copying anything. Used when the root's content is
	// already present at the destination from a prior phase.
	WalkOnly bool
}

// EntryKind tags a manifest entry as a file or a directory.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

func (k EntryKind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Manifest is the full set of normalized absolute destination paths that
// should exist after a successful mirror. It is the ground truth for
// pruning.
type Manifest map[string]EntryKind

// NewManifest returns an empty manifest.
func NewManifest() Manifest {
	return make(Manifest)
}

// Add records a normalized path with its kind. Directories win over files
// so that an ancestor registered as a file by mistake cannot shadow a
// real directory entry.
func (m Manifest) Add(path string, kind EntryKind) {
	path = filepath.Clean(path)
	if existing, ok := m[path]; ok && existing == KindDir {
		return
	}
	m[path] = kind
}

// Contains reports whether the normalized form of path is in the manifest.
func (m Manifest) Contains(path string) bool {
	_, ok := m[filepath.Clean(path)]
	return ok
}

// Merge adds every entry of other into m.
func (m Manifest) Merge(other Manifest) {
	for path, kind := range other {
		m.Add(path, kind)
	}
}

// AddAncestors registers every ancestor directory of path up to (and
// including) root as directory entries.
func (m Manifest) AddAncestors(path, root string) {
	root = filepath.Clean(root)
	dir := filepath.Dir(filepath.Clean(path))
	for len(dir) >= len(root) {
		m.Add(dir, KindDir)
		if dir == root {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Paths returns the manifest paths in sorted order.
func (m Manifest) Paths() []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
