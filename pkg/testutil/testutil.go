// Package testutil provides afero-backed helpers for building and
// inspecting file trees in tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() afero.Fs {
	return afero.NewMemMapFs()
}

// WriteFile writes content at path, creating parent directories.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
}

// WriteTree creates a file tree under root. Keys are slash-separated
// relative paths; a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	for rel, content := range files {
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0755))
			continue
		}
		WriteFile(t, fsys, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
}

// ReadFile returns the content at path, failing the test on error.
func ReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether path exists.
func Exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	_, err := fsys.Stat(path)
	return err == nil
}

// FilePaths returns the sorted slash-separated relative paths of every
// file under root.
func FilePaths(t *testing.T, fsys afero.Fs, root string) []string {
	t.Helper()
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(paths)
	return paths
}
