// Package vcsignore writes version-control ignore files covering the
// wiki's generated directories.
package vcsignore

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/config"
	"github.com/wikimill/wikimill/pkg/errors"
)

// Supported version control systems.
var supported = map[string]bool{
	"hg":  true,
	"git": true,
	"cvs": true,
	"bzr": true,
}

// Supported reports whether vcs is a recognized system.
func Supported(vcs string) bool {
	return supported[vcs]
}

// Filename returns the conventional ignore filename for a VCS.
func Filename(vcs string) string {
	return "." + vcs + "ignore"
}

// Lines returns the ignore file content, one entry per line: the HTML
// root and the temp root, relative to the wiki root. Mercurial gets a
// glob-syntax header.
func Lines(cfg *config.Config, vcs string) ([]string, error) {
	if !Supported(vcs) {
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported VCS %q", vcs)
	}

	htmlRel, err := filepath.Rel(cfg.Root, cfg.HTMLDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "HTML dir is not under the wiki root")
	}
	tempRel, err := filepath.Rel(cfg.Root, cfg.TempDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "temp dir is not under the wiki root")
	}

	lines := []string{htmlRel, tempRel}
	if vcs == "hg" {
		lines = append([]string{"syntax: glob", ""}, lines...)
	}
	return lines, nil
}

// Write writes the ignore file for vcs. An empty output derives the
// filename from the VCS; "-" writes to stdout. It returns the path
// written, or "-" for stdout.
func Write(fsys afero.Fs, cfg *config.Config, vcs, output string, stdout io.Writer) (string, error) {
	lines, err := Lines(cfg, vcs)
	if err != nil {
		return "", err
	}
	content := strings.Join(lines, "\n") + "\n"

	if output == "-" {
		if _, err := io.WriteString(stdout, content); err != nil {
			return "", errors.Wrap(err, errors.ErrFileWrite, "failed to write ignore file to stdout")
		}
		return "-", nil
	}

	name := output
	if name == "" {
		name = Filename(vcs)
	}
	path := filepath.Join(cfg.Root, name)
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return path, nil
}
