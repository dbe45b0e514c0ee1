// Package paths provides well-known file locations for wikimill:
// the wiki-root discovery rule, the default user ignore file and the
// bundled default-assets directory.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/wikimill/wikimill/pkg/errors"
)

const (
	// ConfigFileName marks the root of a wiki.
	ConfigFileName = "wikimill.yaml"

	// EnvIgnorePatterns holds extra whitespace-separated exclusion globs.
	EnvIgnorePatterns = "CVSIGNORE"
)

// FindWikiRoot walks upward from start until it finds a directory
// containing the wiki configuration file.
func FindWikiRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "invalid start directory")
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.ErrWikiNotFound,
				"no %s found in %s or any parent directory", ConfigFileName, start)
		}
		dir = parent
	}
}

// DefaultIgnoreFile is the user ignore file read when the configuration
// does not name one.
func DefaultIgnoreFile() string {
	return filepath.Join(xdg.Home, ".cvsignore")
}

// DefaultStaticDir is the bundled default-assets root shared by all
// wikis on the host.
func DefaultStaticDir() string {
	return filepath.Join(xdg.DataHome, "wikimill", "static")
}
