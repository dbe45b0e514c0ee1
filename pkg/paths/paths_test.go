// Test Type: Unit Test
// Description: Tests for wiki root discovery

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/paths"
)

func TestFindWikiRoot(t *testing.T) {
	t.Run("found_in_parent", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, paths.ConfigFileName), []byte("{}\n"), 0o644))
		nested := filepath.Join(root, "wiki", "guide")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		found, err := paths.FindWikiRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, root, found)
	})

	t.Run("found_in_start", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, paths.ConfigFileName), []byte("{}\n"), 0o644))

		found, err := paths.FindWikiRoot(root)
		require.NoError(t, err)
		assert.Equal(t, root, found)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := paths.FindWikiRoot(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrWikiNotFound))
	})
}
