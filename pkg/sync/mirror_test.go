// Test Type: Unit Test
// Description: Tests for the mirror - multi-root merge and manifest accumulation

package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/sync"
	"github.com/wikimill/wikimill/pkg/testutil"
	"github.com/wikimill/wikimill/pkg/types"
)

func TestMirror_Run(t *testing.T) {
	t.Run("later_roots_overwrite_earlier_ones", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/r1", map[string]string{"a.html": "from r1"})
		testutil.WriteTree(t, fsys, "/r2", map[string]string{"a.html": "from r2"})

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/dest")
		manifest, report, err := mirror.Run([]types.SourceRoot{
			{Path: "/r1"},
			{Path: "/r2"},
		})
		require.NoError(t, err)

		assert.True(t, report.Empty())
		assert.Equal(t, "from r2", testutil.ReadFile(t, fsys, "/dest/a.html"))
		assert.True(t, manifest.Contains("/dest/a.html"))
	})

	t.Run("manifest_is_union_across_roots", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/r1", map[string]string{"docs/a.html": "a"})
		testutil.WriteTree(t, fsys, "/r2", map[string]string{"css/site.css": "b"})

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/dest")
		manifest, _, err := mirror.Run([]types.SourceRoot{
			{Path: "/r1"},
			{Path: "/r2"},
		})
		require.NoError(t, err)

		assert.True(t, manifest.Contains("/dest/docs/a.html"))
		assert.True(t, manifest.Contains("/dest/docs"))
		assert.True(t, manifest.Contains("/dest/css/site.css"))
		assert.True(t, manifest.Contains("/dest/css"))
		assert.True(t, manifest.Contains("/dest"))
	})

	t.Run("walk_only_root_contributes_to_manifest", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/tmproot", map[string]string{"page.html": "rendered"})
		testutil.WriteTree(t, fsys, "/static", map[string]string{"site.css": "css"})

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/dest")
		manifest, report, err := mirror.Run([]types.SourceRoot{
			{Path: "/tmproot", WalkOnly: true},
			{Path: "/static"},
		})
		require.NoError(t, err)

		assert.True(t, report.Empty())
		// Registered but not copied.
		assert.True(t, manifest.Contains("/dest/page.html"))
		assert.False(t, testutil.Exists(t, fsys, "/dest/page.html"))
		// Copied as usual.
		assert.Equal(t, "css", testutil.ReadFile(t, fsys, "/dest/site.css"))
	})

	t.Run("creates_destination", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/src", map[string]string{"a.html": "a"})

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/out/html")
		_, _, err := mirror.Run([]types.SourceRoot{{Path: "/src"}})
		require.NoError(t, err)

		assert.True(t, testutil.Exists(t, fsys, "/out/html"))
	})

	t.Run("destination_blocked_by_file_is_fatal", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteFile(t, fsys, "/dest", "i am a file")
		testutil.WriteTree(t, fsys, "/src", map[string]string{"a.html": "a"})

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/dest")
		_, _, err := mirror.Run([]types.SourceRoot{{Path: "/src"}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDestCreate))
	})

	t.Run("missing_source_root_is_fatal", func(t *testing.T) {
		fsys := testutil.NewMemFS()

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/dest")
		_, _, err := mirror.Run([]types.SourceRoot{{Path: "/nope"}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceInvalid))
	})

	t.Run("file_as_source_root_is_fatal", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteFile(t, fsys, "/notadir", "content")

		mirror := sync.NewMirror(fsys, newMatcher(t, exclude.Options{}), "/dest")
		_, _, err := mirror.Run([]types.SourceRoot{{Path: "/notadir"}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceInvalid))
	})
}
