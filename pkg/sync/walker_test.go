// Test Type: Unit Test
// Description: Tests for the source walker - traversal, exclusion and copy

package sync_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/sync"
	"github.com/wikimill/wikimill/pkg/testutil"
	"github.com/wikimill/wikimill/pkg/types"
)

func newMatcher(t *testing.T, opts exclude.Options) *exclude.Matcher {
	t.Helper()
	matcher, err := exclude.Compile(testutil.NewMemFS(), opts)
	require.NoError(t, err)
	return matcher
}

func TestWalker_Walk(t *testing.T) {
	t.Run("copies_visible_files", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/src", map[string]string{
			"index.html":      "<p>home</p>",
			"docs/page.html":  "<p>page</p>",
			"docs/style.css":  "body {}",
			"empty-dir/":      "",
			".hidden":         "secret",
			"_partial.html":   "partial",
			".git/config":     "[core]",
			"_drafts/wip.txt": "wip",
		})

		walker := sync.NewWalker(fsys, newMatcher(t, exclude.Options{}), "/dest", false)
		manifest, report := walker.Walk("/src")

		assert.True(t, report.Empty())
		assert.Equal(t, "<p>home</p>", testutil.ReadFile(t, fsys, "/dest/index.html"))
		assert.Equal(t, "<p>page</p>", testutil.ReadFile(t, fsys, "/dest/docs/page.html"))
		assert.False(t, testutil.Exists(t, fsys, "/dest/.hidden"))
		assert.False(t, testutil.Exists(t, fsys, "/dest/_partial.html"))
		assert.False(t, testutil.Exists(t, fsys, "/dest/.git"))
		assert.False(t, testutil.Exists(t, fsys, "/dest/_drafts"))

		assert.True(t, manifest.Contains("/dest"))
		assert.True(t, manifest.Contains("/dest/index.html"))
		assert.True(t, manifest.Contains("/dest/docs"))
		assert.True(t, manifest.Contains("/dest/docs/page.html"))
		assert.True(t, manifest.Contains("/dest/docs/style.css"))
		assert.True(t, manifest.Contains("/dest/empty-dir"))
		assert.False(t, manifest.Contains("/dest/.hidden"))
		assert.False(t, manifest.Contains("/dest/.git/config"))
	})

	t.Run("htaccess_is_copied_despite_dotfile_rule", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/src", map[string]string{
			".htaccess": "Deny from all",
			".other":    "hidden",
		})

		walker := sync.NewWalker(fsys, newMatcher(t, exclude.Options{}), "/dest", false)
		manifest, report := walker.Walk("/src")

		assert.True(t, report.Empty())
		assert.Equal(t, "Deny from all", testutil.ReadFile(t, fsys, "/dest/.htaccess"))
		assert.True(t, manifest.Contains("/dest/.htaccess"))
		assert.False(t, testutil.Exists(t, fsys, "/dest/.other"))
	})

	t.Run("walk_only_registers_without_copying", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/src", map[string]string{
			"docs/page.html": "<p>page</p>",
		})

		walker := sync.NewWalker(fsys, newMatcher(t, exclude.Options{}), "/dest", true)
		manifest, report := walker.Walk("/src")

		assert.True(t, report.Empty())
		assert.True(t, manifest.Contains("/dest/docs/page.html"))
		assert.True(t, manifest.Contains("/dest/docs"))
		assert.False(t, testutil.Exists(t, fsys, "/dest"))
	})

	t.Run("extended_exclusion_gates_copy", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/src", map[string]string{
			"page.html": "<p>ok</p>",
			"page.bak":  "old",
		})

		plain := sync.NewWalker(fsys, newMatcher(t, exclude.Options{}), "/dest-plain", false)
		manifest, _ := plain.Walk("/src")
		assert.True(t, manifest.Contains("/dest-plain/page.bak"))
		assert.True(t, testutil.Exists(t, fsys, "/dest-plain/page.bak"))

		extended := sync.NewWalker(fsys, newMatcher(t, exclude.Options{ExtendedExclude: true}), "/dest-ext", false)
		manifest, _ = extended.Walk("/src")
		assert.False(t, manifest.Contains("/dest-ext/page.bak"))
		assert.False(t, testutil.Exists(t, fsys, "/dest-ext/page.bak"))
	})

	t.Run("copy_failures_are_recorded_not_fatal", func(t *testing.T) {
		base := testutil.NewMemFS()
		testutil.WriteTree(t, base, "/src", map[string]string{
			"a.html": "a",
			"b.html": "b",
		})

		// A read-only filesystem makes every destination mkdir fail;
		// the walk still completes and accounts for every file.
		fsys := afero.NewReadOnlyFs(base)
		walker := sync.NewWalker(fsys, newMatcher(t, exclude.Options{}), "/dest", false)
		manifest, report := walker.Walk("/src")

		assert.Equal(t, 2, report.Len())
		for _, failure := range report.Failures {
			assert.Equal(t, types.OpMkdir, failure.Op)
		}
		assert.True(t, manifest.Contains("/dest/a.html"))
		assert.True(t, manifest.Contains("/dest/b.html"))
	})

	t.Run("overwrites_existing_destination_file", func(t *testing.T) {
		fsys := testutil.NewMemFS()
		testutil.WriteTree(t, fsys, "/src", map[string]string{"a.html": "new"})
		testutil.WriteFile(t, fsys, "/dest/a.html", "old")

		walker := sync.NewWalker(fsys, newMatcher(t, exclude.Options{}), "/dest", false)
		_, report := walker.Walk("/src")

		assert.True(t, report.Empty())
		assert.Equal(t, "new", testutil.ReadFile(t, fsys, "/dest/a.html"))
	})
}
