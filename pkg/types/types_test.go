// Test Type: Unit Test
// Description: Tests for the shared data model - manifest and sync report

package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wikimill/wikimill/pkg/types"
)

func TestManifest(t *testing.T) {
	t.Run("paths_are_normalized", func(t *testing.T) {
		manifest := types.NewManifest()
		manifest.Add("/dest/./docs/page.html", types.KindFile)

		assert.True(t, manifest.Contains("/dest/docs/page.html"))
		assert.True(t, manifest.Contains("/dest/docs/./page.html"))
		assert.Equal(t, []string{"/dest/docs/page.html"}, manifest.Paths())
	})

	t.Run("directory_kind_wins", func(t *testing.T) {
		manifest := types.NewManifest()
		manifest.Add("/dest/docs", types.KindDir)
		manifest.Add("/dest/docs", types.KindFile)

		assert.Equal(t, types.KindDir, manifest["/dest/docs"])
	})

	t.Run("add_ancestors", func(t *testing.T) {
		manifest := types.NewManifest()
		manifest.Add("/dest/a/b/c.html", types.KindFile)
		manifest.AddAncestors("/dest/a/b/c.html", "/dest")

		assert.True(t, manifest.Contains("/dest/a/b"))
		assert.True(t, manifest.Contains("/dest/a"))
		assert.True(t, manifest.Contains("/dest"))
		assert.False(t, manifest.Contains("/"))
		assert.Equal(t, types.KindDir, manifest["/dest/a"])
	})

	t.Run("merge", func(t *testing.T) {
		a := types.NewManifest()
		a.Add("/dest/a.html", types.KindFile)
		b := types.NewManifest()
		b.Add("/dest/b.html", types.KindFile)

		a.Merge(b)
		assert.True(t, a.Contains("/dest/a.html"))
		assert.True(t, a.Contains("/dest/b.html"))
	})
}

func TestReport(t *testing.T) {
	report := types.NewReport()
	assert.True(t, report.Empty())

	report.Record(types.OpCopy, "/dest/a.html", errors.New("permission denied"))
	assert.False(t, report.Empty())
	assert.Equal(t, 1, report.Len())

	other := types.NewReport()
	other.Record(types.OpDelete, "/dest/b.html", errors.New("busy"))
	report.Merge(other)
	assert.Equal(t, 2, report.Len())

	assert.Contains(t, report.Failures[0].String(), "copy /dest/a.html")
	report.Merge(nil)
	assert.Equal(t, 2, report.Len())
}
