// Test Type: Unit Test
// Description: Tests for document rendering and output mapping

package builder_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimill/wikimill/pkg/builder"
	"github.com/wikimill/wikimill/pkg/config"
	"github.com/wikimill/wikimill/pkg/testutil"
)

func newConfig() *config.Config {
	return &config.Config{
		Root:               "/wiki-root",
		WikiDir:            "/wiki-root/wiki",
		HTMLDir:            "/wiki-root/.html",
		TempDir:            "/wiki-root/.tmp",
		StaticDir:          "/wiki-root/static",
		ListingFilename:    "_list.html",
		GenerateListing:    config.ListingAlways,
		DocumentExtensions: []string{".md", ".wiki"},
	}
}

func TestBuilder_Walk(t *testing.T) {
	fsys := testutil.NewMemFS()
	testutil.WriteTree(t, fsys, "/wiki-root/wiki", map[string]string{
		"index.md":        "# Home",
		"guide/setup.md":  "# Setup",
		"guide/notes.txt": "not a document",
		".drafts/wip.md":  "hidden",
		"_private/x.md":   "hidden",
		".hidden.md":      "hidden",
	})

	docs, err := builder.New(newConfig(), fsys).Walk()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("guide", "setup.md"),
		"index.md",
	}, docs)
}

func TestBuilder_RenderDocument(t *testing.T) {
	fsys := testutil.NewMemFS()
	testutil.WriteTree(t, fsys, "/wiki-root/wiki", map[string]string{
		"getting-started.md": "# Hello\n\nSome *text*.\n",
	})

	page, err := builder.New(newConfig(), fsys).RenderDocument("getting-started.md")
	require.NoError(t, err)

	assert.Contains(t, page, "<title>getting started</title>")
	assert.Contains(t, page, "<h1>Hello</h1>")
	assert.Contains(t, page, "<em>text</em>")
}

func TestBuilder_RenderDocument_missing(t *testing.T) {
	fsys := testutil.NewMemFS()
	testutil.WriteTree(t, fsys, "/wiki-root/wiki", map[string]string{})

	_, err := builder.New(newConfig(), fsys).RenderDocument("nope.md")
	assert.Error(t, err)
}

func TestBuilder_OutputPath(t *testing.T) {
	b := builder.New(newConfig(), testutil.NewMemFS())
	assert.Equal(t, "index.html", b.OutputPath("index.md"))
	assert.Equal(t, filepath.Join("a", "b.html"), b.OutputPath(filepath.Join("a", "b.wiki")))
}

func TestBuilder_BuildDocuments(t *testing.T) {
	fsys := testutil.NewMemFS()
	testutil.WriteTree(t, fsys, "/wiki-root/wiki", map[string]string{
		"index.md":       "# Home",
		"guide/setup.md": "# Setup",
	})

	count, err := builder.New(newConfig(), fsys).BuildDocuments()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	home := testutil.ReadFile(t, fsys, "/wiki-root/.tmp/index.html")
	assert.Contains(t, home, "<h1>Home</h1>")
	setup := testutil.ReadFile(t, fsys, "/wiki-root/.tmp/guide/setup.html")
	assert.Contains(t, setup, "<h1>Setup</h1>")
}
