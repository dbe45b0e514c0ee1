// Package builder renders wiki documents to HTML in the temp root and
// generates per-directory listings for the HTML root. It implements the
// renderer collaborators the sync engine is composed with.
package builder

import (
	"bytes"
	"html/template"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/wikimill/wikimill/pkg/config"
	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/logging"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Builder converts the wiki source tree into HTML.
type Builder struct {
	cfg    *config.Config
	fs     afero.Fs
	md     goldmark.Markdown
	logger zerolog.Logger
}

// New creates a builder for the given wiki.
func New(cfg *config.Config, fsys afero.Fs) *Builder {
	return &Builder{
		cfg: cfg,
		fs:  fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		logger: logging.GetLogger("builder"),
	}
}

// Walk returns the sorted relative paths of all wiki documents, skipping
// hidden (dot or underscore prefixed) files and directories.
func (b *Builder) Walk() ([]string, error) {
	var docs []string
	if err := b.walkDir("", &docs); err != nil {
		return nil, err
	}
	sort.Strings(docs)
	return docs, nil
}

func (b *Builder) walkDir(rel string, docs *[]string) error {
	entries, err := afero.ReadDir(b.fs, filepath.Join(b.cfg.WikiDir, rel))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read wiki directory %s", rel)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		child := filepath.Join(rel, name)
		if entry.IsDir() {
			if err := b.walkDir(child, docs); err != nil {
				return err
			}
			continue
		}
		if b.isDocument(name) {
			*docs = append(*docs, child)
		}
	}
	return nil
}

func (b *Builder) isDocument(name string) bool {
	ext := filepath.Ext(name)
	for _, docExt := range b.cfg.DocumentExtensions {
		if ext == docExt {
			return true
		}
	}
	return false
}

// RenderDocument converts one wiki document, addressed relative to the
// wiki root, into a full HTML page.
func (b *Builder) RenderDocument(relPath string) (string, error) {
	source, err := afero.ReadFile(b.fs, filepath.Join(b.cfg.WikiDir, relPath))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderFailed, "failed to read document %s", relPath)
	}

	var body bytes.Buffer
	if err := b.md.Convert(source, &body); err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderFailed, "failed to render document %s", relPath)
	}

	var page bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: documentTitle(relPath),
		Body:  template.HTML(body.String()),
	}
	if err := pageTemplate.Execute(&page, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderFailed, "failed to render page %s", relPath)
	}
	return page.String(), nil
}

// OutputPath maps a document path to its destination path relative to
// the temp root: a/b.md becomes a/b.html.
func (b *Builder) OutputPath(relPath string) string {
	ext := filepath.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + ".html"
}

// BuildDocuments renders every wiki document into the temp root.
func (b *Builder) BuildDocuments() (int, error) {
	docs, err := b.Walk()
	if err != nil {
		return 0, err
	}

	for _, doc := range docs {
		html, err := b.RenderDocument(doc)
		if err != nil {
			return 0, err
		}

		outPath := filepath.Join(b.cfg.TempDir, b.OutputPath(doc))
		if err := b.fs.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return 0, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create output directory for %s", doc)
		}
		b.logger.Debug().Str("document", doc).Str("output", outPath).Msg("rendering document")
		if err := afero.WriteFile(b.fs, outPath, []byte(html), 0644); err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", outPath)
		}
	}
	return len(docs), nil
}

// documentTitle derives a page title from the document filename.
func documentTitle(relPath string) string {
	base := filepath.Base(relPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "-", " ")
	return strings.ReplaceAll(base, "_", " ")
}
