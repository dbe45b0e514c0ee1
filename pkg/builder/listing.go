package builder

import (
	"bytes"
	"html/template"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/config"
	"github.com/wikimill/wikimill/pkg/errors"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Index of {{.Directory}}</title>
</head>
<body>
<h1>Index of {{.Directory}}</h1>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

type listingEntry struct {
	Name string
	Href string
}

// RenderListing produces HTML listing text for a destination directory,
// addressed relative to the HTML root ("/" for the root itself).
func (b *Builder) RenderListing(directory string) (string, error) {
	rel := strings.TrimPrefix(directory, "/")
	fsDir := filepath.Join(b.cfg.HTMLDir, filepath.FromSlash(rel))

	infos, err := afero.ReadDir(b.fs, fsDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrListingFailed, "failed to list %s", directory)
	}

	var entries []listingEntry
	for _, info := range infos {
		name := info.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if name == "index.html" || name == b.cfg.ListingFilename {
			continue
		}
		if info.IsDir() {
			entries = append(entries, listingEntry{Name: name + "/", Href: name + "/"})
		} else {
			entries = append(entries, listingEntry{Name: name, Href: name})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var buf bytes.Buffer
	data := struct {
		Directory string
		Entries   []listingEntry
	}{Directory: directory, Entries: entries}
	if err := listingTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrListingFailed, "failed to render listing for %s", directory)
	}
	return buf.String(), nil
}

// GenerateListings writes a listing page into every directory of the
// HTML root, honoring the generate-listing mode, and installs it as
// index.html where no index exists.
func (b *Builder) GenerateListings() (int, error) {
	if b.cfg.GenerateListing == config.ListingNever {
		b.logger.Debug().Msg("no listings generated (generate-listing is never)")
		return 0, nil
	}

	dirs, err := b.htmlDirs("")
	if err != nil {
		return 0, err
	}

	written := 0
	for _, rel := range dirs {
		fsDir := filepath.Join(b.cfg.HTMLDir, rel)
		indexExists := b.exists(filepath.Join(fsDir, "index.html")) ||
			b.exists(filepath.Join(fsDir, "index"))

		directory := "/" + filepath.ToSlash(rel)
		if rel == "" {
			directory = "/"
		}

		if b.cfg.GenerateListing == config.ListingSometimes && indexExists {
			b.logger.Debug().Str("directory", directory).Msg("no listing generated")
			continue
		}

		b.logger.Debug().Str("directory", directory).Msg("generating listing")
		listing, err := b.RenderListing(directory)
		if err != nil {
			return written, err
		}

		listPath := filepath.Join(fsDir, b.cfg.ListingFilename)
		if err := afero.WriteFile(b.fs, listPath, []byte(listing), 0644); err != nil {
			return written, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", listPath)
		}
		written++

		if !indexExists {
			indexPath := filepath.Join(fsDir, "index.html")
			if err := afero.WriteFile(b.fs, indexPath, []byte(listing), 0644); err != nil {
				return written, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", indexPath)
			}
		}
	}
	return written, nil
}

// htmlDirs returns the relative paths of all visible directories under
// the HTML root, the root itself ("") first.
func (b *Builder) htmlDirs(rel string) ([]string, error) {
	dirs := []string{rel}
	entries, err := afero.ReadDir(b.fs, filepath.Join(b.cfg.HTMLDir, rel))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read HTML directory %s", rel)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		children, err := b.htmlDirs(filepath.Join(rel, name))
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, children...)
	}
	return dirs, nil
}

func (b *Builder) exists(path string) bool {
	_, err := b.fs.Stat(path)
	return err == nil
}
