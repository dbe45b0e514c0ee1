package sync

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/logging"
	"github.com/wikimill/wikimill/pkg/types"
)

// Mirror merges an ordered list of source roots into one destination
// tree. Later roots overwrite files placed by earlier roots at the same
// relative path; that is the overwrite-priority rule, not an error.
type Mirror struct {
	fs      afero.Fs
	matcher *exclude.Matcher
	dest    string
	logger  zerolog.Logger
}

// NewMirror creates a mirror writing into dest.
func NewMirror(fsys afero.Fs, matcher *exclude.Matcher, dest string) *Mirror {
	return &Mirror{
		fs:      fsys,
		matcher: matcher,
		dest:    filepath.Clean(dest),
		logger:  logging.GetLogger("sync.mirror"),
	}
}

// Run walks every root in list order into the destination and returns
// the merged manifest (union of all walker results plus every implied
// ancestor directory) and the accumulated report.
//
// An uncreatable destination or an invalid source root is fatal; the
// engine does not self-repair preconditions.
func (m *Mirror) Run(roots []types.SourceRoot) (types.Manifest, *types.Report, error) {
	if info, err := m.fs.Stat(m.dest); err == nil && !info.IsDir() {
		return nil, nil, errors.Newf(errors.ErrDestCreate,
			"destination %s exists and is not a directory", m.dest)
	}
	if err := m.fs.MkdirAll(m.dest, 0755); err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrDestCreate,
			"failed to create destination %s", m.dest)
	}

	manifest := types.NewManifest()
	manifest.Add(m.dest, types.KindDir)
	report := types.NewReport()

	for _, root := range roots {
		info, err := m.fs.Stat(root.Path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrSourceInvalid,
				"source root %s is not accessible", root.Path)
		}
		if !info.IsDir() {
			return nil, nil, errors.Newf(errors.ErrSourceInvalid,
				"source root %s is not a directory", root.Path)
		}

		m.logger.Debug().
			Str("root", root.Path).
			Bool("walkOnly", root.WalkOnly).
			Msg("mirroring source root")

		walker := NewWalker(m.fs, m.matcher, m.dest, root.WalkOnly)
		rootManifest, rootReport := walker.Walk(root.Path)
		manifest.Merge(rootManifest)
		report.Merge(rootReport)
	}

	for _, path := range manifest.Paths() {
		manifest.AddAncestors(path, m.dest)
	}

	m.logger.Debug().
		Int("entries", len(manifest)).
		Int("failures", report.Len()).
		Msg("mirror complete")

	return manifest, report, nil
}
