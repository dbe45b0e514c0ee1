package sync

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/logging"
	"github.com/wikimill/wikimill/pkg/types"
)

// Pruner deletes every destination entry that is neither excluded nor
// present in the manifest. Excluded entries are skipped entirely: never
// descended into, never compared, never deleted.
type Pruner struct {
	fs      afero.Fs
	matcher *exclude.Matcher
	logger  zerolog.Logger
}

// NewPruner creates a pruner using the given exclusion matcher.
func NewPruner(fsys afero.Fs, matcher *exclude.Matcher) *Pruner {
	return &Pruner{
		fs:      fsys,
		matcher: matcher,
		logger:  logging.GetLogger("sync.pruner"),
	}
}

// Prune walks the destination tree and removes stale entries, resolving
// each directory's children before its siblings. Deletion failures are
// recorded and skipped; the walk always completes.
func (p *Pruner) Prune(dest string, manifest types.Manifest) *types.Report {
	report := types.NewReport()
	p.pruneDir(filepath.Clean(dest), manifest, report)
	return report
}

func (p *Pruner) pruneDir(dir string, manifest types.Manifest, report *types.Report) {
	entries, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		report.Record(types.OpWalk, dir, err)
		p.logger.Warn().Err(err).Str("dir", dir).Msg("read dir failed")
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if entry.IsDir() {
			if p.matcher.Matches(name, true) {
				continue
			}
			if manifest.Contains(full) {
				// A manifest directory is retained even when child
				// deletions leave it empty.
				p.pruneDir(full, manifest, report)
				continue
			}
			p.logger.Debug().Str("dir", full).Msg("recursively deleting stale directory")
			p.deleteTree(full, report)
			continue
		}

		if p.matcher.Matches(name, false) {
			continue
		}
		if manifest.Contains(full) {
			continue
		}
		p.logger.Debug().Str("file", full).Msg("deleting stale file")
		if err := p.fs.Remove(full); err != nil {
			report.Record(types.OpDelete, full, err)
			p.logger.Warn().Err(err).Str("file", full).Msg("file delete failed")
		}
	}
}

// deleteTree removes a stale directory: files first, then the emptied
// directories, each removal independently guarded.
func (p *Pruner) deleteTree(dir string, report *types.Report) {
	entries, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		report.Record(types.OpWalk, dir, err)
	} else {
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				p.deleteTree(full, report)
				continue
			}
			if err := p.fs.Remove(full); err != nil {
				report.Record(types.OpDelete, full, err)
				p.logger.Warn().Err(err).Str("file", full).Msg("file delete failed")
			}
		}
	}
	if err := p.fs.Remove(dir); err != nil {
		report.Record(types.OpDelete, dir, err)
		p.logger.Warn().Err(err).Str("dir", dir).Msg("directory delete failed")
	}
}
