package sync

import (
	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/types"
)

// Run performs one full synchronization: mirror every root into dest in
// list order, then prune the destination against the merged manifest.
// The returned report accumulates all non-fatal copy and delete
// failures; the error is non-nil only for fatal precondition failures.
func Run(fsys afero.Fs, matcher *exclude.Matcher, dest string, roots []types.SourceRoot) (types.Manifest, *types.Report, error) {
	mirror := NewMirror(fsys, matcher, dest)
	manifest, report, err := mirror.Run(roots)
	if err != nil {
		return nil, report, err
	}

	pruner := NewPruner(fsys, matcher)
	report.Merge(pruner.Prune(dest, manifest))
	return manifest, report, nil
}
