package sync

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/logging"
	"github.com/wikimill/wikimill/pkg/types"
)

// PreservedFilename is always copied even though the built-in dotfile
// rule would otherwise exclude it.
const PreservedFilename = ".htaccess"

// Walker walks one source root depth-first, skipping excluded subtrees,
// and either copies visible files into the destination or, in walk-only
// mode, only records what would be copied.
type Walker struct {
	fs       afero.Fs
	matcher  *exclude.Matcher
	dest     string
	walkOnly bool
	logger   zerolog.Logger
}

// NewWalker creates a walker copying into dest. With walkOnly the
// destination filesystem is never touched.
func NewWalker(fsys afero.Fs, matcher *exclude.Matcher, dest string, walkOnly bool) *Walker {
	return &Walker{
		fs:       fsys,
		matcher:  matcher,
		dest:     filepath.Clean(dest),
		walkOnly: walkOnly,
		logger:   logging.GetLogger("sync.walker"),
	}
}

// Walk traverses root and returns the set of destination paths that
// correspond to the root's visible files and directories, plus a report
// of non-fatal copy failures.
func (w *Walker) Walk(root string) (types.Manifest, *types.Report) {
	manifest := types.NewManifest()
	report := types.NewReport()
	w.walkDir(filepath.Clean(root), w.dest, manifest, report)
	return manifest, report
}

func (w *Walker) walkDir(src, target string, manifest types.Manifest, report *types.Report) {
	w.logger.Debug().Str("dir", src).Msg("entering")

	entries, err := afero.ReadDir(w.fs, src)
	if err != nil {
		report.Record(types.OpWalk, src, err)
		w.logger.Warn().Err(err).Str("dir", src).Msg("read dir failed")
		return
	}

	manifest.Add(target, types.KindDir)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if w.matcher.Matches(name, true) {
				w.logger.Debug().Str("dir", filepath.Join(src, name)).Msg("skipping subdirectory (excluded)")
				continue
			}
			w.walkDir(filepath.Join(src, name), filepath.Join(target, name), manifest, report)
			continue
		}

		if w.matcher.Matches(name, false) && name != PreservedFilename {
			w.logger.Debug().Str("file", filepath.Join(src, name)).Msg("skipping file (excluded)")
			continue
		}

		destPath := filepath.Join(target, name)
		manifest.Add(destPath, types.KindFile)
		if w.walkOnly {
			w.logger.Debug().Str("file", destPath).Msg("walked only")
			continue
		}

		if err := w.fs.MkdirAll(target, 0755); err != nil {
			report.Record(types.OpMkdir, target, err)
			w.logger.Warn().Err(err).Str("dir", target).Msg("mkdir failed")
			continue
		}
		if err := w.copyFile(filepath.Join(src, name), destPath, entry); err != nil {
			report.Record(types.OpCopy, destPath, err)
			w.logger.Warn().Err(err).Str("file", destPath).Msg("file copy failed")
		}
	}
}

// copyFile copies bytes plus permissions and timestamps. Symlinks are
// recreated when the filesystem supports it.
func (w *Walker) copyFile(src, dest string, info os.FileInfo) error {
	if linkTarget, ok := w.readSymlink(src); ok {
		// Replace whatever is at the destination with an equivalent link.
		_ = w.fs.Remove(dest)
		if linker, lok := w.fs.(afero.Linker); lok {
			return linker.SymlinkIfPossible(linkTarget, dest)
		}
	}

	in, err := w.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := w.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := w.fs.Chmod(dest, info.Mode().Perm()); err != nil {
		return err
	}
	// Timestamp preservation is best-effort, as with attribute copies in
	// the underlying tooling this replaces.
	_ = w.fs.Chtimes(dest, info.ModTime(), info.ModTime())
	return nil
}

// readSymlink reports whether src is a symlink and, if so, its target.
func (w *Walker) readSymlink(src string) (string, bool) {
	lstater, ok := w.fs.(afero.Lstater)
	if !ok {
		return "", false
	}
	li, lstatCalled, err := lstater.LstatIfPossible(src)
	if err != nil || !lstatCalled || li.Mode()&os.ModeSymlink == 0 {
		return "", false
	}
	reader, ok := w.fs.(afero.LinkReader)
	if !ok {
		return "", false
	}
	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return "", false
	}
	return target, true
}
