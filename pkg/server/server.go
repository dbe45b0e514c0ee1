// Package server serves the built HTML root over HTTP, optionally
// watching the wiki sources and triggering a full rebuild on change.
package server

import (
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/wikimill/wikimill/pkg/config"
	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/logging"
)

// Options configures a serve run.
type Options struct {
	Bind string
	Port int

	// Watch triggers Rebuild when the wiki or static sources change.
	// Every rebuild is a full one; there is no incremental sync.
	Watch   bool
	Rebuild func() error
}

const rebuildDebounce = 500 * time.Millisecond

// Serve blocks serving the HTML root until the listener fails or the
// process is terminated.
func Serve(cfg *config.Config, opts Options) error {
	logger := logging.GetLogger("server")

	if opts.Watch && opts.Rebuild != nil {
		stop := watch(cfg, opts.Rebuild, logger)
		if stop != nil {
			defer stop()
		}
	}

	addr := net.JoinHostPort(opts.Bind, strconv.Itoa(opts.Port))
	logger.Info().Str("addr", addr).Str("root", cfg.HTMLDir).Msg("serving HTML root")

	srv := &http.Server{
		Addr:    addr,
		Handler: http.FileServer(http.Dir(cfg.HTMLDir)),
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, errors.ErrServe, "server failed")
	}
	return nil
}

// watch starts a debounced fsnotify loop over the wiki and static roots.
// It returns a stop function, or nil when the watcher could not start.
func watch(cfg *config.Config, rebuild func() error, logger zerolog.Logger) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("could not start file watcher, serving without rebuild")
		return nil
	}

	for _, root := range []string{cfg.WikiDir, cfg.StaticDir} {
		addRecursive(watcher, root, logger)
	}

	go func() {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						addRecursive(watcher, event.Name, logger)
					}
				}
				if timer == nil {
					timer = time.NewTimer(rebuildDebounce)
					fire = timer.C
				} else {
					timer.Reset(rebuildDebounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("watcher error")
			case <-fire:
				logger.Info().Msg("sources changed, rebuilding")
				if err := rebuild(); err != nil {
					logger.Error().Err(err).Msg("rebuild failed")
				}
			}
		}
	}()

	return func() { _ = watcher.Close() }
}

// addRecursive watches root and every visible subdirectory.
func addRecursive(watcher *fsnotify.Watcher, root string, logger zerolog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("could not watch directory")
		}
		return nil
	})
}
