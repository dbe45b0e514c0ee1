package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wikimill/wikimill/pkg/builder"
	"github.com/wikimill/wikimill/pkg/config"
	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/exclude"
	"github.com/wikimill/wikimill/pkg/paths"
	"github.com/wikimill/wikimill/pkg/server"
	"github.com/wikimill/wikimill/pkg/sync"
	"github.com/wikimill/wikimill/pkg/types"
	"github.com/wikimill/wikimill/pkg/vcsignore"
)

// appFs is the filesystem every command operates on.
var appFs = afero.NewOsFs()

// loadConfig discovers the wiki root and loads its configuration.
func loadConfig() (*config.Config, error) {
	start := rootDir
	if start == "" {
		start = "."
	}
	root, err := paths.FindWikiRoot(start)
	if err != nil {
		return nil, err
	}
	return config.Load(root)
}

// newMatcher compiles the exclusion matcher for one run.
func newMatcher(cfg *config.Config) (*exclude.Matcher, error) {
	return exclude.Compile(appFs, exclude.Options{
		ExtendedExclude: cfg.CVSExclude,
		IgnoreFile:      cfg.IgnoreFilePath(),
		EnvPatterns:     os.Getenv(paths.EnvIgnorePatterns),
		CaseInsensitive: exclude.CaseInsensitiveDefault(),
	})
}

// sourceRoots assembles the mirror inputs in priority order: temp output
// first, then the bundled default assets, then the user static root.
// Later roots overwrite earlier ones.
func sourceRoots(cfg *config.Config, tempWalkOnly bool) []types.SourceRoot {
	roots := []types.SourceRoot{{Path: cfg.TempDir, WalkOnly: tempWalkOnly}}
	if cfg.UseDefaultStatic && isDir(paths.DefaultStaticDir()) {
		roots = append(roots, types.SourceRoot{Path: paths.DefaultStaticDir()})
	}
	if isDir(cfg.StaticDir) {
		roots = append(roots, types.SourceRoot{Path: cfg.StaticDir})
	}
	return roots
}

func isDir(path string) bool {
	info, err := appFs.Stat(path)
	return err == nil && info.IsDir()
}

// runSync performs one mirror-and-prune run into the HTML root.
func runSync(cfg *config.Config, tempWalkOnly bool) error {
	if err := appFs.MkdirAll(cfg.TempDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create temp dir %s", cfg.TempDir)
	}

	matcher, err := newMatcher(cfg)
	if err != nil {
		return err
	}

	manifest, report, err := sync.Run(appFs, matcher, cfg.HTMLDir, sourceRoots(cfg, tempWalkOnly))
	if err != nil {
		return err
	}

	if !report.Empty() {
		for _, failure := range report.Failures {
			log.Warn().Str("op", string(failure.Op)).Str("path", failure.Path).
				Err(failure.Err).Msg("sync failure")
		}
	}
	log.Info().Int("entries", len(manifest)).Int("failures", report.Len()).Msg("sync complete")
	return nil
}

// runBuild renders all documents, syncs the HTML root and writes listings.
func runBuild(cfg *config.Config) error {
	if err := cleanDir(cfg.TempDir); err != nil {
		return err
	}

	b := builder.New(cfg, appFs)
	rendered, err := b.BuildDocuments()
	if err != nil {
		return err
	}
	log.Info().Int("documents", rendered).Msg("documents rendered")

	if err := runSync(cfg, false); err != nil {
		return err
	}

	listings, err := b.GenerateListings()
	if err != nil {
		return err
	}
	log.Info().Int("listings", listings).Msg("listings generated")
	return nil
}

func cleanDir(dir string) error {
	if err := appFs.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", dir)
	}
	if err := appFs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	return nil
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the wiki to HTML and sync to the HTML root",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runBuild(cfg)
	},
}

var syncHTMLCmd = &cobra.Command{
	Use:   "sync-html",
	Short: "Sync built HTML and static media into the HTML root",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runSync(cfg, false)
	},
}

var syncStaticCmd = &cobra.Command{
	Use:   "sync-static",
	Short: "Sync static files into the HTML root",
	Long: `Sync static files into the HTML root. The temp root is walked without
copying, so previously synced HTML is kept registered while only static
assets are copied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runSync(cfg, true)
	},
}

var cleanHTMLCmd = &cobra.Command{
	Use:   "clean-html",
	Short: "Clean built HTML from the HTML root",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cleanDir(cfg.HTMLDir)
	},
}

var cleanTempCmd = &cobra.Command{
	Use:   "clean-temp",
	Short: "Clean built HTML from the temporary directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cleanDir(cfg.TempDir)
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the resolved wiki configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
		}
		fmt.Print(string(out))
		return nil
	},
}

var vcsIgnoreOutput string

var vcsIgnoreCmd = &cobra.Command{
	Use:       "vcs-ignore [hg|git|cvs|bzr]",
	Short:     "Create a VCS ignore file for the wiki",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"hg", "git", "cvs", "bzr"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vcs := "hg"
		if len(args) > 0 {
			vcs = args[0]
		}
		written, err := vcsignore.Write(appFs, cfg, vcs, vcsIgnoreOutput, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if written != "-" {
			log.Info().Str("path", written).Msg("ignore file written")
		}
		return nil
	},
}

var (
	servePort  int
	serveBind  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built HTML from the HTML root",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		bind := cfg.Server.Bind
		if serveBind != "" {
			bind = serveBind
		}
		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}
		return server.Serve(cfg, server.Options{
			Bind:    bind,
			Port:    port,
			Watch:   serveWatch,
			Rebuild: func() error { return runBuild(cfg) },
		})
	},
}

var initVCSIgnore string

var initCmd = &cobra.Command{
	Use:   "init [destination]",
	Short: "Initialize a new wiki",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destination := "."
		if len(args) > 0 {
			destination = args[0]
		}
		destination, err := filepath.Abs(destination)
		if err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid destination")
		}
		return initWiki(destination, initVCSIgnore, cmd)
	},
}

func initWiki(destination, vcs string, cmd *cobra.Command) error {
	if entries, err := afero.ReadDir(appFs, destination); err == nil && len(entries) > 0 {
		return errors.Newf(errors.ErrWikiExists, "destination %s is not empty", destination)
	}

	for _, dir := range []string{".templates", "static", "wiki"} {
		if err := appFs.MkdirAll(filepath.Join(destination, dir), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}

	configPath := filepath.Join(destination, paths.ConfigFileName)
	if err := afero.WriteFile(appFs, configPath, []byte("{}\n"), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", configPath)
	}

	if vcs != "" {
		cfg, err := config.Load(destination)
		if err != nil {
			return err
		}
		if _, err := vcsignore.Write(appFs, cfg, vcs, "", cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	log.Info().Str("path", destination).Msg("wiki initialized")
	return nil
}

func init() {
	vcsIgnoreCmd.Flags().StringVarP(&vcsIgnoreOutput, "output", "o", "",
		"Write output to the specified filename, relative to the wiki root ('-' for stdout)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen on specified port (default from config)")
	serveCmd.Flags().StringVarP(&serveBind, "interface", "i", "", "Bind to specified interface (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Rebuild the wiki when sources change")
	initCmd.Flags().StringVar(&initVCSIgnore, "vcs-ignore", "", "Create an ignore file for the specified VCS (hg, git, cvs, bzr)")
}
