// Package config loads the wiki configuration: built-in defaults,
// overridden by wikimill.yaml at the wiki root, overridden by
// WIKIMILL_-prefixed environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/paths"
)

// Listing generation modes.
const (
	ListingAlways    = "always"
	ListingSometimes = "sometimes"
	ListingNever     = "never"
)

// ServerConfig holds the serve command settings.
type ServerConfig struct {
	Bind string `koanf:"bind" yaml:"bind"`
	Port int    `koanf:"port" yaml:"port"`
}

// Config is the resolved wiki configuration. Directory fields are
// absolute after Load.
type Config struct {
	// Root is the wiki root directory (where wikimill.yaml lives).
	Root string `koanf:"-" yaml:"root"`

	WikiDir   string `koanf:"wiki-dir" yaml:"wiki-dir"`
	HTMLDir   string `koanf:"html-dir" yaml:"html-dir"`
	TempDir   string `koanf:"temp-dir" yaml:"temp-dir"`
	StaticDir string `koanf:"static-dir" yaml:"static-dir"`

	// UseDefaultStatic includes the bundled default-assets root in the
	// mirror, between the temp root and the user static root.
	UseDefaultStatic bool `koanf:"use-default-static" yaml:"use-default-static"`

	// CVSExclude enables the extended exclusion table.
	CVSExclude bool `koanf:"cvs-exclude" yaml:"cvs-exclude"`

	// IgnoreFile overrides the default user ignore file location.
	IgnoreFile string `koanf:"ignore-file" yaml:"ignore-file"`

	ListingFilename string `koanf:"listing-filename" yaml:"listing-filename"`

	// GenerateListing is one of always, sometimes, never.
	GenerateListing string `koanf:"generate-listing" yaml:"generate-listing"`

	// DocumentExtensions are the file extensions treated as wiki
	// documents by the builder.
	DocumentExtensions []string `koanf:"document-extensions" yaml:"document-extensions"`

	Server ServerConfig `koanf:"server" yaml:"server"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"wiki-dir":            "wiki",
		"html-dir":            ".html",
		"temp-dir":            ".tmp",
		"static-dir":          "static",
		"use-default-static":  true,
		"cvs-exclude":         true,
		"ignore-file":         "",
		"listing-filename":    "_list.html",
		"generate-listing":    ListingAlways,
		"document-extensions": []string{".md", ".mdown", ".markdown", ".wiki", ".text"},
		"server": map[string]interface{}{
			"bind": "127.0.0.1",
			"port": 8008,
		},
	}
}

// Load reads the configuration for the wiki rooted at root.
// A missing wikimill.yaml is not an error; defaults apply.
func Load(root string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	configPath := filepath.Join(root, paths.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse %s", configPath)
		}
	}

	// WIKIMILL_HTML_DIR -> html-dir, WIKIMILL_SERVER__PORT -> server.port
	err := k.Load(env.Provider("WIKIMILL_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "WIKIMILL_"))
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ReplaceAll(s, "_", "-")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Root, err = filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve wiki root")
	}

	cfg.WikiDir = resolve(cfg.Root, cfg.WikiDir)
	cfg.HTMLDir = resolve(cfg.Root, cfg.HTMLDir)
	cfg.TempDir = resolve(cfg.Root, cfg.TempDir)
	cfg.StaticDir = resolve(cfg.Root, cfg.StaticDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.GenerateListing {
	case ListingAlways, ListingSometimes, ListingNever:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"generate-listing must be always, sometimes or never, got %q", c.GenerateListing)
	}
	if c.ListingFilename == "" {
		return errors.New(errors.ErrConfigValid, "listing-filename must not be empty")
	}
	return nil
}

// IgnoreFilePath returns the configured user ignore file, or the
// platform default when unset.
func (c *Config) IgnoreFilePath() string {
	if c.IgnoreFile != "" {
		return resolve(c.Root, c.IgnoreFile)
	}
	return paths.DefaultIgnoreFile()
}

func resolve(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}
