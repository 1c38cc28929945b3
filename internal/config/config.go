// Package config loads the tipitaka TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// MetadataEnv overrides corpus.metadata when set.
const MetadataEnv = "TIPITAKA_METADATA"

type Config struct {
	Corpus   CorpusConfig      `toml:"corpus"`
	Editions map[string]string `toml:"editions"`
	Reader   ReaderConfig      `toml:"reader"`
	Log      LogConfig         `toml:"log"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

type CorpusConfig struct {
	Metadata string `toml:"metadata"`
	Root     string `toml:"root"`
}

type ReaderConfig struct {
	Pair           string `toml:"pair"`
	RenderMarkdown bool   `toml:"render_markdown"`
	Watch          bool   `toml:"watch"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

const DefaultConfigToml = `# tipitaka configuration

[corpus]
# Index of collections, divisions, subdivisions and documents (.json or .yaml).
metadata = "~/.local/share/tipitaka/metadata.json"
# Relative document paths are resolved against root. Defaults to the
# directory holding the metadata file.
root = ""

[editions]
e1 = "_sc_engl"
e2 = "_bb_engl"
p1 = "_sc_pali"
p2 = "_cst_pali"

[reader]
pair = "e1,p1"
render_markdown = false
watch = false

[log]
level = "info"
file = ""
`

func defaultConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			Metadata: "~/.local/share/tipitaka/metadata.json",
		},
		Editions: map[string]string{
			"e1": "_sc_engl",
			"e2": "_bb_engl",
			"p1": "_sc_pali",
			"p2": "_cst_pali",
		},
		Reader: ReaderConfig{Pair: "e1,p1"},
		Log:    LogConfig{Level: "info"},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := defaultConfig()
	cfg.expand()
	return &cfg
}

// Load reads path, or the first existing candidate when path is empty.
// A missing file yields the defaults; the environment override is applied
// last.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		for _, c := range candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	if path != "" {
		path = expandHome(path)
		if _, err := os.Stat(path); err == nil {
			var file Config
			meta, err := toml.DecodeFile(path, &file)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				slog.Warn("unknown config keys", "path", path, "keys", undecoded)
			}
			cfg.merge(file, meta)
			cfg.Path = path
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if env := strings.TrimSpace(os.Getenv(MetadataEnv)); env != "" {
		cfg.Corpus.Metadata = env
	}
	cfg.expand()
	return &cfg, nil
}

func candidates() []string {
	return []string{
		expandHome("~/.config/tipitaka/config.toml"),
		"./tipitaka.toml",
	}
}

// merge copies the keys present in the decoded file over the defaults. An
// [editions] table replaces the default editions entirely.
func (c *Config) merge(file Config, meta toml.MetaData) {
	if meta.IsDefined("corpus", "metadata") {
		c.Corpus.Metadata = file.Corpus.Metadata
	}
	if meta.IsDefined("corpus", "root") {
		c.Corpus.Root = file.Corpus.Root
	}
	if meta.IsDefined("editions") {
		c.Editions = file.Editions
	}
	if meta.IsDefined("reader", "pair") {
		c.Reader.Pair = file.Reader.Pair
	}
	if meta.IsDefined("reader", "render_markdown") {
		c.Reader.RenderMarkdown = file.Reader.RenderMarkdown
	}
	if meta.IsDefined("reader", "watch") {
		c.Reader.Watch = file.Reader.Watch
	}
	if meta.IsDefined("log", "level") {
		c.Log.Level = file.Log.Level
	}
	if meta.IsDefined("log", "file") {
		c.Log.File = file.Log.File
	}
}

func (c *Config) expand() {
	c.Corpus.Metadata = expandHome(c.Corpus.Metadata)
	c.Corpus.Root = expandHome(c.Corpus.Root)
	c.Log.File = expandHome(c.Log.File)
}

// Validate checks the values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.Corpus.Metadata == "" {
		return errors.New("corpus.metadata is required")
	}
	if len(c.Editions) == 0 {
		return errors.New("at least one edition is required")
	}
	seen := make(map[string]string, len(c.Editions))
	for code, suffix := range c.Editions {
		if code == "" || suffix == "" {
			return fmt.Errorf("edition %q: code and suffix are required", code)
		}
		if other, dup := seen[suffix]; dup {
			return fmt.Errorf("editions %q and %q share suffix %q", other, code, suffix)
		}
		seen[suffix] = code
	}
	if c.Reader.Pair != "" {
		left, right, ok := strings.Cut(c.Reader.Pair, ",")
		if !ok {
			return fmt.Errorf("reader.pair %q must look like left,right", c.Reader.Pair)
		}
		for _, code := range []string{strings.TrimSpace(left), strings.TrimSpace(right)} {
			if _, known := c.Editions[code]; !known {
				return fmt.Errorf("reader.pair names unknown edition %q", code)
			}
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Encode writes the effective configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
