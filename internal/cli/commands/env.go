package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kondannyobhikkhu/tipitaka/internal/config"
	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
	"github.com/kondannyobhikkhu/tipitaka/internal/pane"
)

// Flags are the persistent flags shared by every command.
type Flags struct {
	Config   string
	Metadata string
	LogFile  string
	LogLevel string
}

// Bind registers the flags on cmd as persistent flags.
func (f *Flags) Bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.Config, "config", "", "Path to config file (default ~/.config/tipitaka/config.toml)")
	pf.StringVar(&f.Metadata, "metadata", "", "Path to the corpus metadata file (overrides config and "+config.MetadataEnv+")")
	pf.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Env is what a command runs against: the effective configuration and the
// edition set derived from it.
type Env struct {
	Config   *config.Config
	Editions pane.Editions

	logFile *os.File
}

// Setup loads the configuration, applies flag overrides and installs the
// default logger. Interactive sessions log only errors unless a log file is
// configured, so the terminal display is not disturbed.
func (f *Flags) Setup(interactive bool) (*Env, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if f.Metadata != "" {
		cfg.Corpus.Metadata = f.Metadata
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	editions, err := pane.NewEditions(cfg.Editions)
	if err != nil {
		return nil, err
	}

	env := &Env{Config: cfg, Editions: editions}
	if err := env.setupLogging(interactive); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Env) setupLogging(interactive bool) error {
	level, err := config.ParseLevel(e.Config.Log.Level)
	if err != nil {
		return err
	}
	var out io.Writer = os.Stderr
	if e.Config.Log.File != "" {
		file, err := os.OpenFile(e.Config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		e.logFile = file
		out = file
	} else if interactive {
		// Suppress logs in TUI mode to avoid interfering with display
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	if e.Config.Path != "" {
		slog.Debug("config loaded", "path", e.Config.Path)
	}
	return nil
}

// Store returns the metadata store for the configured corpus.
func (e *Env) Store() *metadata.Store {
	return metadata.NewStore(e.Config.Corpus.Metadata, e.Config.Corpus.Root)
}

// Close releases the log file, if any.
func (e *Env) Close() error {
	if e.logFile == nil {
		return nil
	}
	return e.logFile.Close()
}
