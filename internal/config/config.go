// Package config loads settings for the lox command.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// EnvVar names the environment variable that may hold a config file path.
const EnvVar = "LOX_CONFIG"

// DefaultFile is the config file looked up in the home directory.
const DefaultFile = ".loxrc.yaml"

// Config holds settings for the REPL and logging.
type Config struct {
	// Prompt is printed before each REPL entry.
	Prompt string `yaml:"prompt"`
	// ContinuePrompt is printed before each continuation line of an
	// incomplete entry.
	ContinuePrompt string `yaml:"continue_prompt"`
	// HistoryFile is where line editing history is kept. A leading ~ is the
	// home directory.
	HistoryFile string `yaml:"history_file"`
	// History enables reading and writing HistoryFile.
	History bool `yaml:"history"`
	// Banner enables the greeting printed when the REPL starts.
	Banner bool `yaml:"banner"`
	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`

	// Path is the file the config was loaded from, if any.
	Path string `yaml:"-"`
}

// Default returns the settings used when there is no config file.
func Default() *Config {
	return &Config{
		Prompt:         "> ",
		ContinuePrompt: "... ",
		HistoryFile:    "~/.lox_history",
		History:        true,
		Banner:         true,
		LogLevel:       "warn",
	}
}

// Find loads the config file named by path, or by $LOX_CONFIG if path is
// empty, or else ~/.loxrc.yaml. Only the last is allowed to not exist, in
// which case Find returns the defaults.
func Find(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path != "" {
		return Load(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(filepath.Join(home, DefaultFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads a config file. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode reads config YAML from r. Unknown keys are an error.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", name)
}

// HistoryPath returns HistoryFile with a leading ~ expanded. It returns the
// empty string if history is disabled or the path cannot be determined.
func (c *Config) HistoryPath() string {
	if !c.History || c.HistoryFile == "" {
		return ""
	}
	p := c.HistoryFile
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		p = filepath.Join(home, p[1:])
	}
	return p
}
