// Package config loads markfmt settings from a TOML file and MARKFMT_*
// environment variables, layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MARKFMT_"

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value outside its domain.
	ErrInvalidValue = errors.New("invalid setting value")
)

// Config holds all settings.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	History HistoryConfig `toml:"history"`
	Output  OutputConfig  `toml:"output"`
	Watch   WatchConfig   `toml:"watch"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// HistoryConfig configures the undo stack.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `toml:"color"`
	// Format is "text" or "json".
	Format string `toml:"format"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		History: HistoryConfig{MaxEntries: 1000},
		Output:  OutputConfig{Color: "auto", Format: "text"},
		Watch:   WatchConfig{Debounce: Duration(200 * time.Millisecond)},
	}
}

// Validate checks every setting against its allowed values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q: %w", c.Logging.Level, ErrInvalidValue)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidValue)
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries %d: %w", c.History.MaxEntries, ErrInvalidValue)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color %q: %w", c.Output.Color, ErrInvalidValue)
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("output.format %q: %w", c.Output.Format, ErrInvalidValue)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce %s: %w", c.Watch.Debounce.Std(), ErrInvalidValue)
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader reads configuration layers.
type Loader struct {
	readFile  func(string) ([]byte, error)
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a loader that reads the real file system and
// environment.
func NewLoader() *Loader {
	return &Loader{readFile: os.ReadFile, lookupEnv: os.LookupEnv}
}

// Load returns defaults overlaid with the file at path (if non-empty and
// present) and then the environment. A missing file is not an error.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := l.readFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFromReader decodes a TOML document over the defaults without
// consulting the environment.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := decode("<reader>", data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(source string, data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(*Config, string) error{
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
		c.Logging.Format = v
		return nil
	},
	EnvPrefix + "HISTORY_MAX_ENTRIES": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.History.MaxEntries = n
		return nil
	},
	EnvPrefix + "COLOR": func(c *Config, v string) error {
		c.Output.Color = v
		return nil
	},
	EnvPrefix + "OUTPUT": func(c *Config, v string) error {
		c.Output.Format = v
		return nil
	},
	EnvPrefix + "WATCH_DEBOUNCE": func(c *Config, v string) error {
		return c.Watch.Debounce.UnmarshalText([]byte(v))
	},
}

func (l *Loader) applyEnv(cfg *Config) error {
	for name, set := range envSetters {
		v, ok := l.lookupEnv(name)
		if !ok {
			continue
		}
		if err := set(cfg, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s=%q: %w", name, v, err)
		}
	}
	return nil
}
