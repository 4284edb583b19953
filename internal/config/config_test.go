package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memLoader(files map[string]string, env map[string]string) *Loader {
	return &Loader{
		readFile: func(path string) ([]byte, error) {
			data, ok := files[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(data), nil
		},
		lookupEnv: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1000, cfg.History.MaxEntries)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce.Std())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := memLoader(nil, nil).Load("/nope.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	l := memLoader(map[string]string{"/markfmt.toml": `
[logging]
level = "debug"
format = "json"

[history]
max_entries = 50

[watch]
debounce = "1s"
`}, nil)

	cfg, err := l.Load("/markfmt.toml")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.Equal(t, time.Second, cfg.Watch.Debounce.Std())
	// Untouched sections keep their defaults.
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	l := memLoader(
		map[string]string{"/markfmt.toml": "[output]\nformat = \"text\"\n"},
		map[string]string{
			"MARKFMT_OUTPUT":              "json",
			"MARKFMT_HISTORY_MAX_ENTRIES": "7",
			"MARKFMT_WATCH_DEBOUNCE":      "50ms",
		},
	)

	cfg, err := l.Load("/markfmt.toml")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 7, cfg.History.MaxEntries)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce.Std())
}

func TestLoadBadEnv(t *testing.T) {
	l := memLoader(nil, map[string]string{"MARKFMT_HISTORY_MAX_ENTRIES": "lots"})

	_, err := l.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARKFMT_HISTORY_MAX_ENTRIES")
}

func TestLoadParseError(t *testing.T) {
	l := memLoader(map[string]string{"/bad.toml": "[logging]\nlevel = \n"}, nil)

	_, err := l.Load("/bad.toml")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/bad.toml", perr.Path)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Error(), "line 2")
}

func TestLoadInvalidValue(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[output]\nformat = \"yaml\"\n"))
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = LoadFromReader(strings.NewReader("[history]\nmax_entries = 0\n"))
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestNewLoaderReadsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markfmt.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\ncolor = \"never\"\n"), 0o644))
	t.Setenv("MARKFMT_LOG_LEVEL", "warn")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
