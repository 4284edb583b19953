// Package cli implements the markfmt command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/dshills/markfmt/internal/config"
	"github.com/dshills/markfmt/internal/engine"
	"github.com/dshills/markfmt/internal/format"
	"github.com/dshills/markfmt/internal/logging"
)

// Version is set at build time.
var Version = "dev"

// Exit codes.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitUsage   = 2
	ExitRefused = 3
)

// RootFlags are accepted by every command.
type RootFlags struct {
	Config   string `name:"config" short:"c" help:"Config file (default: user config dir/markfmt/config.toml)" type:"path"`
	JSON     bool   `name:"json" help:"Write JSON output"`
	Color    string `name:"color" help:"Color output: auto, always or never"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn or error"`
}

// CLI is the root command.
type CLI struct {
	RootFlags `embed:""`

	Version kong.VersionFlag `name:"version" help:"Print version and exit"`

	State  StateCmd  `cmd:"" help:"Print the format state of a selection"`
	Toggle ToggleCmd `cmd:"" help:"Toggle a format style on a selection"`
	Watch  WatchCmd  `cmd:"" help:"Print the format state whenever the file changes"`
}

// App carries the resolved configuration into commands.
type App struct {
	Config config.Config
	Log    *logging.Logger
	Out    *Output
}

// RefusalError reports a toggle that is not applicable to the selection.
type RefusalError struct {
	Type    format.Type
	Refusal format.Refusal
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("cannot toggle %s: %s", e.Type, e.Refusal)
}

type exitRequest int

// Execute parses args, runs the selected command and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			code = int(e)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("markfmt"),
		kong.Description("Context-aware Markdown-like formatting toggles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitRequest(c)) }),
		kong.Vars{"version": Version},
	)
	if err != nil {
		fmt.Fprintf(stderr, "markfmt: %v\n", err)
		return ExitError
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "markfmt: %v\n", err)
		return ExitUsage
	}

	app, err := newApp(cli.RootFlags, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "markfmt: %v\n", err)
		return ExitError
	}
	defer func() { _ = app.Log.Sync() }()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(app)

	if err := kctx.Run(); err != nil {
		fmt.Fprintf(stderr, "markfmt: %v\n", err)
		var refusal *RefusalError
		if errors.As(err, &refusal) {
			return ExitRefused
		}
		return ExitError
	}
	return ExitOK
}

func newApp(flags RootFlags, stdout, stderr io.Writer) (*App, error) {
	path := flags.Config
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "markfmt", "config.toml")
		}
	}

	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		return nil, err
	}
	if flags.JSON {
		cfg.Output.Format = "json"
	}
	if flags.Color != "" {
		cfg.Output.Color = flags.Color
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.NewLogger(logging.LoggerConfig{
		Level:  logging.ParseLogLevel(cfg.Logging.Level),
		Format: logging.Format(cfg.Logging.Format),
		Output: stderr,
		Name:   "markfmt",
	})

	return &App{
		Config: cfg,
		Log:    log,
		Out:    NewOutput(stdout, cfg.Output.Color, cfg.Output.Format == "json"),
	}, nil
}

// open loads path into an engine with the selection from..to. An unset to
// yields a caret at from.
func (a *App) open(path string, from, to Position) (*engine.Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e, err := engine.NewFromReader(f,
		engine.WithMaxUndoEntries(a.Config.History.MaxEntries),
		engine.WithLogger(a.Log),
	)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	snap := e.Snapshot()
	anchor, err := from.Offset(snap)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	head := anchor
	if !to.IsZero() {
		if head, err = to.Offset(snap); err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
	}

	e.SetSelection(format.NewSelection(anchor, head))
	return e, nil
}
