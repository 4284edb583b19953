package cli

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/markfmt/internal/watcher"
)

// WatchCmd re-resolves the format state whenever the file changes.
type WatchCmd struct {
	File     string        `arg:"" name:"file" help:"Document to watch" type:"existingfile"`
	From     Position      `name:"from" help:"Selection start as line:column" required:""`
	To       Position      `name:"to" help:"Selection end as line:column (default: caret at --from)"`
	Debounce time.Duration `name:"debounce" help:"Delay after the last change (default from config)"`
}

func (c *WatchCmd) Run(ctx context.Context, app *App) error {
	log := app.Log.WithComponent("watch").WithField("file", c.File)

	delay := c.Debounce
	if delay <= 0 {
		delay = app.Config.Watch.Debounce.Std()
	}

	w, err := watcher.New(delay)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(c.File); err != nil {
		return err
	}

	// The initial state is required; later failures are transient while
	// the file is being edited.
	if err := c.print(app); err != nil {
		return err
	}
	log.Debug("watching", zap.Duration("debounce", delay))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			log.Debug("file changed", zap.Stringer("op", ev.Op), zap.Time("at", ev.Timestamp))
			if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
				log.Debug("file moved away", zap.Stringer("op", ev.Op))
			}
			if err := c.print(app); err != nil {
				log.Warn("cannot resolve state", zap.Error(err))
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}

func (c *WatchCmd) print(app *App) error {
	e, err := app.open(c.File, c.From, c.To)
	if err != nil {
		return err
	}
	return app.Out.State(c.File, viewSelection(e.Snapshot(), e.Selection()), e.State())
}
