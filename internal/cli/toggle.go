package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/markfmt/internal/format"
)

// ToggleCmd toggles a style on a selection and prints or writes the result.
type ToggleCmd struct {
	File  string   `arg:"" name:"file" help:"Document to edit" type:"existingfile"`
	Style string   `arg:"" name:"style" help:"bold, italic, underline, strikethrough, h1, h2, h3 or bullet"`
	From  Position `name:"from" help:"Selection start as line:column" required:""`
	To    Position `name:"to" help:"Selection end as line:column (default: caret at --from)"`
	Write bool     `name:"write" short:"w" help:"Write the result back to the file, keeping CRLF line endings"`
}

func (c *ToggleCmd) Run(ctx context.Context, app *App) error {
	t, err := format.ParseType(c.Style)
	if err != nil {
		return err
	}

	e, err := app.open(c.File, c.From, c.To)
	if err != nil {
		return err
	}

	res, err := e.Toggle(t)
	if err != nil {
		return err
	}
	if res.Refused() {
		return &RefusalError{Type: t, Refusal: res.Refusal}
	}

	text := e.Text()
	if c.Write {
		info, err := os.Stat(c.File)
		if err != nil {
			return err
		}
		orig, err := os.ReadFile(c.File)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.File, []byte(withLineEndings(text, orig)), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", c.File, err)
		}
		app.Log.Info("file updated",
			zap.String("file", c.File),
			zap.Stringer("style", t),
			zap.Int("edits", len(res.Transaction.Edits)),
		)
	}

	sel := viewSelection(e.Snapshot(), e.Selection())
	return app.Out.Toggled(c.File, t, len(res.Transaction.Edits), sel, e.State(), text, c.Write)
}

// withLineEndings converts the LF-only text back to CRLF when the original
// file used CRLF line breaks.
func withLineEndings(text string, orig []byte) string {
	if !bytes.Contains(orig, []byte("\r\n")) {
		return text
	}
	return strings.ReplaceAll(text, "\n", "\r\n")
}
