package cli

import "context"

// StateCmd prints the format state of a selection.
type StateCmd struct {
	File string   `arg:"" name:"file" help:"Document to inspect" type:"existingfile"`
	From Position `name:"from" help:"Selection start as line:column" required:""`
	To   Position `name:"to" help:"Selection end as line:column (default: caret at --from)"`
}

func (c *StateCmd) Run(ctx context.Context, app *App) error {
	e, err := app.open(c.File, c.From, c.To)
	if err != nil {
		return err
	}
	return app.Out.State(c.File, viewSelection(e.Snapshot(), e.Selection()), e.State())
}
