package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/tidwall/sjson"

	"github.com/dshills/markfmt/internal/engine/buffer"
	"github.com/dshills/markfmt/internal/format"
)

// Output renders command results as colored text or JSON.
type Output struct {
	w    io.Writer
	term *termenv.Output
	json bool
}

// NewOutput creates an output for w. color is "auto", "always" or
// "never"; auto enables color only on terminals.
func NewOutput(w io.Writer, color string, json bool) *Output {
	var opts []termenv.OutputOption
	switch color {
	case "always":
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case "never":
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Output{w: w, term: termenv.NewOutput(w, opts...), json: json}
}

// selectionView is a selection expressed in both offsets and positions.
type selectionView struct {
	From, To       buffer.ByteOffset
	FromPos, ToPos Position
}

func viewSelection(snap *buffer.Snapshot, sel format.Selection) selectionView {
	return selectionView{
		From:    sel.Start(),
		To:      sel.End(),
		FromPos: PositionOf(snap, sel.Start()),
		ToPos:   PositionOf(snap, sel.End()),
	}
}

func (v selectionView) String() string {
	if v.From == v.To {
		return v.FromPos.String()
	}
	return v.FromPos.String() + "-" + v.ToPos.String()
}

// State prints the resolved format state of a selection.
func (o *Output) State(file string, sel selectionView, st format.State) error {
	if o.json {
		js, err := stateJSON(`{}`, file, sel, st)
		if err != nil {
			return err
		}
		return o.line(js)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", file, sel)
	for _, t := range format.Types {
		fmt.Fprintf(&b, "  %-14s %s\n", t, o.flag(st.Active(t)))
	}
	_, err := io.WriteString(o.w, b.String())
	return err
}

// Toggled prints the outcome of an applied toggle. When the file was not
// written the new document text is printed instead.
func (o *Output) Toggled(file string, t format.Type, edits int, sel selectionView, st format.State, text string, written bool) error {
	if o.json {
		js, err := stateJSON(`{}`, file, sel, st)
		if err != nil {
			return err
		}
		for _, kv := range []struct {
			path  string
			value any
		}{
			{"style", t.String()},
			{"edits", edits},
			{"written", written},
		} {
			if js, err = sjson.Set(js, kv.path, kv.value); err != nil {
				return err
			}
		}
		if !written {
			if js, err = sjson.Set(js, "text", text); err != nil {
				return err
			}
		}
		return o.line(js)
	}

	if !written {
		_, err := io.WriteString(o.w, text)
		return err
	}
	return o.line(fmt.Sprintf("%s %s %s (%d edits) -> %s",
		o.term.String("toggled").Bold(), o.styleName(t), file, edits, st))
}

func stateJSON(js, file string, sel selectionView, st format.State) (string, error) {
	var err error
	set := func(path string, value any) {
		if err == nil {
			js, err = sjson.Set(js, path, value)
		}
	}

	set("file", file)
	set("selection.from", sel.From)
	set("selection.to", sel.To)
	set("selection.start", sel.FromPos.String())
	set("selection.end", sel.ToPos.String())
	for _, t := range format.Types {
		set("state."+t.String(), st.Active(t))
	}
	if err == nil {
		js, err = sjson.SetRaw(js, "active", "[]")
	}
	for _, t := range st.ActiveTypes() {
		set("active.-1", t.String())
	}
	return js, err
}

func (o *Output) flag(on bool) string {
	if on {
		return o.term.String("on").Foreground(o.term.Color("2")).Bold().String()
	}
	return o.term.String("off").Faint().String()
}

func (o *Output) styleName(t format.Type) string {
	return o.term.String(t.String()).Foreground(o.term.Color("6")).String()
}

func (o *Output) line(s string) error {
	_, err := fmt.Fprintln(o.w, s)
	return err
}
