package format

import (
	"strings"

	"github.com/dshills/markfmt/internal/engine/buffer"
	"github.com/dshills/markfmt/internal/engine/cursor"
)

// Refusal explains why a toggle is not applicable to a selection.
// A refusal is not an error; callers ignore the request or disable the
// control that would issue it.
type Refusal uint8

const (
	RefusalNone             Refusal = iota // Toggle is allowed
	RefusalNoSelection                     // Inline style requested on a caret or blank text
	RefusalMultiLineHeading                // Heading requested across several lines
	RefusalUnknownType                     // Style is not registered
)

// String returns a short description of the refusal.
func (r Refusal) String() string {
	switch r {
	case RefusalNone:
		return "none"
	case RefusalNoSelection:
		return "inline formatting needs a selection"
	case RefusalMultiLineHeading:
		return "headings apply to a single line"
	case RefusalUnknownType:
		return "unknown format type"
	default:
		return "unknown"
	}
}

// Transaction is a set of edits that must be applied atomically, as a single
// undo step.
type Transaction struct {
	// Edits are sorted by ascending offset and never overlap. Offsets refer
	// to the document before any edit is applied.
	Edits []Edit

	// Selection is the selection to set after applying the edits, in
	// post-edit offsets. Nil means the owner keeps its selection, mapped
	// through the edits.
	Selection *Selection
}

// Result is the outcome of a toggle request.
type Result struct {
	Type        Type
	Refusal     Refusal
	Transaction Transaction
}

// Refused reports whether the toggle was not applicable.
func (r Result) Refused() bool {
	return r.Refusal != RefusalNone
}

// Check reports whether toggling t is legal for the selection shape, using
// the same rules as Toggle.
func Check(doc Document, sel Selection, t Type) Refusal {
	if _, ok := Lookup(t); !ok {
		return RefusalUnknownType
	}
	from, to := clampRange(doc, sel.Start(), sel.End())
	return check(Context(doc, from, to), t)
}

func check(ctx LineContext, t Type) Refusal {
	if t.IsInline() && strings.TrimSpace(ctx.SelectedText) == "" {
		return RefusalNoSelection
	}
	if t.IsHeading() && !ctx.SingleLine {
		return RefusalMultiLineHeading
	}
	return RefusalNone
}

// Toggle computes the edits that toggle style t for the selection.
//
// With a bare caret only block styles apply, to the whole current line, and
// the selection is left to the caller. With a selection, inline styles wrap
// or unwrap exactly the selected text (even across lines) and block styles
// apply to whole lines; bullets on a multi-line selection toggle each line
// independently. Headings are refused on multi-line selections, and inline
// styles on a selection holding only whitespace.
//
// After a block toggle on a selection the new selection spans the whole
// rewritten lines, starting at the first line's start rather than at the
// original selection start.
//
// Toggle never mutates doc. After applying the transaction callers re-resolve
// the state themselves.
func Toggle(doc Document, sel Selection, t Type) Result {
	res := Result{Type: t}

	st, ok := Lookup(t)
	if !ok {
		res.Refusal = RefusalUnknownType
		return res
	}

	from, to := clampRange(doc, sel.Start(), sel.End())
	ctx := Context(doc, from, to)
	if r := check(ctx, t); r != RefusalNone {
		res.Refusal = r
		return res
	}

	switch {
	case from == to:
		line := ctx.First()
		res.Transaction = Transaction{
			Edits: []Edit{buffer.NewEdit(line.Range(), st.Toggle(line.Text))},
		}
	case t.IsInline():
		res.Transaction = replaceAndSelect(buffer.NewRange(from, to), st.Toggle(ctx.SelectedText))
	case ctx.SingleLine:
		line := ctx.First()
		res.Transaction = replaceAndSelect(line.Range(), st.Toggle(line.Text))
	default:
		res.Transaction = toggleLines(ctx.Lines, st)
	}
	return res
}

// replaceAndSelect replaces r and selects the replacement.
func replaceAndSelect(r buffer.Range, text string) Transaction {
	sel := cursor.NewSelection(r.Start, r.Start+ByteOffset(len(text)))
	return Transaction{
		Edits:     []Edit{buffer.NewEdit(r, text)},
		Selection: &sel,
	}
}

// toggleLines toggles st on every line independently and selects the whole
// affected block afterwards.
func toggleLines(lines []Line, st Style) Transaction {
	edits := make([]Edit, 0, len(lines))
	var delta ByteOffset
	for _, l := range lines {
		text := st.Toggle(l.Text)
		edits = append(edits, buffer.NewEdit(l.Range(), text))
		delta += ByteOffset(len(text)) - l.Len()
	}

	first, last := lines[0], lines[len(lines)-1]
	sel := cursor.NewSelection(first.From, last.To+delta)
	return Transaction{Edits: edits, Selection: &sel}
}
