package format

// LineContext is the set of lines touched by a range, derived fresh for each
// call.
type LineContext struct {
	// Lines are the touched lines in document order. Never empty.
	Lines []Line

	// SingleLine is true when exactly one line is touched.
	SingleLine bool

	// SelectedText is the document text in the range.
	SelectedText string
}

// First returns the first touched line.
func (c LineContext) First() Line {
	return c.Lines[0]
}

// Context computes the lines overlapping [from, to). A caret (from == to)
// touches the line it sits in. A non-empty range that ends exactly at the
// start of a line does not touch that line.
func Context(doc Document, from, to ByteOffset) LineContext {
	from, to = clampRange(doc, from, to)

	first := doc.LineAt(from)
	last := doc.LineAt(to)
	if to > from && last.Number > first.Number && to == last.From {
		last = doc.Line(last.Number - 1)
	}

	lines := make([]Line, 0, last.Number-first.Number+1)
	lines = append(lines, first)
	for n := first.Number + 1; n <= last.Number; n++ {
		lines = append(lines, doc.Line(n))
	}

	return LineContext{
		Lines:        lines,
		SingleLine:   len(lines) == 1,
		SelectedText: doc.Slice(from, to),
	}
}

// clampRange orders the range and keeps it within document bounds.
func clampRange(doc Document, from, to ByteOffset) (ByteOffset, ByteOffset) {
	if from > to {
		from, to = to, from
	}
	n := doc.Len()
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from > n {
		from = n
	}
	if to < from {
		to = from
	}
	return from, to
}

// ResolveRange derives the format state of the lines touched by [from, to).
//
// Inline styles are active if any touched line carries them. Headings are
// active only when a single line is touched and it carries that exact level.
// Bullet is active only if every touched line is a bullet item.
//
// ResolveRange does not distinguish a caret from a zero-length selection;
// use Resolve to get caret semantics for inline styles.
func ResolveRange(doc Document, from, to ByteOffset) State {
	return resolveContext(Context(doc, from, to))
}

// Resolve derives the format state for a selection. When the selection is
// empty (a bare caret) inline styles are reported inactive, since there is
// no span they could apply to.
func Resolve(doc Document, sel Selection) State {
	st := ResolveRange(doc, sel.Start(), sel.End())
	if sel.IsEmpty() {
		for _, t := range Types {
			if t.IsInline() {
				st.Set(t, false)
			}
		}
	}
	return st
}

func resolveContext(ctx LineContext) State {
	var st State
	for _, t := range Types {
		switch {
		case t.IsInline():
			st.Set(t, anyLine(ctx.Lines, t))
		case t.IsHeading():
			st.Set(t, ctx.SingleLine && allLines(ctx.Lines, t))
		default:
			st.Set(t, allLines(ctx.Lines, t))
		}
	}
	return st
}

func anyLine(lines []Line, t Type) bool {
	for _, l := range lines {
		if Detect(t, l.Text) {
			return true
		}
	}
	return false
}

func allLines(lines []Line, t Type) bool {
	for _, l := range lines {
		if !Detect(t, l.Text) {
			return false
		}
	}
	return len(lines) > 0
}
