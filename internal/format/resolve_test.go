package format

import (
	"testing"

	"github.com/dshills/markfmt/internal/engine/buffer"
)

func doc(text string) Document {
	return buffer.NewBufferFromString(text).Snapshot()
}

func TestContextLines(t *testing.T) {
	d := doc("abc\ndefgh\nij")

	tests := []struct {
		name     string
		from, to ByteOffset
		lines    []int
		selected string
	}{
		{"caret", 5, 5, []int{2}, ""},
		{"caret at line end", 3, 3, []int{1}, ""},
		{"within line", 4, 7, []int{2}, "def"},
		{"across lines", 1, 6, []int{1, 2}, "bc\nde"},
		{"ends at line start", 0, 4, []int{1}, "abc\n"},
		{"whole document", 0, 12, []int{1, 2, 3}, "abc\ndefgh\nij"},
		{"reversed", 6, 1, []int{1, 2}, "bc\nde"},
		{"out of bounds", -4, 99, []int{1, 2, 3}, "abc\ndefgh\nij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Context(d, tt.from, tt.to)
			if len(ctx.Lines) != len(tt.lines) {
				t.Fatalf("got %d lines, want %v", len(ctx.Lines), tt.lines)
			}
			for i, n := range tt.lines {
				if ctx.Lines[i].Number != n {
					t.Errorf("line %d = %d, want %d", i, ctx.Lines[i].Number, n)
				}
			}
			if ctx.SingleLine != (len(tt.lines) == 1) {
				t.Errorf("SingleLine = %v", ctx.SingleLine)
			}
			if ctx.SelectedText != tt.selected {
				t.Errorf("SelectedText = %q, want %q", ctx.SelectedText, tt.selected)
			}
		})
	}
}

func TestResolveInlineAny(t *testing.T) {
	d := doc("<b>bold line</b>\nplain line")

	st := ResolveRange(d, 2, 20)
	if !st.Bold {
		t.Error("bold should be active when any touched line is bold")
	}
	if st.Italic || st.Underline || st.Strikethrough {
		t.Errorf("unexpected inline flags %v", st)
	}
}

func TestResolveBulletAll(t *testing.T) {
	d := doc("- first\nsecond\n- third")

	if ResolveRange(d, 0, 12).Bullet {
		t.Error("bullet should be inactive when only some lines are bullets")
	}
	if !ResolveRange(d, 0, 3).Bullet {
		t.Error("bullet should be active on a single bullet line")
	}
	if !ResolveRange(d, 16, 20).Bullet {
		t.Error("bullet should be active on the third line")
	}
}

func TestResolveMultiLineHeading(t *testing.T) {
	d := doc("# one\n# two")

	st := ResolveRange(d, 0, 9)
	if st.H1 || st.H2 || st.H3 {
		t.Errorf("headings must be inactive across lines, got %v", st)
	}

	if !ResolveRange(d, 2, 2).H1 {
		t.Error("h1 should be active for a caret on a heading line")
	}
}

func TestResolveHeadingLevels(t *testing.T) {
	tests := []struct {
		text  string
		level int
	}{
		{"# one", 1},
		{"## two", 2},
		{"### three", 3},
		{"#### four", 0},
		{"plain", 0},
	}

	for _, tt := range tests {
		if got := ResolveRange(doc(tt.text), 0, 0).Heading(); got != tt.level {
			t.Errorf("%q resolved to level %d, want %d", tt.text, got, tt.level)
		}
	}
}

func TestResolveCaretHidesInline(t *testing.T) {
	d := doc("<b>Hello</b>")

	if !ResolveRange(d, 3, 3).Bold {
		t.Error("ResolveRange reports the line state for a zero-length range")
	}
	if Resolve(d, Caret(3)).Bold {
		t.Error("Resolve must report inline styles inactive on a caret")
	}
	if !Resolve(d, NewSelection(3, 8)).Bold {
		t.Error("Resolve should report bold for a selection in a bold line")
	}
}

func TestResolveCaretKeepsBlock(t *testing.T) {
	st := Resolve(doc("- ## not a heading"), Caret(0))
	if !st.Bullet || st.H2 {
		t.Errorf("unexpected state %v", st)
	}
}

func TestStateString(t *testing.T) {
	var st State
	if st.String() != "plain" {
		t.Errorf("empty state = %q", st.String())
	}

	st.Set(Bold, true)
	st.Set(H2, true)
	if st.String() != "bold+h2" {
		t.Errorf("unexpected %q", st.String())
	}
	if st.Heading() != 2 {
		t.Errorf("Heading() = %d", st.Heading())
	}

	st.Set(Bold, false)
	if st.Active(Bold) {
		t.Error("bold should be cleared")
	}
}
