package history

import (
	"errors"
	"testing"

	"github.com/dshills/markfmt/internal/engine/buffer"
	"github.com/dshills/markfmt/internal/engine/cursor"
)

func insert(offset int, text string) buffer.Edit {
	return buffer.NewEdit(buffer.NewRange(offset, offset), text)
}

func bulletEdits() []buffer.Edit {
	return []buffer.Edit{
		insert(0, "- "),
		insert(9, "- "),
	}
}

func TestRecordCapturesOldText(t *testing.T) {
	buf := buffer.NewBufferFromString("Hello world")
	edits := []buffer.Edit{buffer.NewEdit(buffer.NewRange(6, 11), "<b>world</b>")}

	tx := Record(buf, edits, "bold", cursor.NewSelection(6, 11), cursor.NewSelection(6, 18))

	if len(tx.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(tx.Operations))
	}
	if tx.Operations[0].OldText != "world" {
		t.Errorf("expected old text 'world', got %q", tx.Operations[0].OldText)
	}
	if tx.BytesDelta() != 7 {
		t.Errorf("expected delta 7, got %d", tx.BytesDelta())
	}
}

func TestRecordSortsOperations(t *testing.T) {
	buf := buffer.NewBufferFromString("item one\nitem two")
	edits := []buffer.Edit{bulletEdits()[1], bulletEdits()[0]}

	tx := Record(buf, edits, "bullet", cursor.Selection{}, cursor.Selection{})

	if tx.Operations[0].Range.Start != 0 || tx.Operations[1].Range.Start != 9 {
		t.Errorf("operations not ascending: %+v", tx.Operations)
	}
}

func TestInverseEdits(t *testing.T) {
	buf := buffer.NewBufferFromString("item one\nitem two")
	tx := Record(buf, bulletEdits(), "bullet", cursor.Selection{}, cursor.Selection{})

	inv := tx.InverseEdits()
	want := []buffer.Range{buffer.NewRange(11, 13), buffer.NewRange(0, 2)}
	for i, r := range want {
		if inv[i].Range != r || inv[i].NewText != "" {
			t.Errorf("inverse[%d] = %v, want delete %v", i, inv[i], r)
		}
	}
}

func TestHistoryApplyUndoRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("item one\nitem two")
	h := NewHistory(10)

	before := cursor.NewSelection(0, 17)
	after := cursor.NewSelection(0, 21)
	tx := Record(buf, bulletEdits(), "bullet", before, after)

	if err := h.Apply(tx, buf); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if buf.Text() != "- item one\n- item two" {
		t.Fatalf("unexpected text after apply: %q", buf.Text())
	}

	sel, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "item one\nitem two" {
		t.Errorf("multi-edit transaction should undo in one step, got %q", buf.Text())
	}
	if sel != before {
		t.Errorf("expected selection %v, got %v", before, sel)
	}

	sel, err = h.Redo(buf)
	if err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if buf.Text() != "- item one\n- item two" {
		t.Errorf("unexpected text after redo: %q", buf.Text())
	}
	if sel != after {
		t.Errorf("expected selection %v, got %v", after, sel)
	}
}

func TestHistoryRedoClearedOnPush(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	h := NewHistory(10)

	h.Apply(Record(buf, []buffer.Edit{insert(3, "d")}, "insert", cursor.Selection{}, cursor.Selection{}), buf)
	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available")
	}

	h.Apply(Record(buf, []buffer.Edit{insert(0, "x")}, "insert", cursor.Selection{}, cursor.Selection{}), buf)
	if h.CanRedo() {
		t.Error("redo stack should be cleared by a new transaction")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	buf := buffer.NewBuffer()
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Apply(Record(buf, []buffer.Edit{insert(0, "x")}, "insert", cursor.Selection{}, cursor.Selection{}), buf)
	}

	if h.UndoCount() != 3 {
		t.Errorf("expected 3 undo entries, got %d", h.UndoCount())
	}
}

func TestHistoryErrors(t *testing.T) {
	buf := buffer.NewBuffer()
	h := NewHistory(0)

	if _, err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryApplyInvalid(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	h := NewHistory(10)

	tx := &Transaction{
		Description: "bad",
		Operations:  []Operation{{Range: buffer.NewRange(2, 40), NewText: "x"}},
	}

	if err := h.Apply(tx, buf); !errors.Is(err, buffer.ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if h.CanUndo() {
		t.Error("failed transaction should not be recorded")
	}
}

func TestHistoryDefaultMaxEntries(t *testing.T) {
	buf := buffer.NewBuffer()
	h := NewHistory(-1)

	for i := 0; i < DefaultMaxEntries+5; i++ {
		if err := h.Apply(Record(buf, []buffer.Edit{insert(0, "x")}, "insert", cursor.Selection{}, cursor.Selection{}), buf); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}

	if h.UndoCount() != DefaultMaxEntries {
		t.Errorf("expected %d undo entries, got %d", DefaultMaxEntries, h.UndoCount())
	}
}

func TestHistoryUndoDeletion(t *testing.T) {
	buf := buffer.NewBufferFromString("# abc")
	h := NewHistory(10)

	del := buffer.NewEdit(buffer.NewRange(0, 2), "")
	if err := h.Apply(Record(buf, []buffer.Edit{del}, "remove h1", cursor.NewCursorSelection(3), cursor.NewCursorSelection(1)), buf); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if buf.Text() != "abc" {
		t.Fatalf("unexpected text %q", buf.Text())
	}

	sel, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "# abc" || sel != cursor.NewCursorSelection(3) {
		t.Errorf("undo restored %q with %v", buf.Text(), sel)
	}
}
