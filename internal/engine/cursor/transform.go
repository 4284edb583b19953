package cursor

import (
	"sort"

	"github.com/dshills/markfmt/internal/engine/buffer"
)

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// ShiftOffset updates an offset after an edit that rewrites text around
// it, such as adding or removing a line prefix. An offset inside the
// replaced range keeps its distance from the end of the range and is
// clamped to the replacement. Other offsets follow TransformOffset.
func ShiftOffset(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.End < offset || edit.Range.Start > offset {
		return TransformOffset(offset, edit)
	}
	moved := offset + edit.Delta()
	if moved < edit.Range.Start {
		return edit.Range.Start
	}
	if end := edit.Range.Start + ByteOffset(len(edit.NewText)); moved > end {
		return end
	}
	return moved
}

// ShiftSelectionBatch maps a selection through a batch of edits using
// ShiftOffset. The order of edits does not matter.
func ShiftSelectionBatch(sel Selection, edits []Edit) Selection {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	SortEditsReverse(sorted)

	for _, edit := range sorted {
		sel = Selection{
			Anchor: ShiftOffset(sel.Anchor, edit),
			Head:   ShiftOffset(sel.Head, edit),
		}
	}
	return sel
}

// SortEditsReverse sorts edits in descending order by start position.
// This mutates the input slice.
func SortEditsReverse(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Range.Start > edits[j].Range.Start
	})
}
