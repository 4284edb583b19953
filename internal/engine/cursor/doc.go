// Package cursor provides selection handling for text editing.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a caret with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor), preserving the user's selection direction.
//
// Basic usage:
//
//	sel := cursor.NewSelection(10, 20) // Select from 10 to 20
//
//	// Map through a batch of edits that rewrite whole lines
//	edits := []buffer.Edit{buffer.NewEdit(buffer.NewRange(0, 11), "- Hello world")}
//	sel = cursor.ShiftSelectionBatch(sel, edits)
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
