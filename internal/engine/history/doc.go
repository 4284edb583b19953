// Package history provides undo/redo for the text editor engine.
//
// Every undo step is a Transaction: a batch of edits applied atomically
// together with the selection before and after. A multi-line edit such as
// toggling a bullet on several lines is therefore undone with one Undo.
//
//	h := history.NewHistory(1000)
//
//	tx := history.Record(buf, edits, "bullet", before, after)
//	h.Apply(tx, buf)
//
//	sel, _ := h.Undo(buf) // restores text and returns the prior selection
//	sel, _ = h.Redo(buf)
package history
