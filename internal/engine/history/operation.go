package history

import (
	"github.com/dshills/markfmt/internal/engine/buffer"
	"github.com/dshills/markfmt/internal/engine/cursor"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Operation is a single replaced range inside a transaction.
type Operation struct {
	Range   Range  // Range in the document before the transaction
	OldText string // Text that was replaced (for undo)
	NewText string // Text that was inserted (for redo)
}

// BytesDelta returns the change in document length.
func (op Operation) BytesDelta() int {
	return len(op.NewText) - op.Range.Len()
}

// Transaction is one undo step made of non-overlapping operations.
type Transaction struct {
	Description     string
	Operations      []Operation // Sorted by ascending Range.Start
	SelectionBefore Selection
	SelectionAfter  Selection
}

// Record captures the old text of every edit from the current buffer
// contents and returns a transaction ready to be applied. The edits may be
// given in any order but must not overlap.
func Record(buf *buffer.Buffer, edits []buffer.Edit, description string, before, after Selection) *Transaction {
	snap := buf.Snapshot()

	sorted := make([]buffer.Edit, len(edits))
	copy(sorted, edits)
	cursor.SortEditsReverse(sorted)

	ops := make([]Operation, len(sorted))
	for i, e := range sorted {
		ops[len(sorted)-1-i] = Operation{
			Range:   e.Range,
			OldText: snap.Slice(e.Range.Start, e.Range.End),
			NewText: e.NewText,
		}
	}

	return &Transaction{
		Description:     description,
		Operations:      ops,
		SelectionBefore: before,
		SelectionAfter:  after,
	}
}

// ForwardEdits returns the edits that apply the transaction, in the reverse
// order buffer.ApplyEdits expects.
func (tx *Transaction) ForwardEdits() []buffer.Edit {
	edits := make([]buffer.Edit, len(tx.Operations))
	for i, op := range tx.Operations {
		edits[len(tx.Operations)-1-i] = buffer.NewEdit(op.Range, op.NewText)
	}
	return edits
}

// InverseEdits returns the edits that revert the transaction, expressed in
// post-transaction offsets, in reverse order.
func (tx *Transaction) InverseEdits() []buffer.Edit {
	edits := make([]buffer.Edit, len(tx.Operations))
	shift := 0
	for i, op := range tx.Operations {
		start := op.Range.Start + shift
		edits[len(tx.Operations)-1-i] = buffer.NewEdit(
			buffer.NewRange(start, start+len(op.NewText)),
			op.OldText,
		)
		shift += op.BytesDelta()
	}
	return edits
}

// BytesDelta returns the total change in document length.
func (tx *Transaction) BytesDelta() int {
	total := 0
	for _, op := range tx.Operations {
		total += op.BytesDelta()
	}
	return total
}
