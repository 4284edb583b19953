package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/markfmt/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when a non-positive limit is given.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Transaction
	redoStack []*Transaction

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Apply applies a transaction to buf and pushes it on the undo stack.
func (h *History) Apply(tx *Transaction, buf *buffer.Buffer) error {
	if err := buf.ApplyEdits(tx.ForwardEdits()); err != nil {
		return fmt.Errorf("apply %s: %w", tx.Description, err)
	}
	h.Push(tx)
	return nil
}

// Push adds a transaction to the undo stack and clears the redo stack.
func (h *History) Push(tx *Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, tx)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last transaction and returns the selection that was
// active before it.
// The lock is released while the buffer is edited.
func (h *History) Undo(buf *buffer.Buffer) (Selection, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return Selection{}, ErrNothingToUndo
	}
	tx := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := buf.ApplyEdits(tx.InverseEdits()); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, tx)
		h.mu.Unlock()
		return Selection{}, fmt.Errorf("undo %s: %w", tx.Description, err)
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, tx)
	h.mu.Unlock()
	return tx.SelectionBefore, nil
}

// Redo reapplies the last undone transaction and returns the selection
// that followed it.
func (h *History) Redo(buf *buffer.Buffer) (Selection, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return Selection{}, ErrNothingToRedo
	}
	tx := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := buf.ApplyEdits(tx.ForwardEdits()); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, tx)
		h.mu.Unlock()
		return Selection{}, fmt.Errorf("redo %s: %w", tx.Description, err)
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, tx)
	h.mu.Unlock()
	return tx.SelectionAfter, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}
