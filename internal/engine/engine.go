package engine

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/markfmt/internal/engine/buffer"
	"github.com/dshills/markfmt/internal/engine/cursor"
	"github.com/dshills/markfmt/internal/engine/history"
	"github.com/dshills/markfmt/internal/format"
	"github.com/dshills/markfmt/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Selection is an anchor/head selection.
	Selection = cursor.Selection

	// Snapshot is an immutable view of the buffer.
	Snapshot = buffer.Snapshot
)

// Engine combines a buffer, a single selection and undo history behind a
// formatting API.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	sel     Selection
	history *history.History
	logger  *logging.Logger

	maxUndoEntries int
	initContent    string
}

// New creates a new Engine with the given options. The selection starts as
// a caret at offset 0.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	buf, err := buffer.NewBufferFromReader(r)
	if err != nil {
		return nil, err
	}
	e.buf = buf
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("engine")
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// Snapshot returns an immutable view of the current buffer.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SetSelection replaces the selection, clamped to the buffer.
func (e *Engine) SetSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = sel.Clamp(e.buf.Len())
}

// State resolves the format state of the current selection.
func (e *Engine) State() format.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return format.Resolve(e.buf.Snapshot(), e.sel)
}

// CanToggle reports why toggling t would be refused, or RefusalNone.
func (e *Engine) CanToggle(t format.Type) format.Refusal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return format.Check(e.buf.Snapshot(), e.sel, t)
}

// Toggle toggles style t on the current selection.
//
// A refused toggle returns a Result with Refusal set and a nil error; the
// buffer, selection and history are unchanged. Otherwise the edits are
// applied atomically as one undo step and the selection is updated.
func (e *Engine) Toggle(t format.Type) (format.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := format.Toggle(e.buf.Snapshot(), e.sel, t)
	if res.Refused() {
		e.logger.Debug("toggle refused",
			zap.Stringer("style", t),
			zap.Stringer("selection", e.sel),
			zap.String("reason", res.Refusal.String()),
		)
		return res, nil
	}

	edits := res.Transaction.Edits
	after := cursor.ShiftSelectionBatch(e.sel, edits)
	if res.Transaction.Selection != nil {
		after = *res.Transaction.Selection
	}

	tx := history.Record(e.buf, edits, "toggle "+t.String(), e.sel, after)
	if err := e.history.Apply(tx, e.buf); err != nil {
		return res, err
	}
	e.sel = after.Clamp(e.buf.Len())

	e.logger.Debug("toggle applied",
		zap.Stringer("style", t),
		zap.Int("edits", len(edits)),
		zap.Int("delta", tx.BytesDelta()),
		zap.Uint64("revision", uint64(e.buf.RevisionID())),
		zap.Stringer("selection", e.sel),
	)
	return res, nil
}

// Undo reverts the last toggle and restores the selection it started from.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, err := e.history.Undo(e.buf)
	if err != nil {
		return err
	}
	e.sel = sel.Clamp(e.buf.Len())
	return nil
}

// Redo reapplies the last undone toggle.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, err := e.history.Redo(e.buf)
	if err != nil {
		return err
	}
	e.sel = sel.Clamp(e.buf.Len())
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo steps available.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}
