package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid = errors.New("invalid range")
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")
)

// Buffer holds the text of a document. All methods are thread-safe.
// Every write replaces the current snapshot, so snapshots handed out
// earlier stay valid.
type Buffer struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{snap: newSnapshot("", NewRevisionID())}
}

// NewBufferFromString creates a buffer with initial content.
// Line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{snap: newSnapshot(normalizeLineEndings(s), NewRevisionID())}
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	// Read everything first so CRLF pairs split across reads normalize.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.Snapshot().Text()
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return b.Snapshot().Len()
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.Snapshot().RevisionID()
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) and must not
// overlap. The batch is validated before anything changes; on error the
// buffer is left untouched. A successful batch produces one new revision.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, edit := range edits {
		if !b.validLocked(edit.Range) {
			return ErrRangeInvalid
		}
		if i > 0 && !edit.Range.Precedes(edits[i-1].Range) {
			return ErrEditsOverlap
		}
	}

	// Rebuild front to back in a single pass.
	text := b.snap.text
	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for i := len(edits) - 1; i >= 0; i-- {
		edit := edits[i]
		sb.WriteString(text[pos:edit.Range.Start])
		sb.WriteString(normalizeLineEndings(edit.NewText))
		pos = edit.Range.End
	}
	sb.WriteString(text[pos:])

	b.snap = newSnapshot(sb.String(), NewRevisionID())
	return nil
}

func (b *Buffer) validLocked(r Range) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End <= b.snap.Len()
}
