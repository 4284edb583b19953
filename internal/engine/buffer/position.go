package buffer

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset represents a byte position in the buffer.
type ByteOffset = int

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column is measured in bytes.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Line is a single line of a buffer.
type Line struct {
	Number int        // 1-indexed line number
	From   ByteOffset // Offset of the first byte
	To     ByteOffset // Offset just past the last byte, before the line break
	Text   string     // Line content without the line break
}

// Len returns the line length in bytes.
func (l Line) Len() ByteOffset {
	return l.To - l.From
}

// Range returns the line's byte range.
func (l Line) Range() Range {
	return Range{Start: l.From, End: l.To}
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
