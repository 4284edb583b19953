package format

import (
	"github.com/dshills/markfmt/internal/engine/buffer"
	"github.com/dshills/markfmt/internal/engine/cursor"
)

type (
	// ByteOffset is a byte position in a document.
	ByteOffset = buffer.ByteOffset

	// Line is a single document line with its offset range.
	Line = buffer.Line

	// Edit replaces a range of the document with new text.
	Edit = buffer.Edit

	// Selection is an anchor/head range over document offsets.
	Selection = cursor.Selection
)

// Document is a read-only, line-addressable view of a text document.
// Implementations must return a consistent snapshot for the duration of a
// call into this package.
type Document interface {
	// Len returns the document length in bytes.
	Len() ByteOffset

	// LineCount returns the number of lines (at least 1).
	LineCount() int

	// Line returns the 1-indexed line n.
	Line(n int) Line

	// LineAt returns the line containing offset.
	LineAt(offset ByteOffset) Line

	// Slice returns the text in [from, to).
	Slice(from, to ByteOffset) string
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return cursor.NewSelection(anchor, head)
}

// Caret creates an empty selection at offset.
func Caret(offset ByteOffset) Selection {
	return cursor.NewCursorSelection(offset)
}
