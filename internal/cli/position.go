package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/markfmt/internal/engine/buffer"
)

// ErrPositionOutOfRange indicates a position outside the document.
var ErrPositionOutOfRange = errors.New("position out of range")

// Position is a 1-indexed line:column location. Columns count grapheme
// clusters, so "é" or an emoji with modifiers is a single column.
type Position struct {
	Line   int
	Column int
}

// ParsePosition parses "line:column" or "line" (column 1).
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	lineStr, colStr, hasCol := strings.Cut(s, ":")

	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("invalid line in position %q", s)
	}

	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return Position{}, fmt.Errorf("invalid column in position %q", s)
		}
	}
	return Position{Line: line, Column: col}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so positions can be
// used directly as flag values.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// IsZero reports whether the position is unset.
func (p Position) IsZero() bool {
	return p.Line == 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Offset converts the position to a byte offset in snap. The column may be
// one past the last cluster of the line, addressing the line end.
func (p Position) Offset(snap *buffer.Snapshot) (buffer.ByteOffset, error) {
	if p.Line < 1 || p.Line > snap.LineCount() || p.Column < 1 {
		return 0, fmt.Errorf("%s: %w", p, ErrPositionOutOfRange)
	}

	line := snap.Line(p.Line)
	g := uniseg.NewGraphemes(line.Text)
	end := 0
	for n := p.Column - 1; n > 0; n-- {
		if !g.Next() {
			return 0, fmt.Errorf("%s: line %d has %d columns: %w",
				p, p.Line, uniseg.GraphemeClusterCount(line.Text), ErrPositionOutOfRange)
		}
		_, end = g.Positions()
	}
	return snap.PointToOffset(buffer.Point{Line: p.Line - 1, Column: end}), nil
}

// PositionOf converts a byte offset in snap to a position.
func PositionOf(snap *buffer.Snapshot, offset buffer.ByteOffset) Position {
	pt := snap.OffsetToPoint(offset)
	line := snap.Line(pt.Line + 1)
	return Position{
		Line:   line.Number,
		Column: uniseg.GraphemeClusterCount(line.Text[:pt.Column]) + 1,
	}
}
