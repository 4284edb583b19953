package buffer

import "sort"

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	text       string
	lineStarts []ByteOffset // lineStarts[i] is the offset of line i+1
	revisionID RevisionID
}

func newSnapshot(text string, rev RevisionID) *Snapshot {
	return &Snapshot{
		text:       text,
		lineStarts: indexLines(text),
		revisionID: rev,
	}
}

// indexLines returns the start offset of every line in text.
func indexLines(text string) []ByteOffset {
	starts := make([]ByteOffset, 1, 1+len(text)/32)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.text
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return len(s.text)
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineCount returns the number of lines. An empty snapshot has one line.
func (s *Snapshot) LineCount() int {
	return len(s.lineStarts)
}

// Line returns the 1-indexed line n. Out of range numbers are clamped to
// the first or last line.
func (s *Snapshot) Line(n int) Line {
	if n < 1 {
		n = 1
	}
	if n > len(s.lineStarts) {
		n = len(s.lineStarts)
	}

	from := s.lineStarts[n-1]
	to := len(s.text)
	if n < len(s.lineStarts) {
		to = s.lineStarts[n] - 1
	}
	return Line{Number: n, From: from, To: to, Text: s.text[from:to]}
}

// LineAt returns the line containing offset. Offsets past the end resolve
// to the last line.
func (s *Snapshot) LineAt(offset ByteOffset) Line {
	return s.Line(s.lineIndex(offset) + 1)
}

// lineIndex returns the 0-indexed line containing offset.
func (s *Snapshot) lineIndex(offset ByteOffset) int {
	offset = s.clamp(offset)
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
}

// Slice returns the text in [from, to), clamped to the snapshot bounds.
func (s *Snapshot) Slice(from, to ByteOffset) string {
	from, to = s.clamp(from), s.clamp(to)
	if from >= to {
		return ""
	}
	return s.text[from:to]
}

// OffsetToPoint converts a byte offset to a 0-indexed line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	offset = s.clamp(offset)
	idx := s.lineIndex(offset)
	return Point{Line: idx, Column: offset - s.lineStarts[idx]}
}

// PointToOffset converts a 0-indexed line/column to a byte offset. Columns
// past the end of the line clamp to the line end.
func (s *Snapshot) PointToOffset(p Point) ByteOffset {
	line := s.Line(p.Line + 1)
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > line.Len() {
		col = line.Len()
	}
	return line.From + col
}

func (s *Snapshot) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > len(s.text) {
		return len(s.text)
	}
	return offset
}
