// Package buffer provides a thread-safe, line-indexed text buffer.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - A line-start index for O(log n) offset to line lookups
//   - Atomic batch edits that either apply completely or not at all
//   - Immutable snapshots for concurrent readers
//   - Line ending normalization to LF
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello world\nsecond line")
//
//	// Edits in one batch are applied highest offset first
//	buf.ApplyEdits([]buffer.Edit{
//		buffer.NewEdit(buffer.NewRange(6, 11), "there"),
//		buffer.NewEdit(buffer.NewRange(0, 0), "# "),
//	}) // "# Hello there\nsecond line"
//
//	// Read a consistent view
//	snap := buf.Snapshot()
//	line := snap.Line(2) // Line{Number: 2, From: 14, To: 25, Text: "second line"}
//
// Lines are 1-indexed; a line's [From, To) range excludes the line break.
// An empty buffer has exactly one empty line.
package buffer
