// Package engine provides the formatting editor facade for markfmt.
//
// An Engine owns a text buffer, the current selection and an undo history.
// It resolves the format state of the selection and applies format toggles
// as atomic transactions:
//
//	e := engine.New(engine.WithContent("Hello world"))
//
//	e.SetSelection(format.NewSelection(6, 11))
//	res, _ := e.Toggle(format.Bold) // "Hello <b>world</b>"
//
//	e.State().Bold // true
//	e.Undo()       // "Hello world"
//
// A toggle the selection shape does not allow (a heading across several
// lines, an inline style on a bare caret) is reported through
// format.Result.Refusal and leaves the engine untouched. It is not an error.
//
// # Thread Safety
//
// All Engine operations are safe for concurrent use. Reads take a shared
// lock; toggles, undo and redo are serialized.
package engine
