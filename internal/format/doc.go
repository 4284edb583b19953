// Package format detects and toggles text formatting in a plain-text,
// Markdown-like document.
//
// The package is organised in three layers:
//
//   - Styles: one detector/applier per formatting style (bold, italic,
//     underline, strikethrough, heading levels 1-3 and bullet items),
//     looked up through a dispatch table keyed by Type.
//   - Resolver: derives a State for a selection. Inline styles are active
//     if any touched line carries them, headings only for single-line
//     selections, bullets only if every touched line is a bullet.
//   - Orchestrator: decides whether a toggle is legal for the selection
//     shape and computes the changes to apply.
//
// Everything in this package is a pure function of a Document snapshot and a
// Selection. The package never mutates a document; it returns a Transaction
// that the owner of the document applies atomically.
//
// Basic usage:
//
//	st := format.Resolve(doc, format.NewSelection(6, 11))
//	if st.Bold {
//	    // highlight the bold button
//	}
//
//	res := format.Toggle(doc, format.NewSelection(6, 11), format.Bold)
//	if res.Refused() {
//	    return // not applicable here, not an error
//	}
//	apply(res.Transaction)
package format
