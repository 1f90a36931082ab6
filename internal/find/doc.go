// Package find implements the find/replace bar controller of the editor.
//
// A Controller owns the search settings and, while a document view is
// attached, a search context scoped to that view's buffer. It reacts to
// find-bar events (key presses, button activations, pattern edits) by
// asking the context for the next or previous match relative to the cursor
// and moving the buffer's cursor and selection onto it.
//
// # Search direction and start offset
//
// Searches always wrap around the document. A forward search triggered by
// editing the pattern starts at the cursor itself, so the match under the
// cursor is kept while typing. FindNext and Enter start one character past
// the cursor so the selected match is not found again. Holding Shift in the
// pattern input makes Enter search backwards.
//
// # Replacing
//
// ReplaceOne only substitutes text the user already has selected as a
// match: it searches from the cursor and replaces only when the selection
// did not move. ReplaceAll replaces every occurrence without touching the
// cursor or the search direction.
//
// # Threading
//
// A Controller belongs to the UI event loop. Methods run to completion on
// that goroutine and take no locks.
package find
