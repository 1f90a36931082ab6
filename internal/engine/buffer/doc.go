// Package buffer provides the document buffer the find bar searches in.
//
// A Buffer stores text behind a sync.RWMutex and tracks two marks the way
// GUI text toolkits do:
//
//   - the insert mark, which is the cursor
//   - the selection bound, the other end of the selection
//
// When both marks sit on the same offset there is no selection. Edits move
// the marks with right gravity: a mark inside a replaced range collapses to
// the start of the range and then follows the inserted text, a mark after
// the range shifts by the length delta.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo foo")
//
//	// Select the second "foo"
//	buf.PlaceCursor(4)
//	buf.MoveSelectionBound(7)
//
//	start, end, ok := buf.SelectionBounds() // 4, 7, true
//
//	// Replace it; both marks end up after "bar"
//	buf.Replace(start, end, "bar")
//
// Positions are byte offsets. Point converts to 0-indexed line/column and
// ForwardChars steps by runes, so callers counting characters never land in
// the middle of a UTF-8 sequence.
//
// OnChange registers a listener that receives a Change for every edit call;
// the undo history is built on it.
package buffer
