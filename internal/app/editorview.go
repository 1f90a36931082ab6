package app

import (
	"github.com/dshills/findbar/internal/engine/buffer"
	"github.com/dshills/findbar/internal/renderer/viewport"
)

// EditorView shows one document through a viewport and edits it at the
// cursor. It implements find.View.
type EditorView struct {
	doc          *Document
	vp           *viewport.Viewport
	scrollMargin float64

	// goalCol is the display column kept across vertical moves, -1 if unset.
	goalCol int
}

// NewEditorView creates a view of doc with the given size in cells.
func NewEditorView(doc *Document, width, height int) *EditorView {
	v := &EditorView{
		doc:     doc,
		vp:      viewport.NewViewport(width, height),
		goalCol: -1,
	}
	v.vp.SetMaxLine(doc.Buffer.LineCount())
	return v
}

// Buffer returns the document buffer.
func (v *EditorView) Buffer() *buffer.Buffer { return v.doc.Buffer }

// Document returns the document shown by the view.
func (v *EditorView) Document() *Document { return v.doc }

// Viewport returns the view's viewport.
func (v *EditorView) Viewport() *viewport.Viewport { return v.vp }

// SetScrollMargin sets the margin kept around the cursor while moving it.
func (v *EditorView) SetScrollMargin(m float64) { v.scrollMargin = m }

// Resize updates the view size in cells.
func (v *EditorView) Resize(width, height int) {
	v.vp.Resize(width, height)
}

// ScrollToCursor scrolls the viewport so the insert mark lies inside the
// area left after removing withinMargin of the view on each edge.
func (v *EditorView) ScrollToCursor(withinMargin float64, useAlign bool, xalign, yalign float64) {
	line, col := v.CursorPosition()
	v.vp.SetMaxLine(v.doc.Buffer.LineCount())
	v.vp.ScrollToMark(line, col, withinMargin, useAlign, xalign, yalign)
}

// CursorPosition returns the cursor line and display column.
func (v *EditorView) CursorPosition() (line uint32, col int) {
	buf := v.doc.Buffer
	p := buf.OffsetToPoint(buf.Cursor())
	return p.Line, displayColumn(buf.LineText(p.Line), int(p.Column), buf.TabWidth())
}

func (v *EditorView) keepCursorVisible() {
	v.ScrollToCursor(v.scrollMargin, false, 0, 0)
}

func (v *EditorView) moveTo(off buffer.ByteOffset) {
	v.doc.Buffer.PlaceCursor(off)
	v.keepCursorVisible()
}

// MoveLeft moves the cursor one character left, or to the start of the
// selection if there is one.
func (v *EditorView) MoveLeft() {
	v.goalCol = -1
	buf := v.doc.Buffer
	if start, _, ok := buf.SelectionBounds(); ok {
		v.moveTo(start)
		return
	}
	v.moveTo(buf.ForwardChars(buf.Cursor(), -1))
}

// MoveRight moves the cursor one character right, or to the end of the
// selection if there is one.
func (v *EditorView) MoveRight() {
	v.goalCol = -1
	buf := v.doc.Buffer
	if _, end, ok := buf.SelectionBounds(); ok {
		v.moveTo(end)
		return
	}
	v.moveTo(buf.ForwardChars(buf.Cursor(), 1))
}

// MoveLines moves the cursor n lines down (up if negative), keeping the
// display column.
func (v *EditorView) MoveLines(n int) {
	buf := v.doc.Buffer
	line, col := v.CursorPosition()
	if v.goalCol < 0 {
		v.goalCol = col
	}

	target := int64(line) + int64(n)
	last := int64(buf.LineCount()) - 1
	switch {
	case target < 0:
		v.moveTo(0)
		return
	case target > last:
		v.moveTo(buf.Len())
		return
	}

	text := buf.LineText(uint32(target))
	off := offsetForColumn(text, v.goalCol, buf.TabWidth())
	v.moveTo(buf.LineStartOffset(uint32(target)) + buffer.ByteOffset(off))
}

// PageUp scrolls the view up one page and moves the cursor with it.
func (v *EditorView) PageUp() {
	v.vp.SetMaxLine(v.doc.Buffer.LineCount())
	v.vp.PageUp()
	v.MoveLines(-v.vp.Height())
}

// PageDown scrolls the view down one page and moves the cursor with it.
func (v *EditorView) PageDown() {
	v.vp.SetMaxLine(v.doc.Buffer.LineCount())
	v.vp.PageDown()
	v.MoveLines(v.vp.Height())
}

// Recenter scrolls so the cursor line sits in the middle of the view.
func (v *EditorView) Recenter() {
	line, _ := v.CursorPosition()
	v.vp.SetMaxLine(v.doc.Buffer.LineCount())
	v.vp.CenterOn(line)
}

// MoveHome moves the cursor to the start of its line.
func (v *EditorView) MoveHome() {
	v.goalCol = -1
	buf := v.doc.Buffer
	line := buf.OffsetToPoint(buf.Cursor()).Line
	v.moveTo(buf.LineStartOffset(line))
}

// MoveEnd moves the cursor to the end of its line.
func (v *EditorView) MoveEnd() {
	v.goalCol = -1
	buf := v.doc.Buffer
	line := buf.OffsetToPoint(buf.Cursor()).Line
	v.moveTo(buf.LineStartOffset(line) + buffer.ByteOffset(len(buf.LineText(line))))
}

// InsertText replaces the selection, or inserts at the cursor, with text.
func (v *EditorView) InsertText(text string) error {
	v.goalCol = -1
	buf := v.doc.Buffer
	start, end, _ := buf.SelectionBounds()
	if _, err := buf.Replace(start, end, text); err != nil {
		return err
	}
	v.keepCursorVisible()
	return nil
}

// Backspace deletes the selection or the character before the cursor.
func (v *EditorView) Backspace() error {
	buf := v.doc.Buffer
	start, end, ok := buf.SelectionBounds()
	if !ok {
		start = buf.ForwardChars(end, -1)
	}
	return v.deleteRange(start, end)
}

// DeleteForward deletes the selection or the character after the cursor.
func (v *EditorView) DeleteForward() error {
	buf := v.doc.Buffer
	start, end, ok := buf.SelectionBounds()
	if !ok {
		end = buf.ForwardChars(start, 1)
	}
	return v.deleteRange(start, end)
}

func (v *EditorView) deleteRange(start, end buffer.ByteOffset) error {
	v.goalCol = -1
	if start == end {
		return nil
	}
	if err := v.doc.Buffer.Delete(start, end); err != nil {
		return err
	}
	v.doc.Buffer.PlaceCursor(start)
	v.keepCursorVisible()
	return nil
}

// Undo reverts the last edit.
func (v *EditorView) Undo() error {
	v.goalCol = -1
	if err := v.doc.History.Undo(v.doc.Buffer); err != nil {
		return err
	}
	v.keepCursorVisible()
	return nil
}

// Redo reapplies the last undone edit.
func (v *EditorView) Redo() error {
	v.goalCol = -1
	if err := v.doc.History.Redo(v.doc.Buffer); err != nil {
		return err
	}
	v.keepCursorVisible()
	return nil
}
