package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/findbar/internal/engine/buffer"
)

func newTestView(text string, width, height int) *EditorView {
	return NewEditorView(NewDocument("", []byte(text)), width, height)
}

func TestEditorViewVerticalMotionKeepsColumn(t *testing.T) {
	v := newTestView("one\ntwo\nthree", 20, 5)
	buf := v.Buffer()
	buf.PlaceCursor(2)

	v.MoveLines(1)
	assert.Equal(t, buffer.ByteOffset(6), buf.Cursor())

	v.MoveEnd()
	assert.Equal(t, buffer.ByteOffset(7), buf.Cursor())

	v.MoveLines(1)
	assert.Equal(t, buffer.ByteOffset(11), buf.Cursor(), "column 3 on the last line")

	v.MoveLines(5)
	assert.Equal(t, buf.Len(), buf.Cursor(), "moving past the last line goes to the end")

	v.MoveLines(-10)
	assert.Equal(t, buffer.ByteOffset(0), buf.Cursor())
}

func TestEditorViewGoalColumnSurvivesShortLines(t *testing.T) {
	v := newTestView("abcdef\nab\nabcdef", 20, 5)
	buf := v.Buffer()
	buf.PlaceCursor(5)

	v.MoveLines(1)
	assert.Equal(t, buffer.ByteOffset(9), buf.Cursor(), "clamped to the short line")
	v.MoveLines(1)
	assert.Equal(t, buffer.ByteOffset(15), buf.Cursor(), "back to column 5")
}

func TestEditorViewHorizontalMotionCollapsesSelection(t *testing.T) {
	v := newTestView("hello world", 20, 5)
	buf := v.Buffer()

	buf.SelectRange(6, 11)
	v.MoveLeft()
	assert.Equal(t, buffer.Selection{Insert: 6, Bound: 6}, buf.Selection())

	buf.SelectRange(6, 11)
	v.MoveRight()
	assert.Equal(t, buffer.Selection{Insert: 11, Bound: 11}, buf.Selection())

	v.MoveRight()
	assert.Equal(t, buffer.ByteOffset(11), buf.Cursor(), "stays at the end")
	v.MoveHome()
	assert.Equal(t, buffer.ByteOffset(0), buf.Cursor())
}

func TestEditorViewInsertReplacesSelection(t *testing.T) {
	v := newTestView("hello world", 20, 5)
	buf := v.Buffer()
	buf.SelectRange(6, 11)

	require.NoError(t, v.InsertText("there"))
	assert.Equal(t, "hello there", buf.Text())
	assert.Equal(t, buffer.ByteOffset(11), buf.Cursor())
	_, _, ok := buf.SelectionBounds()
	assert.False(t, ok)
}

func TestEditorViewDeletion(t *testing.T) {
	v := newTestView("abc", 20, 5)
	buf := v.Buffer()

	require.NoError(t, v.Backspace())
	assert.Equal(t, "abc", buf.Text(), "nothing before the cursor")

	require.NoError(t, v.DeleteForward())
	assert.Equal(t, "bc", buf.Text())

	v.MoveEnd()
	require.NoError(t, v.Backspace())
	assert.Equal(t, "b", buf.Text())
	assert.Equal(t, buffer.ByteOffset(1), buf.Cursor())

	buf.SelectRange(0, 1)
	require.NoError(t, v.Backspace())
	assert.Empty(t, buf.Text())
}

func TestEditorViewCursorPositionExpandsTabs(t *testing.T) {
	v := newTestView("\tx", 20, 5)
	v.Buffer().PlaceCursor(1)

	line, col := v.CursorPosition()
	assert.Equal(t, uint32(0), line)
	assert.Equal(t, 4, col)
}

func TestEditorViewKeepsCursorVisible(t *testing.T) {
	v := newTestView(strings.Repeat("line\n", 100), 20, 10)
	vp := v.Viewport()

	v.MoveLines(10)
	line, _ := v.CursorPosition()
	assert.Equal(t, uint32(10), line)
	row, _ := vp.BufferToScreen(10, 0)
	assert.Equal(t, 9, row)
	assert.Equal(t, uint32(1), vp.TopLine(), "minimal scroll")

	v.MoveLines(-10)
	assert.Equal(t, uint32(0), vp.TopLine())
}

func TestEditorViewPageDownScrollsWithCursor(t *testing.T) {
	v := newTestView(strings.Repeat("line\n", 100), 20, 10)
	vp := v.Viewport()

	v.PageDown()
	line, _ := v.CursorPosition()
	assert.Equal(t, uint32(10), line)
	assert.Equal(t, uint32(10), vp.TopLine())

	v.PageDown()
	v.PageUp()
	line, _ = v.CursorPosition()
	assert.Equal(t, uint32(10), line)
	assert.Equal(t, uint32(10), vp.TopLine())
}

func TestEditorViewRecenter(t *testing.T) {
	v := newTestView(strings.Repeat("line\n", 100), 20, 10)
	buf := v.Buffer()
	buf.PlaceCursor(buf.LineStartOffset(50))

	v.Recenter()
	assert.Equal(t, uint32(45), v.Viewport().TopLine())

	buf.PlaceCursor(0)
	v.Recenter()
	assert.Equal(t, uint32(0), v.Viewport().TopLine())
}

func TestEditorViewScrollToCursorAligned(t *testing.T) {
	v := newTestView(strings.Repeat("line\n", 100), 20, 10)
	buf := v.Buffer()
	buf.PlaceCursor(buf.LineStartOffset(50))

	v.ScrollToCursor(0, true, 0.5, 0.5)
	top, bottom := v.Viewport().TopLine(), v.Viewport().BottomLine()
	assert.True(t, top <= 50 && 50 <= bottom)
	assert.InDelta(t, 50, float64(top+bottom)/2, 1)
}

func TestEditorViewUndoRedo(t *testing.T) {
	v := newTestView("abc", 20, 5)
	buf := v.Buffer()

	require.NoError(t, v.InsertText("xy"))
	require.NoError(t, v.DeleteForward())
	assert.Equal(t, "xybc", buf.Text())

	require.NoError(t, v.Undo())
	assert.Equal(t, "xyabc", buf.Text())
	require.NoError(t, v.Undo())
	assert.Equal(t, "abc", buf.Text())
	assert.Equal(t, buffer.ByteOffset(0), buf.Cursor())

	require.NoError(t, v.Redo())
	assert.Equal(t, "xyabc", buf.Text())
	assert.Equal(t, buffer.ByteOffset(2), buf.Cursor())
}
