package app

import (
	"fmt"
	"sort"

	"github.com/dshills/findbar/internal/engine/buffer"
	"github.com/dshills/findbar/internal/renderer/backend"
)

// Editor styles.
var (
	textStyle      = backend.DefaultStyle
	selectionStyle = backend.DefaultStyle.WithAttr(backend.AttrReverse)
	matchStyle     = backend.DefaultStyle.WithBackground(backend.RGB(0x6a, 0x5a, 0x00))
	statusStyle    = backend.DefaultStyle.WithAttr(backend.AttrReverse)
)

// render draws one frame: the text, the find bar and the status line.
func (app *Application) render() {
	out := app.backend
	if out == nil {
		return
	}
	out.Clear()

	app.drawEditor(out)

	cx, cy := -1, -1
	if app.bar.Visible() {
		bx, by := app.bar.Draw(out, app.editorHeight(), app.width)
		if app.bar.Focused() {
			cx, cy = bx, by
		}
	}
	app.drawStatus(out, app.height-1)

	if cx < 0 {
		line, col := app.view.CursorPosition()
		cy, cx = app.view.Viewport().BufferToScreen(line, col)
	}
	if cx >= 0 && cy >= 0 {
		out.ShowCursor(cx, cy)
	} else {
		out.HideCursor()
	}
	out.Show()
}

// drawEditor draws the visible lines with the selection and highlighted
// matches.
func (app *Application) drawEditor(out backend.Backend) {
	buf := app.doc.Buffer
	vp := app.view.Viewport()
	vp.SetMaxLine(buf.LineCount())
	top, bottom := vp.TopLine(), vp.BottomLine()
	if last := buf.LineCount() - 1; bottom > last {
		bottom = last
	}

	selStart, selEnd, _ := buf.SelectionBounds()
	var matches []buffer.Range
	if ctx := app.find.Context(); ctx != nil {
		from := buf.LineStartOffset(top)
		to := buf.LineStartOffset(bottom) + buffer.ByteOffset(len(buf.LineText(bottom)))
		matches = ctx.HighlightedMatches(from, to)
	}

	left, width := vp.LeftColumn(), vp.Width()
	for line := top; line <= bottom; line++ {
		y := int(line - top)
		lineStart := buf.LineStartOffset(line)
		for _, c := range layoutLine(buf.LineText(line), buf.TabWidth()) {
			if c.col < left {
				continue
			}
			if c.col+c.width > left+width {
				break
			}

			off := lineStart + buffer.ByteOffset(c.offset)
			style := textStyle
			switch {
			case off >= selStart && off < selEnd:
				style = selectionStyle
			case inRanges(matches, off):
				style = matchStyle
			}
			out.SetContent(c.col-left, y, c.text, style)
			for i := 1; i < c.width && c.text == " "; i++ {
				out.SetContent(c.col-left+i, y, " ", style)
			}
		}
	}
}

// drawStatus draws the status line on row y.
func (app *Application) drawStatus(out backend.Backend, y int) {
	backend.Fill(out, 0, y, app.width, statusStyle)

	name := app.doc.Name
	if app.doc.Modified() {
		name += " [+]"
	}
	line, col := app.view.CursorPosition()
	left := fmt.Sprintf(" %s  Ln %d, Col %d", name, line+1, col+1)
	if app.status != "" {
		left += "  " + app.status
	}

	var right string
	if ctx := app.find.Context(); ctx != nil && app.find.Settings().Pattern() != "" {
		right = fmt.Sprintf("%d matches ", ctx.Occurrences())
	}

	used := backend.DrawString(out, 0, y, left, statusStyle, app.width)
	if rw := backend.StringWidth(right); rw > 0 && used+rw < app.width {
		backend.DrawString(out, app.width-rw, y, right, statusStyle, rw)
	}
}

// inRanges reports whether off lies inside one of the sorted ranges.
func inRanges(rs []buffer.Range, off buffer.ByteOffset) bool {
	i := sort.Search(len(rs), func(i int) bool { return rs[i].End > off })
	return i < len(rs) && rs[i].Start <= off
}
