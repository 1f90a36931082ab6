package app

import (
	"github.com/dshills/findbar/internal/renderer/backend"
	"github.com/dshills/findbar/internal/search"
)

// BarField identifies an input of the find bar.
type BarField int

const (
	FieldPattern BarField = iota
	FieldReplace
)

// FindBar is the two-row find and replace widget at the bottom of the
// screen. It implements find.Bar and find.WrapIndicator.
type FindBar struct {
	visible  bool
	focused  bool
	field    BarField
	notFound bool
	wrapped  bool
	status   string

	pattern  LineInput
	replace  LineInput
	settings *search.Settings
}

// NewFindBar creates a hidden find bar that displays the toggles of
// settings.
func NewFindBar(settings *search.Settings) *FindBar {
	return &FindBar{settings: settings}
}

// Show makes the bar visible.
func (b *FindBar) Show() { b.visible = true }

// Hide hides the bar and drops its focus.
func (b *FindBar) Hide() {
	b.visible = false
	b.focused = false
}

// FocusPattern gives the pattern input the keyboard focus.
func (b *FindBar) FocusPattern() {
	b.focused = true
	b.field = FieldPattern
}

// SetNotFound toggles the not-found style of the pattern input.
func (b *FindBar) SetNotFound(notFound bool) { b.notFound = notFound }

// SetWrapped toggles the wrapped-search marker.
func (b *FindBar) SetWrapped(wrapped bool) { b.wrapped = wrapped }

// SetStatus sets the message shown right of the replacement input.
func (b *FindBar) SetStatus(s string) { b.status = s }

// Visible reports whether the bar is shown.
func (b *FindBar) Visible() bool { return b.visible }

// Focused reports whether one of the bar inputs has the keyboard focus.
func (b *FindBar) Focused() bool { return b.visible && b.focused }

// Blur returns the keyboard focus to the editor.
func (b *FindBar) Blur() { b.focused = false }

// Field returns the focused input.
func (b *FindBar) Field() BarField { return b.field }

// NextField moves the focus to the other input.
func (b *FindBar) NextField() {
	if b.field == FieldPattern {
		b.field = FieldReplace
	} else {
		b.field = FieldPattern
	}
}

// NotFound reports whether the last search found nothing.
func (b *FindBar) NotFound() bool { return b.notFound }

// Wrapped reports whether the last search wrapped.
func (b *FindBar) Wrapped() bool { return b.wrapped }

// Pattern returns the pattern input.
func (b *FindBar) Pattern() *LineInput { return &b.pattern }

// Replacement returns the replacement input.
func (b *FindBar) Replacement() *LineInput { return &b.replace }

// Input returns the focused input.
func (b *FindBar) Input() *LineInput {
	if b.field == FieldReplace {
		return &b.replace
	}
	return &b.pattern
}

// Height returns the number of rows the bar occupies.
func (b *FindBar) Height() int {
	if !b.visible {
		return 0
	}
	return 2
}

// Bar styles.
var (
	barStyle      = backend.DefaultStyle.WithAttr(backend.AttrReverse)
	labelStyle    = barStyle.WithAttr(backend.AttrBold)
	inputStyle    = backend.DefaultStyle
	notFoundStyle = backend.DefaultStyle.WithBackground(backend.RGB(0x80, 0x20, 0x20)).WithForeground(backend.RGB(0xff, 0xff, 0xff))
	flagOnStyle   = barStyle.WithAttr(backend.AttrBold)
	flagOffStyle  = barStyle.WithAttr(backend.AttrDim)
)

const (
	patternLabel = " Find:    "
	replaceLabel = " Replace: "
)

// Draw renders the bar on rows y and y+1 of width cells. It returns the
// screen position of the input cursor.
func (b *FindBar) Draw(out backend.Backend, y, width int) (cx, cy int) {
	backend.Fill(out, 0, y, width, barStyle)
	backend.Fill(out, 0, y+1, width, barStyle)

	right := b.drawFlags(out, y, width)
	inputWidth := right - backend.StringWidth(patternLabel) - 1
	if b.wrapped {
		inputWidth -= backend.StringWidth(wrappedMark) + 1
	}
	if inputWidth < 1 {
		inputWidth = 1
	}

	style := inputStyle
	if b.notFound {
		style = notFoundStyle
	}
	px := b.drawInput(out, y, patternLabel, &b.pattern, style, inputWidth)
	if b.wrapped {
		backend.DrawString(out, px+inputWidth+1, y, wrappedMark, labelStyle, width-px-inputWidth-1)
	}
	rx := b.drawInput(out, y+1, replaceLabel, &b.replace, inputStyle, inputWidth)
	if b.status != "" {
		backend.DrawString(out, rx+inputWidth+1, y+1, b.status, barStyle, width-rx-inputWidth-1)
	}

	if b.field == FieldReplace {
		return rx + min(b.replace.CursorColumn(), inputWidth-1), y + 1
	}
	return px + min(b.pattern.CursorColumn(), inputWidth-1), y
}

const wrappedMark = "[wrapped]"

// drawInput draws a label and an input box and returns the input's x.
func (b *FindBar) drawInput(out backend.Backend, y int, label string, in *LineInput, style backend.Style, width int) int {
	x := backend.DrawString(out, 0, y, label, labelStyle, len(label))
	backend.Fill(out, x, y, width, style)

	text := in.Text()
	if over := in.CursorColumn() - width + 1; over > 0 {
		text = text[columnOffset(text, over):]
	}
	backend.DrawString(out, x, y, text, style, width)
	return x
}

// drawFlags draws the option toggles right-aligned on row y and returns
// their left edge.
func (b *FindBar) drawFlags(out backend.Backend, y, width int) int {
	if b.settings == nil {
		return width
	}
	flags := []struct {
		label string
		on    bool
	}{
		{"[Aa]", b.settings.CaseSensitive()},
		{"[W]", b.settings.WholeWord()},
		{"[.*]", b.settings.RegexEnabled()},
	}

	total := 0
	for _, f := range flags {
		total += backend.StringWidth(f.label) + 1
	}
	x := width - total
	if x < 0 {
		return width
	}
	left := x
	for _, f := range flags {
		style := flagOffStyle
		if f.on {
			style = flagOnStyle
		}
		x += backend.DrawString(out, x, y, f.label, style, width-x) + 1
	}
	return left
}

// columnOffset returns the byte offset in s where display column col
// starts.
func columnOffset(s string, col int) int {
	return offsetForColumn(s, col, 1)
}
