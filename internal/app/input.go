package app

import "github.com/rivo/uniseg"

// LineInput is a single-line text entry. The cursor moves by grapheme
// cluster.
type LineInput struct {
	text   string
	cursor int
}

// Text returns the entered text.
func (in *LineInput) Text() string { return in.text }

// Cursor returns the cursor byte offset.
func (in *LineInput) Cursor() int { return in.cursor }

// SetText replaces the text and moves the cursor to its end.
func (in *LineInput) SetText(s string) {
	in.text = s
	in.cursor = len(s)
}

// Insert inserts s at the cursor.
func (in *LineInput) Insert(s string) {
	in.text = in.text[:in.cursor] + s + in.text[in.cursor:]
	in.cursor += len(s)
}

// Backspace deletes the cluster before the cursor.
// Returns false if there was nothing to delete.
func (in *LineInput) Backspace() bool {
	if in.cursor == 0 {
		return false
	}
	prev := in.prevBoundary()
	in.text = in.text[:prev] + in.text[in.cursor:]
	in.cursor = prev
	return true
}

// Delete deletes the cluster after the cursor.
// Returns false if there was nothing to delete.
func (in *LineInput) Delete() bool {
	if in.cursor == len(in.text) {
		return false
	}
	in.text = in.text[:in.cursor] + in.text[in.nextBoundary():]
	return true
}

// Left moves the cursor one cluster left.
func (in *LineInput) Left() { in.cursor = in.prevBoundary() }

// Right moves the cursor one cluster right.
func (in *LineInput) Right() { in.cursor = in.nextBoundary() }

// Home moves the cursor to the start.
func (in *LineInput) Home() { in.cursor = 0 }

// End moves the cursor to the end.
func (in *LineInput) End() { in.cursor = len(in.text) }

// CursorColumn returns the display width of the text before the cursor.
func (in *LineInput) CursorColumn() int {
	return uniseg.StringWidth(in.text[:in.cursor])
}

func (in *LineInput) nextBoundary() int {
	if in.cursor >= len(in.text) {
		return len(in.text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(in.text[in.cursor:], -1)
	return in.cursor + len(cluster)
}

func (in *LineInput) prevBoundary() int {
	prev := 0
	rest := in.text[:in.cursor]
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if len(rest) > 0 {
			prev += len(cluster)
		}
	}
	return prev
}
