// Package viewport tracks which part of a buffer is visible in a view and
// scrolls it to keep marks on screen.
package viewport

import "sync"

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	mu sync.RWMutex

	// Position in buffer (first visible line and column)
	topLine    uint32
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Number of lines in the buffer, 0 if unknown
	maxLine uint32
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	v := &Viewport{}
	v.resize(width, height)
	return v
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// BottomLine returns the last visible line.
func (v *Viewport) BottomLine() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bottomLine()
}

func (v *Viewport) bottomLine() uint32 {
	bottom := v.topLine + uint32(v.height) - 1
	if v.maxLine > 0 && bottom > v.maxLine-1 {
		bottom = v.maxLine - 1
	}
	return bottom
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// Resize updates the viewport size.
// Width and height are clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resize(width, height)
	v.topLine = v.clampTop(int64(v.topLine))
}

func (v *Viewport) resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetMaxLine sets the number of lines in the buffer.
func (v *Viewport) SetMaxLine(maxLine uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.maxLine = maxLine
	v.topLine = v.clampTop(int64(v.topLine))
}

// BufferToScreen converts buffer coordinates to screen coordinates.
// Returns (-1, -1) if the position is not visible.
func (v *Viewport) BufferToScreen(line uint32, col int) (screenRow, screenCol int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if line < v.topLine || line > v.bottomLine() {
		return -1, -1
	}
	if col < v.leftColumn || col >= v.leftColumn+v.width {
		return -1, -1
	}
	return int(line - v.topLine), col - v.leftColumn
}

// ScrollBy scrolls by a delta number of lines.
func (v *Viewport) ScrollBy(deltaLines int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(int64(v.topLine) + int64(deltaLines))
}

// PageUp scrolls up by one page.
func (v *Viewport) PageUp() {
	v.ScrollBy(-v.Height())
}

// PageDown scrolls down by one page.
func (v *Viewport) PageDown() {
	v.ScrollBy(v.Height())
}

// maxTop is the largest top line that still fills the view.
func (v *Viewport) maxTop() uint32 {
	if v.maxLine <= uint32(v.height) {
		return 0
	}
	return v.maxLine - uint32(v.height)
}

func (v *Viewport) clampTop(top int64) uint32 {
	if top < 0 {
		return 0
	}
	if v.maxLine > 0 && top > int64(v.maxTop()) {
		return v.maxTop()
	}
	return uint32(top)
}
