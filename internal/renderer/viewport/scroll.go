package viewport

import "math"

// ScrollToMark scrolls so that (line, col) lies inside the view shrunk by
// withinMargin of its size on every edge. withinMargin is clamped to
// [0, 0.5].
//
// With useAlign the position is placed at (xalign, yalign) of the shrunk
// area, where 0 is the top/left edge and 1 the bottom/right edge, even if
// it was already visible. Without it the view scrolls the minimal distance
// and does not move at all if the position is already inside the area.
//
// Returns true if the view moved.
func (v *Viewport) ScrollToMark(line uint32, col int, withinMargin float64, useAlign bool, xalign, yalign float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	withinMargin = clampUnit(withinMargin, 0.5)
	xalign = clampUnit(xalign, 1)
	yalign = clampUnit(yalign, 1)

	top := v.clampTop(scrollAxis(int64(v.topLine), int64(line), v.height, withinMargin, useAlign, yalign))
	left := int(max(scrollAxis(int64(v.leftColumn), int64(max(col, 0)), v.width, withinMargin, useAlign, xalign), 0))

	moved := top != v.topLine || left != v.leftColumn
	v.topLine, v.leftColumn = top, left
	return moved
}

// CenterOn scrolls so line sits in the middle of the view.
func (v *Viewport) CenterOn(line uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(int64(line) - int64(v.height/2))
}

// scrollAxis returns the new first visible index along one axis of the
// given size so that target lands inside the margin-reduced area.
func scrollAxis(first, target int64, size int, margin float64, useAlign bool, align float64) int64 {
	m := int64(float64(size) * margin)
	inner := int64(size) - 2*m
	if inner < 1 {
		m = int64(size-1) / 2
		inner = int64(size) - 2*m
	}

	if useAlign {
		return target - m - int64(math.Round(align*float64(inner-1)))
	}

	lo := first + m
	hi := lo + inner - 1
	switch {
	case target < lo:
		return target - m
	case target > hi:
		return target - m - (inner - 1)
	}
	return first
}

func clampUnit(f, limit float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return min(f, limit)
}
