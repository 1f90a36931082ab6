package backend

import "github.com/rivo/uniseg"

// DrawString draws s at (x, y) one grapheme cluster per cell group and
// stops before exceeding maxWidth cells. Returns the number of cells used.
func DrawString(b Backend, x, y int, s string, style Style, maxWidth int) int {
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if width == 0 {
			continue
		}
		if used+width > maxWidth {
			break
		}
		b.SetContent(x+used, y, cluster, style)
		used += width
	}
	return used
}

// Fill sets width cells starting at (x, y) to a blank with style.
func Fill(b Backend, x, y, width int, style Style) {
	for i := 0; i < width; i++ {
		b.SetContent(x+i, y, " ", style)
	}
}

// StringWidth returns the number of cells s occupies.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
