package app

import "github.com/rivo/uniseg"

// cell is one grapheme cluster of a line laid out on screen.
type cell struct {
	text   string // cluster, or spaces for an expanded tab
	offset int    // byte offset of the cluster in the line
	col    int    // display column of the first cell
	width  int
}

// layoutLine lays out line with tabs expanded to tabWidth stops.
// Zero-width clusters are dropped.
func layoutLine(line string, tabWidth int) []cell {
	if tabWidth < 1 {
		tabWidth = 1
	}

	var cells []cell
	col, offset := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)

		c := cell{text: cluster, offset: offset, col: col, width: width}
		if cluster == "\t" {
			c.width = tabWidth - col%tabWidth
			c.text = " "
		}
		offset += len(cluster)
		if c.width == 0 {
			continue
		}
		col += c.width
		cells = append(cells, c)
	}
	return cells
}

// displayColumn returns the display column of byte offset off in line.
func displayColumn(line string, off, tabWidth int) int {
	col := 0
	for _, c := range layoutLine(line, tabWidth) {
		if c.offset >= off {
			return c.col
		}
		col = c.col + c.width
	}
	return col
}

// offsetForColumn returns the byte offset of the cluster covering display
// column col in line, or the line length if col is past its end.
func offsetForColumn(line string, col, tabWidth int) int {
	for _, c := range layoutLine(line, tabWidth) {
		if c.col+c.width > col {
			return c.offset
		}
	}
	return len(line)
}
