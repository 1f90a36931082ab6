package viewport

import (
	"testing"
)

func newTestViewport() *Viewport {
	v := NewViewport(80, 20)
	v.SetMaxLine(100)
	return v
}

func TestScrollToMarkAligned(t *testing.T) {
	tests := []struct {
		name     string
		line     uint32
		col      int
		wantTop  uint32
		wantLeft int
	}{
		{"middle of document", 50, 0, 40, 0},
		{"near start clamps", 2, 0, 0, 0},
		{"near end clamps", 99, 0, 80, 0},
		{"long line", 50, 200, 40, 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport()
			v.ScrollToMark(tt.line, tt.col, 0.25, true, 0.5, 0.5)

			if v.TopLine() != tt.wantTop {
				t.Errorf("top line = %d, want %d", v.TopLine(), tt.wantTop)
			}
			if v.LeftColumn() != tt.wantLeft {
				t.Errorf("left column = %d, want %d", v.LeftColumn(), tt.wantLeft)
			}
		})
	}
}

func TestScrollToMarkCentersRow(t *testing.T) {
	v := newTestViewport()
	v.ScrollToMark(50, 0, 0.25, true, 0.5, 0.5)

	row, _ := v.BufferToScreen(50, 0)
	if row != 10 {
		t.Errorf("expected line 50 on row 10, got %d", row)
	}

	if v.ScrollToMark(50, 0, 0.25, true, 0.5, 0.5) {
		t.Error("aligning to the same position again should not move")
	}
}

func TestScrollToMarkMinimal(t *testing.T) {
	v := newTestViewport()

	if v.ScrollToMark(10, 0, 0.25, false, 0.5, 0.5) {
		t.Error("a line inside the margins should not scroll")
	}

	if !v.ScrollToMark(30, 0, 0.25, false, 0.5, 0.5) {
		t.Fatal("a line below the margins should scroll")
	}
	if v.TopLine() != 16 {
		t.Errorf("expected top line 16, got %d", v.TopLine())
	}

	v.ScrollToMark(3, 0, 0.25, false, 0.5, 0.5)
	if v.TopLine() != 0 {
		t.Errorf("expected top line 0, got %d", v.TopLine())
	}
}

func TestScrollToMarkClampsArguments(t *testing.T) {
	v := newTestViewport()

	v.ScrollToMark(50, -4, 3, true, -1, 2)
	if v.LeftColumn() != 0 {
		t.Errorf("expected left column 0, got %d", v.LeftColumn())
	}
	if row, _ := v.BufferToScreen(50, 0); row < 0 {
		t.Errorf("line 50 should be visible, view at %d", v.TopLine())
	}
}

func TestCenterOn(t *testing.T) {
	v := newTestViewport()

	v.CenterOn(50)
	if v.TopLine() != 40 {
		t.Errorf("expected top line 40, got %d", v.TopLine())
	}

	v.CenterOn(3)
	if v.TopLine() != 0 {
		t.Errorf("expected top line 0, got %d", v.TopLine())
	}
}
