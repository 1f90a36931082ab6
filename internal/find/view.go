package find

import "github.com/dshills/findbar/internal/engine/buffer"

// View is the document view the controller searches in.
type View interface {
	// Buffer returns the document buffer shown by the view.
	Buffer() *buffer.Buffer

	// ScrollToCursor scrolls so the insert mark is visible. withinMargin is
	// the fraction of the view kept clear at each edge; with useAlign the
	// mark is placed at (xalign, yalign) of the remaining area.
	ScrollToCursor(withinMargin float64, useAlign bool, xalign, yalign float64)
}

// Bar is the find bar widget the controller drives.
type Bar interface {
	Show()
	Hide()
	FocusPattern()

	// SetNotFound toggles the "text not found" style on the pattern input.
	SetNotFound(notFound bool)
}

// WrapIndicator is implemented by bars that can show that the last search
// wrapped around a document boundary.
type WrapIndicator interface {
	SetWrapped(wrapped bool)
}

// Scroll placement applied after every successful search.
const (
	ScrollMargin = 0.25
	ScrollXAlign = 0.5
	ScrollYAlign = 0.5
)

type nopBar struct{}

func (nopBar) Show()            {}
func (nopBar) Hide()            {}
func (nopBar) FocusPattern()    {}
func (nopBar) SetNotFound(bool) {}
