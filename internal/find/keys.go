package find

// Key identifies the keys the find bar reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyEnter
	KeyShiftLeft
	KeyShiftRight
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Return"
	case KeyShiftLeft:
		return "Shift_L"
	case KeyShiftRight:
		return "Shift_R"
	default:
		return "other"
	}
}

func (k Key) isShift() bool {
	return k == KeyShiftLeft || k == KeyShiftRight
}

// HandleBarKeyDown handles a key press anywhere in the find bar.
// Escape hides the bar. Returns true if the key was consumed.
func (c *Controller) HandleBarKeyDown(k Key) bool {
	if k == KeyEscape {
		c.Hide()
		return true
	}
	return false
}

// HandlePatternKeyDown handles a key press in the pattern input.
// Enter searches in the current direction; Shift switches to backwards.
// Returns true if the key was consumed.
func (c *Controller) HandlePatternKeyDown(k Key) bool {
	switch {
	case k == KeyEnter:
		c.Submit()
		return true
	case k.isShift():
		c.backwards = true
	}
	return false
}

// HandlePatternKeyUp handles a key release in the pattern input.
// Releasing Shift switches back to forward searches.
func (c *Controller) HandlePatternKeyUp(k Key) bool {
	if k.isShift() {
		c.backwards = false
	}
	return false
}
