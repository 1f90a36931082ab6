package find

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/dshills/findbar/internal/engine/buffer"
	"github.com/dshills/findbar/internal/logging"
	"github.com/dshills/findbar/internal/search"
)

// Controller drives the find bar for one document view at a time.
type Controller struct {
	settings *search.Settings
	bar      Bar
	log      *logging.Logger

	// Session state, present while a view is attached.
	view      View
	ctx       *search.Context
	session   string
	slog      *logging.Logger
	backwards bool
	last      buffer.Range
	hasLast   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSettings shares existing search settings with the controller.
func WithSettings(s *search.Settings) Option {
	return func(c *Controller) {
		if s != nil {
			c.settings = s
		}
	}
}

// New creates a controller driving bar. No view is attached.
func New(bar Bar, opts ...Option) *Controller {
	if bar == nil {
		bar = nopBar{}
	}
	c := &Controller{
		settings: search.NewSettings(),
		bar:      bar,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("find")
	c.slog = c.log
	return c
}

// Settings returns the search settings.
func (c *Controller) Settings() *search.Settings { return c.settings }

// Context returns the search context of the attached view, or nil.
func (c *Controller) Context() *search.Context { return c.ctx }

// View returns the attached view, or nil.
func (c *Controller) View() View { return c.view }

// Session returns the ID of the current attach session, or "".
func (c *Controller) Session() string { return c.session }

// SearchingBackwards reports whether Enter currently searches backwards.
func (c *Controller) SearchingBackwards() bool { return c.backwards }

// LastMatch returns the bounds of the last successful search.
func (c *Controller) LastMatch() (buffer.Range, bool) { return c.last, c.hasLast }

// Attach binds the controller to view, replacing any previous binding.
// A nil view, including a typed nil pointer, detaches and releases the
// search context.
func (c *Controller) Attach(view View) {
	c.backwards = false
	c.last, c.hasLast = buffer.Range{}, false

	if isNil(view) || view.Buffer() == nil {
		if c.ctx != nil {
			c.slog.Debug("detached")
		}
		c.view, c.ctx, c.session, c.slog = nil, nil, "", c.log
		return
	}

	c.view = view
	c.ctx = search.NewContext(view.Buffer(), c.settings)
	c.ctx.SetHighlight(true)
	c.session = uuid.NewString()
	c.slog = c.log.WithField("session", c.session)
	c.slog.Debug("attached")
}

// Show makes the find bar visible, focuses the pattern input and turns on
// match highlighting.
func (c *Controller) Show() {
	c.bar.FocusPattern()
	if c.ctx != nil {
		c.ctx.SetHighlight(true)
	}
	c.bar.Show()
}

// Hide hides the find bar and turns off match highlighting. The pattern
// and the selection are kept.
func (c *Controller) Hide() {
	c.bar.Hide()
	if c.ctx != nil {
		c.ctx.SetHighlight(false)
	}
}

// SetCaseSensitive toggles case-sensitive matching for later searches.
func (c *Controller) SetCaseSensitive(on bool) { c.settings.SetCaseSensitive(on) }

// SetWholeWord toggles whole-word matching for later searches.
func (c *Controller) SetWholeWord(on bool) { c.settings.SetWholeWord(on) }

// SetRegexEnabled toggles regular expression matching for later searches.
func (c *Controller) SetRegexEnabled(on bool) { c.settings.SetRegexEnabled(on) }

// PatternChanged updates the pattern and searches forward from the cursor,
// including a match that starts at the cursor.
func (c *Controller) PatternChanged(pattern string) bool {
	c.settings.SetPattern(pattern)
	return c.findText(false, 0)
}

// FindNext searches forward from one character past the cursor.
func (c *Controller) FindNext() bool {
	return c.findText(false, 1)
}

// FindPrevious searches backward from the cursor.
func (c *Controller) FindPrevious() bool {
	return c.findText(true, 1)
}

// Submit searches in the direction selected by the Shift key state.
func (c *Controller) Submit() bool {
	return c.findText(c.backwards, 1)
}

// ReplaceOne replaces the current selection with text if the selection is
// exactly the match found at the cursor, then moves to the next match.
// Otherwise it only selects the match. Returns true if text was replaced.
func (c *Controller) ReplaceOne(text string) bool {
	if c.ctx == nil {
		return false
	}
	buf := c.view.Buffer()

	start, end, _ := buf.SelectionBounds()
	if !c.findText(false, 0) {
		return false
	}
	if newStart, newEnd, _ := buf.SelectionBounds(); newStart != start || newEnd != end {
		return false
	}

	if err := c.ctx.Replace(start, end, text); err != nil {
		c.slog.Warn("replace %d..%d: %v", start, end, err)
		return false
	}
	c.findText(false, 0)
	return true
}

// ReplaceAll replaces every match in the buffer with text and returns the
// number of replacements.
func (c *Controller) ReplaceAll(text string) int {
	if c.ctx == nil {
		return 0
	}

	n, err := c.ctx.ReplaceAll(text)
	if err != nil {
		c.slog.Warn("replace all: %v", err)
		return 0
	}
	c.slog.Debug("replaced %d occurrences", n)
	return n
}

// findText searches from the cursor and selects the match. Forward
// searches start startAt characters past the cursor.
func (c *Controller) findText(backwards bool, startAt int) bool {
	if c.ctx == nil {
		return false
	}
	buf := c.view.Buffer()
	wrap, canWrap := c.bar.(WrapIndicator)

	cursor := buf.Cursor()
	c.bar.SetNotFound(false)
	if canWrap {
		wrap.SetWrapped(false)
	}

	var m search.Match
	if backwards {
		m = c.ctx.Backward(cursor)
	} else {
		m = c.ctx.Forward(buf.ForwardChars(cursor, startAt))
	}

	if !m.Found {
		buf.PlaceCursor(cursor)
		c.bar.SetNotFound(true)
		c.last, c.hasLast = buffer.Range{}, false
		if err := c.ctx.Err(); err != nil {
			c.slog.Debug("no match: %v", err)
		}
		return false
	}

	buf.PlaceCursor(m.Start)
	buf.MoveSelectionBound(m.End)
	c.view.ScrollToCursor(ScrollMargin, true, ScrollXAlign, ScrollYAlign)
	if canWrap {
		wrap.SetWrapped(m.Wrapped)
	}
	c.last, c.hasLast = m.Range(), true
	return true
}

func isNil(view View) bool {
	if view == nil {
		return true
	}
	v := reflect.ValueOf(view)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func:
		return v.IsNil()
	}
	return false
}
