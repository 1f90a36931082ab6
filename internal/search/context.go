package search

import (
	"sort"
	"sync"

	"github.com/dshills/findbar/internal/engine/buffer"
)

// Match is the result of a single forward or backward query.
type Match struct {
	Found bool
	Start buffer.ByteOffset
	End   buffer.ByteOffset

	// Wrapped is set when the match was reached by continuing from the
	// opposite document boundary.
	Wrapped bool
}

// Range returns the match bounds.
func (m Match) Range() buffer.Range {
	return buffer.Range{Start: m.Start, End: m.End}
}

// Context binds Settings to one buffer. The compiled pattern and the list
// of non-overlapping matches are cached until the buffer revision or the
// settings change.
type Context struct {
	mu        sync.Mutex
	buf       *buffer.Buffer
	settings  *Settings
	highlight bool

	cached   bool
	revision buffer.RevisionID
	version  uint64
	text     string
	bounds   []bool
	m        *matcher
	err      error
	matches  []occurrence
}

// NewContext creates a search context over buf using settings.
// Highlighting starts off.
func NewContext(buf *buffer.Buffer, settings *Settings) *Context {
	if settings == nil {
		settings = NewSettings()
	}
	return &Context{buf: buf, settings: settings}
}

// Buffer returns the buffer the context searches.
func (c *Context) Buffer() *buffer.Buffer { return c.buf }

// Settings returns the settings the context reads.
func (c *Context) Settings() *Settings { return c.settings }

// SetHighlight turns highlighting of all matches on or off.
func (c *Context) SetHighlight(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.highlight = on
}

// Highlight reports whether all matches should be highlighted.
func (c *Context) Highlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlight
}

// Err returns the pattern compile error for the current settings, if any.
func (c *Context) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
	return c.err
}

// Occurrences returns the number of non-overlapping matches in the buffer.
func (c *Context) Occurrences() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.refresh())
}

// Matches returns the bounds of every non-overlapping match in the buffer.
func (c *Context) Matches() []buffer.Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ranges(c.refresh())
}

// HighlightedMatches returns the matches overlapping [start, end) when
// highlighting is on, and nil otherwise.
func (c *Context) HighlightedMatches(start, end buffer.ByteOffset) []buffer.Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.highlight {
		return nil
	}

	ms := c.refresh()
	first := sort.Search(len(ms), func(i int) bool { return ms[i].r.End > start })
	var out []buffer.Range
	for _, m := range ms[first:] {
		if m.r.Start >= end {
			break
		}
		out = append(out, m.r)
	}
	return out
}

// Forward returns the nearest match starting at or after pos, including
// one that begins inside an earlier match. If there is none, the search
// wraps to the first match in the buffer.
func (c *Context) Forward(pos buffer.ByteOffset) Match {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.refresh()
	if len(ms) == 0 {
		return Match{}
	}
	if o, ok := c.m.next(c.text, clampOffset(pos, len(c.text)), c.bounds); ok {
		return found(o, false)
	}
	return found(ms[0], true)
}

// Backward returns the match ending at or before pos that starts last.
// If there is none, the search wraps to the last match in the buffer.
func (c *Context) Backward(pos buffer.ByteOffset) Match {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.refresh()
	if len(ms) == 0 {
		return Match{}
	}
	if o, ok := c.m.prev(c.text, clampOffset(pos, len(c.text)), c.bounds); ok {
		return found(o, false)
	}
	o, _ := c.m.prev(c.text, len(c.text), c.bounds)
	return found(o, true)
}

// Replace substitutes the match spanning exactly [start, end) with text.
// In regex mode, $1-style references in text expand to submatches.
func (c *Context) Replace(start, end buffer.ByteOffset, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buf == nil {
		return ErrNoBuffer
	}

	c.refresh()
	if c.m == nil {
		return ErrNotAMatch
	}
	o, ok := accept(c.m.at(c.text, int(start)), c.bounds)
	if !ok || o.r.End != end {
		return ErrNotAMatch
	}

	_, err := c.buf.Replace(start, end, c.expand(text, o))
	return err
}

// ReplaceAll substitutes every non-overlapping match with text as a single
// edit and returns the number of replacements.
func (c *Context) ReplaceAll(text string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buf == nil {
		return 0, ErrNoBuffer
	}

	ms := c.refresh()
	if len(ms) == 0 {
		return 0, nil
	}

	return c.buf.ReplaceRanges(ranges(ms), func(i int, _ buffer.Range) string {
		return c.expand(text, ms[i])
	})
}

func (c *Context) expand(text string, o occurrence) string {
	if !c.settings.RegexEnabled() || c.m == nil {
		return text
	}
	return string(c.m.re.ExpandString(nil, text, c.text, o.sub))
}

// refresh recomputes the match list if the buffer or settings changed.
// Caller holds c.mu.
func (c *Context) refresh() []occurrence {
	if c.buf == nil {
		return nil
	}

	rev := c.buf.RevisionID()
	ver := c.settings.Version()
	if c.cached && rev == c.revision && ver == c.version {
		return c.matches
	}

	c.text = c.buf.Text()
	c.bounds = nil
	if c.settings.WholeWord() {
		c.bounds = wordBoundaries(c.text)
	}
	c.m, c.err = compile(c.settings)
	c.matches = nil
	if c.m != nil {
		c.matches = c.m.findAll(c.text, c.bounds)
	}
	c.revision, c.version, c.cached = rev, ver, true
	return c.matches
}

func clampOffset(pos buffer.ByteOffset, n int) int {
	return int(min(max(pos, 0), buffer.ByteOffset(n)))
}

func found(o occurrence, wrapped bool) Match {
	return Match{Found: true, Start: o.r.Start, End: o.r.End, Wrapped: wrapped}
}

func ranges(ms []occurrence) []buffer.Range {
	if len(ms) == 0 {
		return nil
	}
	out := make([]buffer.Range, len(ms))
	for i, m := range ms {
		out[i] = m.r
	}
	return out
}
