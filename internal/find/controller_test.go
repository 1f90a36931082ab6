package find

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/findbar/internal/engine/buffer"
)

type fakeView struct {
	buf     *buffer.Buffer
	scrolls int
}

func (v *fakeView) Buffer() *buffer.Buffer { return v.buf }

func (v *fakeView) ScrollToCursor(withinMargin float64, useAlign bool, xalign, yalign float64) {
	v.scrolls++
}

type fakeBar struct {
	visible  bool
	focused  bool
	notFound bool
	wrapped  bool
}

func (b *fakeBar) Show()                { b.visible = true }
func (b *fakeBar) Hide()                { b.visible = false }
func (b *fakeBar) FocusPattern()        { b.focused = true }
func (b *fakeBar) SetNotFound(nf bool)  { b.notFound = nf }
func (b *fakeBar) SetWrapped(wrap bool) { b.wrapped = wrap }

func setup(text string) (*Controller, *fakeBar, *fakeView) {
	bar := &fakeBar{}
	view := &fakeView{buf: buffer.NewBufferFromString(text)}
	c := New(bar)
	c.Attach(view)
	return c, bar, view
}

func selection(v *fakeView) (buffer.ByteOffset, buffer.ByteOffset) {
	start, end, _ := v.buf.SelectionBounds()
	return start, end
}

func TestFindNextCyclesThroughMatches(t *testing.T) {
	c, bar, view := setup("foo bar foo baz foo")

	require.True(t, c.PatternChanged("foo"))
	start, end := selection(view)
	assert.Equal(t, buffer.ByteOffset(0), start)
	assert.Equal(t, buffer.ByteOffset(3), end)
	assert.Equal(t, start, view.buf.Cursor(), "cursor sits at the match start")

	var seen []buffer.ByteOffset
	for i := 0; i < 3; i++ {
		require.True(t, c.FindNext())
		start, _ = selection(view)
		seen = append(seen, start)
	}
	assert.Equal(t, []buffer.ByteOffset{8, 16, 0}, seen)
	assert.True(t, bar.wrapped, "last step wrapped to the top")
	assert.Equal(t, 4, view.scrolls)
}

func TestFindPreviousWrapsToEnd(t *testing.T) {
	c, bar, view := setup("foo bar foo baz foo")

	require.True(t, c.PatternChanged("foo"))
	require.True(t, c.FindPrevious())

	start, end := selection(view)
	assert.Equal(t, buffer.ByteOffset(16), start)
	assert.Equal(t, buffer.ByteOffset(19), end)
	assert.True(t, bar.wrapped)

	require.True(t, c.FindPrevious())
	start, _ = selection(view)
	assert.Equal(t, buffer.ByteOffset(8), start)
	assert.False(t, bar.wrapped)
}

func TestPatternNotFound(t *testing.T) {
	c, bar, view := setup("hello world")
	view.buf.PlaceCursor(4)

	assert.False(t, c.PatternChanged("xyz"))
	assert.True(t, bar.notFound)
	assert.Equal(t, buffer.ByteOffset(4), view.buf.Cursor())
	assert.True(t, view.buf.Selection().IsEmpty())
	assert.Zero(t, view.scrolls)

	_, ok := c.LastMatch()
	assert.False(t, ok)

	assert.True(t, c.PatternChanged("world"))
	assert.False(t, bar.notFound, "a successful search clears the not-found state")
}

func TestPatternChangedKeepsMatchAtCursor(t *testing.T) {
	c, _, view := setup("abc abc")

	require.True(t, c.PatternChanged("a"))
	require.True(t, c.PatternChanged("ab"))
	start, _ := selection(view)
	assert.Equal(t, buffer.ByteOffset(0), start, "typing extends the match under the cursor")

	require.True(t, c.FindNext())
	start, _ = selection(view)
	assert.Equal(t, buffer.ByteOffset(4), start, "find next skips the match under the cursor")
}

func TestReplaceOneRequiresSelectedMatch(t *testing.T) {
	c, _, view := setup("foo foo")
	c.Settings().SetPattern("foo")

	assert.False(t, c.ReplaceOne("bar"), "nothing selected yet")
	assert.Equal(t, "foo foo", view.buf.Text())
	start, end := selection(view)
	assert.Equal(t, buffer.ByteOffset(0), start)
	assert.Equal(t, buffer.ByteOffset(3), end)

	assert.True(t, c.ReplaceOne("bar"))
	assert.Equal(t, "bar foo", view.buf.Text())
	start, end = selection(view)
	assert.Equal(t, buffer.ByteOffset(4), start)
	assert.Equal(t, buffer.ByteOffset(7), end)
}

func TestReplaceOneWithoutMatch(t *testing.T) {
	c, bar, view := setup("abc")
	c.Settings().SetPattern("x")

	assert.False(t, c.ReplaceOne("y"))
	assert.Equal(t, "abc", view.buf.Text())
	assert.True(t, bar.notFound)
}

func TestReplaceAll(t *testing.T) {
	c, _, view := setup("foo foo foo")
	c.Settings().SetPattern("foo")
	c.HandlePatternKeyDown(KeyShiftLeft)

	assert.Equal(t, 3, c.ReplaceAll("bar"))
	assert.Equal(t, "bar bar bar", view.buf.Text())
	assert.True(t, c.SearchingBackwards(), "replace all leaves the direction alone")
	assert.Zero(t, c.ReplaceAll("bar"))
}

func TestReplaceAllIgnoresCursor(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller, v *fakeView)
	}{
		{"cursor in the middle", func(c *Controller, v *fakeView) {
			v.buf.PlaceCursor(5)
		}},
		{"cursor at the end", func(c *Controller, v *fakeView) {
			v.buf.PlaceCursor(v.buf.Len())
		}},
		{"middle match selected", func(c *Controller, v *fakeView) {
			v.buf.PlaceCursor(4)
			require.True(t, c.PatternChanged("foo"))
			start, end := selection(v)
			require.Equal(t, buffer.ByteOffset(4), start)
			require.Equal(t, buffer.ByteOffset(7), end)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, view := setup("foo foo foo")
			c.Settings().SetPattern("foo")
			tt.setup(c, view)

			assert.Equal(t, 3, c.ReplaceAll("bar"))
			assert.Equal(t, "bar bar bar", view.buf.Text())
		})
	}
}

func TestRegexAnchorsMatchAtLineBounds(t *testing.T) {
	c, bar, view := setup("x\nfoo\n")
	c.SetRegexEnabled(true)

	require.True(t, c.PatternChanged("^foo$"))
	start, end := selection(view)
	assert.Equal(t, buffer.ByteOffset(2), start)
	assert.Equal(t, buffer.ByteOffset(5), end)
	assert.False(t, bar.notFound)
}

func TestFindNextSelectsOverlappingMatch(t *testing.T) {
	c, bar, view := setup("aaaa")

	require.True(t, c.PatternChanged("aa"))
	var got []buffer.Range
	for i := 0; i < 3; i++ {
		require.True(t, c.FindNext())
		start, end := selection(view)
		got = append(got, buffer.Range{Start: start, End: end})
	}
	assert.Equal(t, []buffer.Range{{Start: 1, End: 3}, {Start: 2, End: 4}, {Start: 0, End: 2}}, got)
	assert.True(t, bar.wrapped)

	require.True(t, c.FindPrevious())
	start, end := selection(view)
	assert.Equal(t, buffer.ByteOffset(2), start, "wraps to the last match")
	assert.Equal(t, buffer.ByteOffset(4), end)
}

func TestCaseSensitiveToggle(t *testing.T) {
	c, _, view := setup("Foo foo")

	require.True(t, c.PatternChanged("foo"))
	start, _ := selection(view)
	assert.Equal(t, buffer.ByteOffset(0), start)

	view.buf.PlaceCursor(0)
	c.SetCaseSensitive(true)
	require.True(t, c.PatternChanged("foo"))
	start, _ = selection(view)
	assert.Equal(t, buffer.ByteOffset(4), start)
}

func TestWholeWordAndRegexToggles(t *testing.T) {
	c, _, view := setup("foobar foo x1")

	c.SetWholeWord(true)
	require.True(t, c.PatternChanged("foo"))
	start, _ := selection(view)
	assert.Equal(t, buffer.ByteOffset(7), start)

	c.SetWholeWord(false)
	c.SetRegexEnabled(true)
	require.True(t, c.PatternChanged(`x\d`))
	start, end := selection(view)
	assert.Equal(t, buffer.ByteOffset(11), start)
	assert.Equal(t, buffer.ByteOffset(13), end)
}

func TestHideAndShow(t *testing.T) {
	c, bar, view := setup("foo foo")
	c.Show()
	require.True(t, c.PatternChanged("foo"))
	cursor := view.buf.Cursor()

	c.Hide()
	assert.False(t, bar.visible)
	assert.False(t, c.Context().Highlight())
	assert.Equal(t, "foo", c.Settings().Pattern())
	assert.Equal(t, cursor, view.buf.Cursor())

	c.Show()
	assert.True(t, bar.visible)
	assert.True(t, bar.focused)
	assert.True(t, c.Context().Highlight())
}

func TestEscapeHidesBar(t *testing.T) {
	c, bar, _ := setup("x")
	c.Show()

	assert.False(t, c.HandleBarKeyDown(KeyOther))
	assert.True(t, bar.visible)
	assert.True(t, c.HandleBarKeyDown(KeyEscape))
	assert.False(t, bar.visible)
}

func TestShiftEnterSearchesBackwards(t *testing.T) {
	c, _, view := setup("foo bar foo baz foo")
	require.True(t, c.PatternChanged("foo"))
	require.True(t, c.FindNext())

	assert.False(t, c.HandlePatternKeyDown(KeyShiftRight))
	assert.True(t, c.SearchingBackwards())
	assert.True(t, c.HandlePatternKeyDown(KeyEnter))
	start, _ := selection(view)
	assert.Equal(t, buffer.ByteOffset(0), start)

	c.HandlePatternKeyUp(KeyShiftRight)
	assert.False(t, c.SearchingBackwards())
	assert.True(t, c.HandlePatternKeyDown(KeyEnter))
	start, _ = selection(view)
	assert.Equal(t, buffer.ByteOffset(8), start)
}

func TestNoViewIsNoOp(t *testing.T) {
	bar := &fakeBar{}
	c := New(bar)

	assert.False(t, c.PatternChanged("x"))
	assert.False(t, c.FindNext())
	assert.False(t, c.FindPrevious())
	assert.False(t, c.Submit())
	assert.False(t, c.ReplaceOne("y"))
	assert.Zero(t, c.ReplaceAll("y"))
	assert.False(t, bar.notFound)
	assert.Equal(t, "x", c.Settings().Pattern())
}

func TestAttachNilReleasesContext(t *testing.T) {
	c, _, _ := setup("abc")
	require.NotNil(t, c.Context())
	require.NotEmpty(t, c.Session())

	c.Attach(nil)
	assert.Nil(t, c.Context())
	assert.Nil(t, c.View())
	assert.Empty(t, c.Session())
}

func TestAttachTypedNilView(t *testing.T) {
	c, _, _ := setup("abc")

	var view *fakeView
	require.NotPanics(t, func() { c.Attach(view) })
	assert.Nil(t, c.Context())
	assert.False(t, c.PatternChanged("a"))
}

func TestAttachResetsSession(t *testing.T) {
	c, _, _ := setup("abc")
	first := c.Session()
	c.HandlePatternKeyDown(KeyShiftLeft)

	other := &fakeView{buf: buffer.NewBufferFromString("abc")}
	c.Attach(other)
	assert.NotEqual(t, first, c.Session())
	assert.False(t, c.SearchingBackwards())
	assert.Same(t, other.buf, c.Context().Buffer())
	assert.True(t, c.Context().Highlight())
}

func TestSettingsSurviveAttach(t *testing.T) {
	c, _, _ := setup("abc")
	c.PatternChanged("b")
	c.SetCaseSensitive(true)

	c.Attach(&fakeView{buf: buffer.NewBufferFromString("ABC abc")})
	assert.Equal(t, "b", c.Settings().Pattern())
	assert.True(t, c.Settings().CaseSensitive())
	assert.True(t, c.FindNext())
}
