package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style used when exporting text.
// Text is always held with "\n" internally.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds document text plus the insert and selection-bound marks.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []ByteOffset
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	sel        Selection
	onChange   func(Change)
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.reindex()
	return b
}

// NewBufferFromString creates a buffer with initial content.
// The cursor starts at offset 0.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = normalizeLineEndings(s)
	b.reindex()
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader, detecting the
// line ending style of the content.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := string(data)
	opts = append([]Option{WithDetectedLineEnding(s)}, opts...)
	return NewBufferFromString(s, opts...), nil
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line start table. Caller holds the write lock.
func (b *Buffer) reindex() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, ByteOffset(i+1))
		}
	}
}

// Read Operations

// Text returns the full buffer content with "\n" line endings.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Export returns the buffer content using the buffer's line ending style.
func (b *Buffer) Export() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.lineEnding == LineEndingLF {
		return b.text
	}
	return strings.ReplaceAll(b.text, "\n", b.lineEnding.Sequence())
}

// TextRange returns text in the given byte range. The range is clamped to
// the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clamp(start), b.clamp(end)
	if start > end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.lineStarts[line]:b.lineEnd(line)]
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	return b.lineStarts[line]
}

// lineEnd returns the offset of the end of a line, before its newline.
func (b *Buffer) lineEnd(line uint32) ByteOffset {
	if int(line)+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return ByteOffset(len(b.text))
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{Line: uint32(line), Column: uint32(offset - b.lineStarts[line])}
}

// PointToOffset converts line/column to byte offset.
// Columns past the end of the line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(p.Line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	off := b.lineStarts[p.Line] + ByteOffset(p.Column)
	if end := b.lineEnd(p.Line); off > end {
		off = end
	}
	return off
}

// ForwardChars returns the offset n runes after offset, stopping at the end
// of the buffer. Negative n moves backward, stopping at 0.
func (b *Buffer) ForwardChars(offset ByteOffset, n int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	for ; n > 0 && offset < ByteOffset(len(b.text)); n-- {
		_, size := utf8.DecodeRuneInString(b.text[offset:])
		offset += ByteOffset(size)
	}
	for ; n < 0 && offset > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(b.text[:offset])
		offset -= ByteOffset(size)
	}
	return offset
}

func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if n := ByteOffset(len(b.text)); offset > n {
		return n
	}
	return offset
}

// Marks

// Cursor returns the offset of the insert mark.
func (b *Buffer) Cursor() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sel.Insert
}

// Selection returns both marks.
func (b *Buffer) Selection() Selection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sel
}

// SelectionBounds returns the ordered selection bounds and whether the
// selection is non-empty. With no selection both bounds are the cursor.
func (b *Buffer) SelectionBounds() (start, end ByteOffset, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := b.sel.Range()
	return r.Start, r.End, !r.IsEmpty()
}

// PlaceCursor moves both marks to offset, collapsing any selection.
func (b *Buffer) PlaceCursor(offset ByteOffset) {
	b.mu.Lock()
	defer b.mu.Unlock()
	offset = b.clamp(offset)
	b.sel = Selection{Insert: offset, Bound: offset}
}

// MoveSelectionBound moves only the selection-bound mark.
func (b *Buffer) MoveSelectionBound(offset ByteOffset) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel.Bound = b.clamp(offset)
}

// SelectRange places the insert mark at ins and the selection bound at bound.
func (b *Buffer) SelectRange(ins, bound ByteOffset) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel = Selection{Insert: b.clamp(ins), Bound: b.clamp(bound)}
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if offset < 0 || offset > b.Len() {
		return 0, ErrOffsetOutOfRange
	}
	return b.Replace(offset, offset, text)
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	if start < 0 || start > end || end > ByteOffset(len(b.text)) {
		b.mu.Unlock()
		return 0, ErrRangeInvalid
	}
	c := b.apply([]Range{{Start: start, End: end}}, func(int, Range) string { return text })
	b.mu.Unlock()

	b.notify(c)
	e := c.Edits[0]
	return e.Range.Start + ByteOffset(len(e.NewText)), nil
}

// ReplaceRanges replaces each range with the text produced for it, as a
// single change. Ranges must be sorted and must not overlap.
// Returns the number of ranges replaced.
func (b *Buffer) ReplaceRanges(ranges []Range, text func(i int, r Range) string) (int, error) {
	b.mu.Lock()
	var prev ByteOffset
	for _, r := range ranges {
		if r.Start < prev || r.Start > r.End || r.End > ByteOffset(len(b.text)) {
			b.mu.Unlock()
			return 0, ErrRangeInvalid
		}
		prev = r.End
	}
	if len(ranges) == 0 {
		b.mu.Unlock()
		return 0, nil
	}
	c := b.apply(ranges, text)
	b.mu.Unlock()

	b.notify(c)
	return len(ranges), nil
}

// OnChange registers fn to be called after every edit, outside the buffer
// lock. A nil fn removes the listener.
func (b *Buffer) OnChange(fn func(Change)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

func (b *Buffer) notify(c Change) {
	b.mu.RLock()
	fn := b.onChange
	b.mu.RUnlock()
	if fn != nil {
		fn(c)
	}
}

// apply performs validated, sorted edits and describes them. Caller holds
// the write lock.
func (b *Buffer) apply(ranges []Range, text func(i int, r Range) string) Change {
	c := Change{Edits: make([]Edit, len(ranges)), Before: b.sel}
	for i, r := range ranges {
		c.Edits[i] = Edit{
			Range:   r,
			OldText: b.text[r.Start:r.End],
			NewText: normalizeLineEndings(text(i, r)),
		}
	}

	// Apply back to front so earlier offsets stay valid.
	for i := len(c.Edits) - 1; i >= 0; i-- {
		e := c.Edits[i]
		b.replace(e.Range.Start, e.Range.End, e.NewText)
	}
	c.After = b.sel
	c.Revision = b.revisionID
	return c
}

// replace swaps [start, end) for text and moves the marks. Caller holds the
// write lock and has validated the range.
func (b *Buffer) replace(start, end ByteOffset, text string) ByteOffset {
	text = normalizeLineEndings(text)
	b.text = b.text[:start] + text + b.text[end:]
	b.reindex()
	b.revisionID = NewRevisionID()

	newEnd := start + ByteOffset(len(text))
	b.sel.Insert = shiftMark(b.sel.Insert, start, end, newEnd)
	b.sel.Bound = shiftMark(b.sel.Bound, start, end, newEnd)
	return newEnd
}

// shiftMark applies right gravity to a mark for an edit of [start, end)
// whose replacement ends at newEnd.
func shiftMark(mark, start, end, newEnd ByteOffset) ByteOffset {
	switch {
	case mark < start:
		return mark
	case mark <= end:
		return newEnd
	default:
		return mark + newEnd - end
	}
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}
