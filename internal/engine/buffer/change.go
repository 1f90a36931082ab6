package buffer

// Edit is one replaced span of a change. Range is in the coordinates of
// the text before the change.
type Edit struct {
	Range   Range
	OldText string
	NewText string
}

// Change describes one edit call: its spans in ascending order and the
// marks before and after it.
type Change struct {
	Edits    []Edit
	Before   Selection
	After    Selection
	Revision RevisionID
}

// AfterRanges returns the span each edit occupies in the text after the
// change.
func (c Change) AfterRanges() []Range {
	out := make([]Range, len(c.Edits))
	var delta ByteOffset
	for i, e := range c.Edits {
		start := e.Range.Start + delta
		out[i] = Range{Start: start, End: start + ByteOffset(len(e.NewText))}
		delta += ByteOffset(len(e.NewText)) - e.Range.Len()
	}
	return out
}

// BeforeRanges returns the span each edit replaced.
func (c Change) BeforeRanges() []Range {
	out := make([]Range, len(c.Edits))
	for i, e := range c.Edits {
		out[i] = e.Range
	}
	return out
}
