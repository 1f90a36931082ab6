package history

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dshills/findbar/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when New is given a non-positive limit.
const DefaultMaxEntries = 1000

// CoalesceWindow is the longest pause between insertions that still
// extend the previous undo entry.
const CoalesceWindow = time.Second

// entry is one undo unit.
type entry struct {
	changes []buffer.Change
	at      time.Time
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// applying is set while Undo or Redo edit the buffer.
	applying bool

	maxEntries int
	now        func() time.Time
}

// New creates a history keeping at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Attach records every later change of buf.
func (h *History) Attach(buf *buffer.Buffer) {
	buf.OnChange(h.Record)
}

// Record adds a change to the undo stack and clears the redo stack.
// Changes made by Undo and Redo themselves are ignored.
func (h *History) Record(c buffer.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.applying || len(c.Edits) == 0 {
		return
	}
	h.redoStack = nil

	now := h.now()
	if n := len(h.undoStack); n > 0 {
		last := h.undoStack[n-1]
		if now.Sub(last.at) <= CoalesceWindow && extendsInsert(last, c) {
			prev := &last.changes[0]
			prev.Edits[0].NewText += c.Edits[0].NewText
			prev.After = c.After
			prev.Revision = c.Revision
			last.at = now
			return
		}
	}
	h.pushLocked(&entry{changes: []buffer.Change{c}, at: now})
}

// extendsInsert reports whether c types on right where e's insertion ended.
func extendsInsert(e *entry, c buffer.Change) bool {
	if len(e.changes) != 1 || len(e.changes[0].Edits) != 1 || len(c.Edits) != 1 {
		return false
	}
	prev, next := e.changes[0].Edits[0], c.Edits[0]
	if !prev.Range.IsEmpty() || !next.Range.IsEmpty() || prev.NewText == "" || next.NewText == "" {
		return false
	}
	if strings.Contains(next.NewText, "\n") || strings.HasSuffix(prev.NewText, "\n") {
		return false
	}
	return next.Range.Start == prev.Range.Start+buffer.ByteOffset(len(prev.NewText))
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *entry) {
	h.undoStack = append(h.undoStack, e)

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the newest entry and restores the marks it changed.
func (h *History) Undo(buf *buffer.Buffer) error {
	return h.step(buf, &h.undoStack, &h.redoStack, ErrNothingToUndo, revert)
}

// Redo reapplies the newest undone entry.
func (h *History) Redo(buf *buffer.Buffer) error {
	return h.step(buf, &h.redoStack, &h.undoStack, ErrNothingToRedo, reapply)
}

// step moves the top entry of from to to after applying it to buf. The
// lock is released while the buffer is edited.
func (h *History) step(buf *buffer.Buffer, from, to *[]*entry, empty error, apply func(*buffer.Buffer, *entry) error) error {
	h.mu.Lock()
	if len(*from) == 0 {
		h.mu.Unlock()
		return empty
	}
	e := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	h.applying = true
	h.mu.Unlock()

	err := apply(buf, e)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.applying = false
	if err != nil {
		// Restore entry on failure
		*from = append(*from, e)
		return err
	}
	e.at = time.Time{}
	*to = append(*to, e)
	return nil
}

func revert(buf *buffer.Buffer, e *entry) error {
	for i := len(e.changes) - 1; i >= 0; i-- {
		c := e.changes[i]
		_, err := buf.ReplaceRanges(c.AfterRanges(), func(j int, _ buffer.Range) string {
			return c.Edits[j].OldText
		})
		if err != nil {
			return err
		}
	}
	before := e.changes[0].Before
	buf.SelectRange(before.Insert, before.Bound)
	return nil
}

func reapply(buf *buffer.Buffer, e *entry) error {
	for _, c := range e.changes {
		_, err := buf.ReplaceRanges(c.BeforeRanges(), func(j int, _ buffer.Range) string {
			return c.Edits[j].NewText
		})
		if err != nil {
			return err
		}
	}
	after := e.changes[len(e.changes)-1].After
	buf.SelectRange(after.Insert, after.Bound)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}
