// Package history provides undo and redo for a text buffer.
//
// A History listens to a buffer's changes and keeps them on an undo stack.
// Undo applies the inverse of the newest change and restores the marks it
// had before; Redo applies it again:
//
//	h := history.New(1000) // keep at most 1000 undo entries
//	h.Attach(buf)
//
//	buf.Insert(0, "x")
//	h.Undo(buf)
//	h.Redo(buf)
//
// # Coalescing
//
// Consecutive single-line insertions that continue each other within a
// short window form one undo entry, so undo removes a typed word rather
// than one character. A change spanning several ranges, such as a replace
// all, is always a single entry.
package history
