package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dshills/findbar/internal/engine/buffer"
	"github.com/dshills/findbar/internal/engine/history"
)

// Document represents an open file with its text buffer.
type Document struct {
	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Buffer holds the text and the cursor marks.
	Buffer *buffer.Buffer

	// History records the buffer's changes for undo.
	History *history.History

	savedRev buffer.RevisionID
}

// NewDocument creates a document for path holding content.
func NewDocument(path string, content []byte, opts ...buffer.Option) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}

	text := string(content)
	opts = append([]buffer.Option{buffer.WithDetectedLineEnding(text)}, opts...)
	buf := buffer.NewBufferFromString(text, opts...)
	hist := history.New(history.DefaultMaxEntries)
	hist.Attach(buf)
	return &Document{
		Path:     path,
		Name:     name,
		Buffer:   buf,
		History:  hist,
		savedRev: buf.RevisionID(),
	}
}

// NewScratchDocument creates a new scratch (unsaved) document.
func NewScratchDocument(opts ...buffer.Option) *Document {
	return NewDocument("", nil, opts...)
}

// OpenDocument reads the file at path. A missing file yields an empty
// document that will be created on save.
func OpenDocument(path string, opts ...buffer.Option) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, NewOperationError("open", path, err)
	}
	return NewDocument(absPath, content, opts...), nil
}

// Modified reports whether the buffer changed since it was opened or saved.
func (d *Document) Modified() bool {
	return d.Buffer.RevisionID() != d.savedRev
}

// Save writes the buffer to the document's path using its line ending.
func (d *Document) Save() error {
	if d.Path == "" {
		return NewOperationError("save", d.Name, errors.New("document has no path"))
	}

	rev := d.Buffer.RevisionID()
	if err := os.WriteFile(d.Path, []byte(d.Buffer.Export()), 0o644); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.savedRev = rev
	return nil
}
