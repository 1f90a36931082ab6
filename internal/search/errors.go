package search

import "errors"

// Errors returned by search context operations.
var (
	// ErrNotAMatch indicates Replace was given a range that is not exactly
	// one of the current matches.
	ErrNotAMatch = errors.New("range is not a current match")

	// ErrNoBuffer indicates the context has no buffer to operate on.
	ErrNoBuffer = errors.New("search context has no buffer")
)
