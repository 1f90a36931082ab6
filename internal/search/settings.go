package search

import "sync/atomic"

// Settings is the search configuration shared by the find bar and every
// Context created from it. Changes take effect on the next query.
//
// Wrap-around is always on and cannot be changed.
type Settings struct {
	pattern       string
	caseSensitive bool
	wholeWord     bool
	regexEnabled  bool

	// version changes whenever a field changes so contexts can drop
	// cached matches.
	version atomic.Uint64
}

// NewSettings returns settings with an empty pattern and every option off.
func NewSettings() *Settings {
	return &Settings{}
}

// Pattern returns the text to search for.
func (s *Settings) Pattern() string { return s.pattern }

// CaseSensitive reports whether case must match exactly.
func (s *Settings) CaseSensitive() bool { return s.caseSensitive }

// WholeWord reports whether matches must start and end at word boundaries.
func (s *Settings) WholeWord() bool { return s.wholeWord }

// RegexEnabled reports whether the pattern is a regular expression.
func (s *Settings) RegexEnabled() bool { return s.regexEnabled }

// WrapAround reports whether searches continue from the opposite boundary.
// It is always true.
func (s *Settings) WrapAround() bool { return true }

// Version returns a counter that changes on every modification.
func (s *Settings) Version() uint64 { return s.version.Load() }

// SetPattern sets the text to search for.
func (s *Settings) SetPattern(pattern string) {
	if s.pattern == pattern {
		return
	}
	s.pattern = pattern
	s.version.Add(1)
}

// SetCaseSensitive toggles case-sensitive matching.
func (s *Settings) SetCaseSensitive(on bool) {
	s.set(&s.caseSensitive, on)
}

// SetWholeWord toggles whole-word matching.
func (s *Settings) SetWholeWord(on bool) {
	s.set(&s.wholeWord, on)
}

// SetRegexEnabled toggles regular expression matching.
func (s *Settings) SetRegexEnabled(on bool) {
	s.set(&s.regexEnabled, on)
}

func (s *Settings) set(field *bool, on bool) {
	if *field == on {
		return
	}
	*field = on
	s.version.Add(1)
}
