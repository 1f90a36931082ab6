package search

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/findbar/internal/engine/buffer"
)

// occurrence is one match plus its submatch offsets, kept for
// replacement expansion.
type occurrence struct {
	r   buffer.Range
	sub []int
}

// matcher holds the compiled forms of one pattern.
type matcher struct {
	re *regexp.Regexp

	// head and after match only at the start of their input. after first
	// consumes one rune so that line and word assertions at the real start
	// see the preceding text.
	head  *regexp.Regexp
	after *regexp.Regexp
}

// compile turns the settings into a matcher.
// Returns nil, nil for an empty pattern.
func compile(s *Settings) (*matcher, error) {
	pattern := s.Pattern()
	if pattern == "" {
		return nil, nil
	}

	flags := ""
	if s.RegexEnabled() {
		flags += "m"
	} else {
		pattern = regexp.QuoteMeta(pattern)
	}
	if !s.CaseSensitive() {
		flags += "i"
	}
	if flags != "" {
		flags = "(?" + flags + ")"
	}

	re, err := regexp.Compile(flags + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s.Pattern(), err)
	}
	head, err := regexp.Compile(flags + `\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s.Pattern(), err)
	}
	after, err := regexp.Compile(flags + `\A(?s:.)(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s.Pattern(), err)
	}
	return &matcher{re: re, head: head, after: after}, nil
}

// at returns the submatch offsets of the match starting exactly at pos,
// or nil.
func (m *matcher) at(text string, pos int) []int {
	if pos < 0 || pos > len(text) {
		return nil
	}
	if pos == 0 {
		return m.head.FindStringSubmatchIndex(text)
	}

	_, size := utf8.DecodeLastRuneInString(text[:pos])
	from := pos - size
	sub := m.after.FindStringSubmatchIndex(text[from:])
	if sub == nil {
		return nil
	}
	shift(sub, from)
	sub[0] = pos
	return sub
}

// next returns the first acceptable match starting at or after pos. After a
// rejected start the scan resumes one rune later, so the result may begin
// inside an earlier match.
func (m *matcher) next(text string, pos int, bounds []bool) (occurrence, bool) {
	for pos >= 0 && pos <= len(text) {
		// Assertions at the start of a slice do not see the text before
		// it, so a match at pos itself is checked against the whole text.
		if pos > 0 {
			if o, ok := accept(m.at(text, pos), bounds); ok {
				return o, true
			}
		}

		sub := m.re.FindStringSubmatchIndex(text[pos:])
		if sub == nil {
			return occurrence{}, false
		}
		start := sub[0] + pos
		if start > pos || pos == 0 {
			shift(sub, pos)
			if o, ok := accept(sub, bounds); ok {
				return o, true
			}
		}

		if start >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return occurrence{}, false
}

// prev returns the acceptable match with the greatest start among those
// ending at or before pos.
func (m *matcher) prev(text string, pos int, bounds []bool) (occurrence, bool) {
	var best occurrence
	ok := false
	for p := 0; p < pos; {
		o, found := m.next(text, p, bounds)
		if !found || int(o.r.Start) >= pos {
			break
		}
		if int(o.r.End) <= pos {
			best, ok = o, true
		}
		_, size := utf8.DecodeRuneInString(text[o.r.Start:])
		p = int(o.r.Start) + size
	}
	return best, ok
}

// findAll returns every non-overlapping match in text, in order.
func (m *matcher) findAll(text string, bounds []bool) []occurrence {
	var out []occurrence
	for pos := 0; pos <= len(text); {
		o, ok := m.next(text, pos, bounds)
		if !ok {
			break
		}
		out = append(out, o)
		pos = int(o.r.End)
	}
	return out
}

// accept drops empty matches and, when bounds is set, matches whose ends
// are not both on word boundaries.
func accept(sub []int, bounds []bool) (occurrence, bool) {
	if sub == nil {
		return occurrence{}, false
	}
	start, end := sub[0], sub[1]
	if start == end {
		return occurrence{}, false
	}
	if bounds != nil && !(bounds[start] && bounds[end]) {
		return occurrence{}, false
	}
	return occurrence{
		r:   buffer.Range{Start: buffer.ByteOffset(start), End: buffer.ByteOffset(end)},
		sub: sub,
	}, true
}

func shift(sub []int, by int) {
	for i, v := range sub {
		if v >= 0 {
			sub[i] = v + by
		}
	}
}

// wordBoundaries marks every byte offset of text that sits on a Unicode
// word boundary. The slice has len(text)+1 entries.
func wordBoundaries(text string) []bool {
	bounds := make([]bool, len(text)+1)
	bounds[0] = true

	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		offset += len(word)
		bounds[offset] = true
	}
	return bounds
}
