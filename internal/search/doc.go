// Package search is the matching engine behind the find bar.
//
// Settings holds the user's search configuration. A Context binds Settings
// to one buffer and answers forward/backward match queries relative to an
// offset, always wrapping around the document boundary:
//
//	settings := search.NewSettings()
//	settings.SetPattern("foo")
//
//	ctx := search.NewContext(buf, settings)
//	m := ctx.Forward(0)
//	if m.Found {
//	    buf.PlaceCursor(m.Start)
//	    buf.MoveSelectionBound(m.End)
//	}
//
// Forward and backward queries consider every match start, so a match may
// begin inside the previous one. The cached match list used for counting,
// highlighting and ReplaceAll does not overlap. Regular expressions are
// compiled in multiline mode, so ^ and $ match at line boundaries.
//
// Matching never fails loudly. An empty pattern matches nothing and an
// invalid regular expression matches nothing; the compile error is kept
// and reported by Context.Err.
//
// Whole-word matching uses Unicode word segmentation (UAX #29), so a match
// counts only when both of its ends fall on word boundaries.
package search
