package ports

// PhraseScanner finds every occurrence of a fixed phrase set in a text using a
// single multi-pattern automaton (Aho-Corasick). One pass over the text reports
// all matches regardless of how many phrases are compiled in: O(n + m + z)
// where n=text length, m=total phrase length, z=number of matches.
//
// The phrase set is fixed at construction. Matching is exact and
// case-sensitive; callers normalize text and phrases before scanning.
type PhraseScanner interface {
	// Scan returns every occurrence of every phrase in text, overlapping
	// occurrences included, ordered by end offset. Returns nil when nothing
	// matches or when the scanner holds no phrases.
	Scan(text string) []PhraseMatch

	// Phrase returns the phrase compiled at index i, or "" when out of range.
	Phrase(i int) string

	// PhraseCount returns the number of distinct phrases compiled in.
	PhraseCount() int
}

// PhraseMatch is one occurrence reported by a PhraseScanner.
// Offsets are byte offsets into the scanned text: text[Start:End] equals
// the phrase at PhraseIndex.
type PhraseMatch struct {
	PhraseIndex int
	Start       int // inclusive
	End         int // exclusive
}
