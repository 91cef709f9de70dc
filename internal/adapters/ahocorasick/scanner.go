// Package ahocorasick provides multi-phrase string matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/kokkai/internal/ports"
)

// Scanner implements ports.PhraseScanner. The automaton is compiled once in
// NewScanner and is read-only afterwards, so Scan is safe for concurrent use.
type Scanner struct {
	automaton aho.AhoCorasick
	phrases   []string
	built     bool
}

// NewScanner compiles a scanner over phrases. Duplicate phrases are collapsed
// (first occurrence keeps its index) and empty strings are dropped, since an
// empty pattern would match at every offset. A scanner with no phrases is
// valid and never reports a match.
func NewScanner(phrases []string) *Scanner {
	seen := make(map[string]struct{}, len(phrases))
	p := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		p = append(p, phrase)
	}

	s := &Scanner{phrases: p}
	if len(p) == 0 {
		return s
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	s.automaton = builder.Build(p)
	s.built = true
	return s
}

// Scan finds all phrase occurrences in text, overlapping ones included, and
// returns them with byte offsets.
func (s *Scanner) Scan(text string) []ports.PhraseMatch {
	if !s.built || len(text) == 0 {
		return nil
	}
	iter := s.automaton.IterOverlappingByte([]byte(text))
	var matches []ports.PhraseMatch
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		matches = append(matches, ports.PhraseMatch{
			PhraseIndex: m.Pattern(),
			Start:       m.Start(),
			End:         m.End(),
		})
	}
	return matches
}

// PhraseCount returns the number of distinct phrases in the automaton.
func (s *Scanner) PhraseCount() int {
	return len(s.phrases)
}

// Phrase returns the phrase string at the given index.
func (s *Scanner) Phrase(idx int) string {
	if idx < 0 || idx >= len(s.phrases) {
		return ""
	}
	return s.phrases[idx]
}

var _ ports.PhraseScanner = (*Scanner)(nil)
