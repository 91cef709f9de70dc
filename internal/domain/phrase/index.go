// Package phrase locates a fixed vocabulary of phrases across many documents.
//
// An Index compiles the whole vocabulary into one Aho-Corasick automaton and
// scans each document once, so the cost per document is linear in its length
// no matter how many phrases are indexed. Three mappings are filled as
// documents are indexed:
//
//	phrase -> doc -> []Span   every occurrence
//	phrase -> {doc}           documents containing the phrase
//	doc    -> {phrase}        phrases occurring in the document
//
// Every recorded span satisfies text[Start:End] == phrase. Matching is exact
// and case-sensitive; normalize text and phrases before building.
//
// The vocabulary is fixed at Build. Documents are indexed once each; the index
// is then read-only and its accessors are safe for concurrent use.
package phrase

import (
	"errors"
	"fmt"
	"sort"

	"github.com/corey/kokkai/internal/adapters/ahocorasick"
	"github.com/corey/kokkai/internal/ports"
)

var (
	// ErrInvalidArgument is returned by Find when the query names neither a
	// phrase nor a document.
	ErrInvalidArgument = errors.New("need to specify phrase or document")

	// ErrDocumentIndexed is returned when a document id is indexed twice.
	ErrDocumentIndexed = errors.New("document already indexed")
)

// DocID identifies a document, usually its position in the caller's slice.
type DocID int

// Span is a half-open byte range [Start, End) of one occurrence.
type Span struct {
	Start int
	End   int
}

// Index is the phrase index. Create it with Build.
type Index struct {
	scanner ports.PhraseScanner

	spans   map[string]map[DocID][]Span
	docs    map[string]map[DocID]struct{}
	phrases map[DocID]map[string]struct{}
	indexed map[DocID]struct{}
}

// Build compiles an index over phrases. Duplicates collapse and empty strings
// are ignored. An empty vocabulary is valid: documents can still be indexed
// and every query comes back empty.
func Build(phrases []string) *Index {
	return New(ahocorasick.NewScanner(phrases))
}

// New creates an index backed by an already compiled scanner.
func New(scanner ports.PhraseScanner) *Index {
	return &Index{
		scanner: scanner,
		spans:   make(map[string]map[DocID][]Span),
		docs:    make(map[string]map[DocID]struct{}),
		phrases: make(map[DocID]map[string]struct{}),
		indexed: make(map[DocID]struct{}),
	}
}

// Index scans text once and records every occurrence of every vocabulary
// phrase, overlapping occurrences included, under doc.
// Each doc may be indexed once; a repeat returns ErrDocumentIndexed and the
// index is left unchanged.
func (x *Index) Index(doc DocID, text string) error {
	if _, ok := x.indexed[doc]; ok {
		return fmt.Errorf("doc %d: %w", doc, ErrDocumentIndexed)
	}
	matches := x.scanner.Scan(text)
	for _, m := range matches {
		if p := x.scanner.Phrase(m.PhraseIndex); text[m.Start:m.End] != p {
			return fmt.Errorf("doc %d: match %q at [%d,%d) does not slice to phrase", doc, p, m.Start, m.End)
		}
	}
	x.indexed[doc] = struct{}{}

	for _, m := range matches {
		p := x.scanner.Phrase(m.PhraseIndex)
		byDoc, ok := x.spans[p]
		if !ok {
			byDoc = make(map[DocID][]Span)
			x.spans[p] = byDoc
		}
		byDoc[doc] = append(byDoc[doc], Span{Start: m.Start, End: m.End})

		ds, ok := x.docs[p]
		if !ok {
			ds = make(map[DocID]struct{})
			x.docs[p] = ds
		}
		ds[doc] = struct{}{}

		ps, ok := x.phrases[doc]
		if !ok {
			ps = make(map[string]struct{})
			x.phrases[doc] = ps
		}
		ps[p] = struct{}{}
	}
	return nil
}

// Spans returns every occurrence of phrase in doc in scan order.
// Returns an empty (non-nil) slice when there is none.
func (x *Index) Spans(phrase string, doc DocID) []Span {
	src := x.spans[phrase][doc]
	out := make([]Span, len(src))
	copy(out, src)
	return out
}

// Contains reports whether phrase occurs at least once in doc.
func (x *Index) Contains(phrase string, doc DocID) bool {
	_, ok := x.docs[phrase][doc]
	return ok
}

// Documents returns the ids of documents containing phrase, ascending.
func (x *Index) Documents(phrase string) []DocID {
	ds := x.docs[phrase]
	out := make([]DocID, 0, len(ds))
	for d := range ds {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Phrases returns the vocabulary phrases occurring in doc, sorted.
func (x *Index) Phrases(doc DocID) []string {
	ps := x.phrases[doc]
	out := make([]string, 0, len(ps))
	for p := range ps {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// PhraseCount reports how many distinct vocabulary phrases occur in doc.
func (x *Index) PhraseCount(doc DocID) int {
	return len(x.phrases[doc])
}

// Vocabulary returns the distinct phrases the index was built over,
// in build order.
func (x *Index) Vocabulary() []string {
	out := make([]string, x.scanner.PhraseCount())
	for i := range out {
		out[i] = x.scanner.Phrase(i)
	}
	return out
}

// Len returns the number of indexed documents.
func (x *Index) Len() int {
	return len(x.indexed)
}
