// Package cluster groups documents that share key-phrase tokens.
//
// The distance between two documents is the share of their key-phrase tokens
// NOT found in the other document's text, counted in both directions:
//
//	distance(i, j) = 1 - matched / total
//
// total counts every token of i's key phrases plus every token of j's;
// matched counts the tokens of i found in j's text plus the tokens of j found
// in i's text. It is a similarity heuristic, not a metric: the triangle
// inequality does not hold. Thresholds (0.5 core, 0.75 sub) are tuned against
// this exact formula. When either document has no key phrases the distance
// is 1.
package cluster

import (
	"strings"
)

// Document is one clustering input. Text and KeyPhrases must already be
// normalized the same way (matching is exact and case-sensitive).
type Document struct {
	Text       string
	KeyPhrases []string
}

// KeyTokens splits every key phrase on whitespace, keeping order and
// duplicates.
func KeyTokens(keyPhrases []string) []string {
	var tokens []string
	for _, p := range keyPhrases {
		tokens = append(tokens, strings.Fields(p)...)
	}
	return tokens
}

// Distance computes the distance between a and b by plain substring search.
// BuildMatrix computes the same value through a shared phrase index; this
// form is kept for one-off comparisons. A document without key phrases has
// no signal and sits at distance 1 from everything, itself included.
func Distance(a, b Document) float64 {
	if len(a.KeyPhrases) == 0 || len(b.KeyPhrases) == 0 {
		return 1
	}
	return coverage(KeyTokens(a.KeyPhrases), KeyTokens(b.KeyPhrases),
		func(tok string) bool { return strings.Contains(b.Text, tok) },
		func(tok string) bool { return strings.Contains(a.Text, tok) },
	)
}

// coverage evaluates the distance formula. inB reports whether a token of a
// occurs in b's text, inA the reverse. No tokens at all means no signal: 1.
func coverage(tokensA, tokensB []string, inB, inA func(string) bool) float64 {
	total, matched := 0, 0
	for _, tok := range tokensA {
		total++
		if inB(tok) {
			matched++
		}
	}
	for _, tok := range tokensB {
		total++
		if inA(tok) {
			matched++
		}
	}
	if total == 0 {
		return 1
	}
	return 1 - float64(matched)/float64(total)
}
