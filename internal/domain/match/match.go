// Package match aligns video clips with transcript speeches and with each
// other by counting which clip tokens occur in a text.
package match

import (
	"errors"
	"fmt"
	"sort"

	"github.com/corey/kokkai/internal/domain/corpus"
	"github.com/corey/kokkai/internal/domain/phrase"
	"github.com/corey/kokkai/internal/ports"
)

// ErrNoSpeech is returned when a clip has no candidate speech.
var ErrNoSpeech = errors.New("no candidate speech")

// Scored is a candidate with its token coverage in [0, 1].
type Scored struct {
	Index int
	Score float64
}

// distinct returns the normalized, de-duplicated tokens in first-seen order.
func distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = corpus.Normalize(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// BestSpeech finds the speech covering the largest share of tokens.
// The score is |tokens found in the speech| / |tokens|, over distinct tokens.
// The first speech with the highest score wins. Speech texts are normalized
// here; tokens too.
func BestSpeech(tokens []string, speeches []ports.Speech) (Scored, error) {
	if len(speeches) == 0 {
		return Scored{}, ErrNoSpeech
	}
	toks := distinct(tokens)
	idx := phrase.Build(toks)

	best := Scored{Index: -1}
	for i, s := range speeches {
		doc := phrase.DocID(i)
		if err := idx.Index(doc, corpus.Normalize(s.Text)); err != nil {
			return Scored{}, err
		}
		score := 0.0
		if len(toks) > 0 {
			score = float64(idx.PhraseCount(doc)) / float64(len(toks))
		}
		if best.Index < 0 || score > best.Score {
			best = Scored{Index: i, Score: score}
		}
	}
	return best, nil
}

// AlignClip picks the best speech for clip among those given by the clip's
// speaker in the clip's minutes.
func AlignClip(clip ports.Clip, speeches []ports.Speech) (ports.Speech, float64, error) {
	var candidates []ports.Speech
	for _, s := range speeches {
		if s.Speaker == clip.Speaker && (clip.MinutesID == "" || s.MinutesID == clip.MinutesID) {
			candidates = append(candidates, s)
		}
	}
	best, err := BestSpeech(clip.Tokens, candidates)
	if err != nil {
		return ports.Speech{}, 0, fmt.Errorf("clip %d: minutes %s has no speech from %s: %w",
			clip.ClipID, clip.MinutesID, clip.Speaker, err)
	}
	return candidates[best.Index], best.Score, nil
}

// Similar ranks, for every clip, the k clips whose text covers most of its
// tokens. texts[i] is the transcript text attached to clips[i].
// score(src, trg) = |tokens(src) found in texts[trg]| / |tokens(src)|.
// A clip is compared with itself too. Results per clip are ordered by score
// descending, then by clip position.
func Similar(clips []ports.Clip, texts []string, k int) ([][]Scored, error) {
	if len(texts) != len(clips) {
		return nil, fmt.Errorf("got %d texts for %d clips", len(texts), len(clips))
	}

	tokens := make([][]string, len(clips))
	var vocab []string
	for i, c := range clips {
		tokens[i] = distinct(c.Tokens)
		vocab = append(vocab, tokens[i]...)
	}
	idx := phrase.Build(vocab)
	for i, text := range texts {
		if err := idx.Index(phrase.DocID(i), corpus.Normalize(text)); err != nil {
			return nil, err
		}
	}

	out := make([][]Scored, len(clips))
	for src := range clips {
		scores := make([]Scored, 0, len(clips))
		for trg := range clips {
			s := 0.0
			if n := len(tokens[src]); n > 0 {
				hit := 0
				for _, tok := range tokens[src] {
					if idx.Contains(tok, phrase.DocID(trg)) {
						hit++
					}
				}
				s = float64(hit) / float64(n)
			}
			scores = append(scores, Scored{Index: trg, Score: s})
		}
		sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
		if k > 0 && len(scores) > k {
			scores = scores[:k]
		}
		out[src] = scores
	}
	return out, nil
}
