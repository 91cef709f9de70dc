// Package topic assigns clips to hand-written topics.
//
// A topic is defined by a condition string: groups separated by ';' are OR-ed,
// phrases inside a group (separated by whitespace) are AND-ed.
//
//	"pension reform;年金" = (pension AND reform) OR 年金
package topic

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/corey/kokkai/internal/domain/corpus"
	"github.com/corey/kokkai/internal/domain/phrase"
	"github.com/corey/kokkai/internal/ports"
)

// ErrEmptyCondition is returned for a condition without any phrase.
var ErrEmptyCondition = errors.New("empty topic condition")

// Condition is an OR of AND-groups of phrases.
type Condition [][]string

// ParseCondition parses "a b;c". Empty groups are ignored.
func ParseCondition(s string) (Condition, error) {
	var c Condition
	for _, item := range strings.Split(s, ";") {
		group := strings.Fields(item)
		if len(group) > 0 {
			c = append(c, group)
		}
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("%q: %w", s, ErrEmptyCondition)
	}
	return c, nil
}

// Matches reports whether every phrase of some group occurs in text.
func (c Condition) Matches(text string) bool {
	return c.matchesFunc(func(p string) bool { return strings.Contains(text, p) })
}

func (c Condition) matchesFunc(has func(string) bool) bool {
	for _, group := range c {
		ok := true
		for _, p := range group {
			if !has(p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Topic is a named condition.
type Topic struct {
	ID         int    `yaml:"topic_id"`
	Title      string `yaml:"title"`
	CategoryID int    `yaml:"category_id"`
	Query      string `yaml:"query"`

	cond Condition
}

// Condition returns the parsed query. Valid after LoadTopics or Compile.
func (t *Topic) Condition() Condition { return t.cond }

// Compile parses the topic query, normalized.
func (t *Topic) Compile() error {
	c, err := ParseCondition(corpus.Normalize(t.Query))
	if err != nil {
		return fmt.Errorf("topic %d: %w", t.ID, err)
	}
	t.cond = c
	return nil
}

// LoadTopics reads a YAML list of topics and compiles each query.
func LoadTopics(r io.Reader) ([]Topic, error) {
	var topics []Topic
	if err := yaml.NewDecoder(r).Decode(&topics); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	for i := range topics {
		if err := topics[i].Compile(); err != nil {
			return nil, err
		}
	}
	return topics, nil
}

// Assignment maps clips to the topics they match and back.
// Id lists are ascending.
type Assignment struct {
	ClipTopics map[int][]int `json:"clip_topics"`
	TopicClips map[int][]int `json:"topic_clips"`
}

// Assign matches every clip title against every topic. One phrase index is
// built over all condition phrases and each title is scanned once; only
// topics sharing at least one phrase with a title are evaluated.
// Topics must be compiled.
func Assign(topics []Topic, clips []ports.Clip) (*Assignment, error) {
	usedBy := make(map[string][]int) // phrase -> topic positions
	var vocab []string
	for ti, t := range topics {
		for _, group := range t.cond {
			for _, p := range group {
				if l := usedBy[p]; len(l) == 0 || l[len(l)-1] != ti {
					usedBy[p] = append(l, ti)
				}
				vocab = append(vocab, p)
			}
		}
	}

	idx := phrase.Build(vocab)
	a := &Assignment{
		ClipTopics: make(map[int][]int, len(clips)),
		TopicClips: make(map[int][]int, len(topics)),
	}
	for ci, clip := range clips {
		doc := phrase.DocID(ci)
		if err := idx.Index(doc, corpus.Normalize(clip.Title)); err != nil {
			return nil, fmt.Errorf("clip %d: %w", clip.ClipID, err)
		}

		candidates := make(map[int]struct{})
		for _, p := range idx.Phrases(doc) {
			for _, ti := range usedBy[p] {
				candidates[ti] = struct{}{}
			}
		}
		matched := make([]int, 0, len(candidates))
		for ti := range candidates {
			if topics[ti].cond.matchesFunc(func(p string) bool { return idx.Contains(p, doc) }) {
				matched = append(matched, ti)
			}
		}
		sort.Ints(matched)
		for _, ti := range matched {
			id := topics[ti].ID
			a.ClipTopics[clip.ClipID] = append(a.ClipTopics[clip.ClipID], id)
			a.TopicClips[id] = append(a.TopicClips[id], clip.ClipID)
		}
	}
	return a, nil
}

// Suggestion is a candidate phrase for a new topic.
type Suggestion struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Scope selects the clips Suggest counts over. The zero Scope is Unassigned.
type Scope struct {
	all     bool
	topicID int
	inTopic bool
}

// Unassigned selects the clips no topic matched.
func Unassigned() Scope { return Scope{} }

// AllClips selects every clip.
func AllClips() Scope { return Scope{all: true} }

// InTopic selects the clips assigned to topic id.
func InTopic(id int) Scope { return Scope{topicID: id, inTopic: true} }

func (s Scope) includes(clipID int, a *Assignment) bool {
	switch {
	case s.all:
		return true
	case s.inTopic:
		return slices.Contains(a.ClipTopics[clipID], s.topicID)
	default:
		return len(a.ClipTopics[clipID]) == 0
	}
}

// Suggest counts clip tokens of at least minLen runes over the clips in
// scope, most frequent first (ties by phrase).
func Suggest(clips []ports.Clip, a *Assignment, scope Scope, minLen int) []Suggestion {
	counts := make(map[string]int)
	for _, clip := range clips {
		if !scope.includes(clip.ClipID, a) {
			continue
		}
		for _, tok := range clip.Tokens {
			if utf8.RuneCountInString(tok) >= minLen {
				counts[tok]++
			}
		}
	}
	out := make([]Suggestion, 0, len(counts))
	for p, n := range counts {
		out = append(out, Suggestion{Phrase: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Phrase < out[j].Phrase
	})
	return out
}
