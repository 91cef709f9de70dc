package cluster

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vocabulary = []string{
	"budget", "pension", "defense", "tariff", "nuclear", "energy", "school",
	"tax", "child", "care", "farm", "fishery", "rail", "vaccine", "border",
}

// randomCorpus builds a deterministic corpus where each speech quotes some of
// its own words as key phrases. Roughly one speech in six has none.
func randomCorpus(seed uint64, n int) []Document {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	docs := make([]Document, n)
	for i := range docs {
		words := make([]string, 4+r.IntN(8))
		for k := range words {
			words[k] = vocabulary[r.IntN(len(vocabulary))]
		}
		docs[i].Text = strings.Join(words, " ")
		if r.IntN(6) == 0 {
			continue
		}
		for p := 0; p < 1+r.IntN(3); p++ {
			start := r.IntN(len(words))
			end := min(len(words), start+1+r.IntN(2))
			docs[i].KeyPhrases = append(docs[i].KeyPhrases, strings.Join(words[start:end], " "))
		}
	}
	return docs
}

func TestKeyTokens(t *testing.T) {
	assert.Equal(t, []string{"alpha", "beta", "gamma", "alpha"},
		KeyTokens([]string{"alpha beta", " gamma ", "alpha"}))
	assert.Empty(t, KeyTokens(nil))
	assert.Empty(t, KeyTokens([]string{"   "}))
}

func TestDistance_Identical(t *testing.T) {
	d := Document{Text: "alpha beta gamma", KeyPhrases: []string{"alpha beta"}}
	assert.Equal(t, 0.0, Distance(d, d))
}

func TestDistance_NoKeyPhrases(t *testing.T) {
	a := Document{Text: "alpha beta"}
	b := Document{Text: "alpha beta"}
	assert.Equal(t, 1.0, Distance(a, b))
}

func TestDistance_Partial(t *testing.T) {
	a := Document{Text: "tax reform now", KeyPhrases: []string{"tax reform"}}
	b := Document{Text: "tax cut", KeyPhrases: []string{"tax cut"}}
	// a->b: tax yes, reform no. b->a: tax yes, cut no. 2 of 4 matched.
	assert.InDelta(t, 0.5, Distance(a, b), 1e-12)
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_OneSidedHasNoSignal(t *testing.T) {
	// b's token occurs in a's text, but a carries no key phrases.
	a := Document{Text: "energy policy"}
	b := Document{Text: "energy", KeyPhrases: []string{"energy"}}
	assert.Equal(t, 1.0, Distance(a, b))
	assert.Equal(t, 1.0, Distance(b, a))
	assert.Equal(t, 1.0, Distance(a, a))

	m, err := BuildMatrix(context.Background(), []Document{a, b}, 1)
	require.NoError(t, err)
	assert.Equal(t, Distance(a, b), m.At(0, 1))
	assert.Equal(t, Distance(b, b), m.At(1, 1))
}

func TestBuildMatrix_ThreeSpeechExample(t *testing.T) {
	docs := []Document{
		{Text: "alpha beta gamma", KeyPhrases: []string{"alpha beta"}},
		{Text: "alpha beta delta", KeyPhrases: []string{"alpha beta"}},
		{Text: "zeta eta", KeyPhrases: []string{"zeta eta"}},
	}
	m, err := BuildMatrix(context.Background(), docs, 2)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, m.At(0, 1), 1e-12)
	// Containment is by substring: "eta" occurs inside "beta", so one of the
	// four tokens matches across.
	assert.InDelta(t, 0.75, m.At(0, 2), 1e-12)
	assert.InDelta(t, 0.75, m.At(1, 2), 1e-12)
	assert.Equal(t, 4, m.Vocabulary)
}

func TestBuildMatrix_DisjointWords(t *testing.T) {
	docs := []Document{
		{Text: "alpha beta gamma", KeyPhrases: []string{"alpha beta"}},
		{Text: "alpha beta delta", KeyPhrases: []string{"alpha beta"}},
		{Text: "zeta omicron", KeyPhrases: []string{"zeta omicron"}},
	}
	m, err := BuildMatrix(context.Background(), docs, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.At(0, 1))
	assert.Equal(t, 1.0, m.At(0, 2))
	assert.Equal(t, 1.0, m.At(1, 2))
}

func TestBuildMatrix_MatchesNaiveDistance(t *testing.T) {
	docs := randomCorpus(7, 40)
	m, err := BuildMatrix(context.Background(), docs, 4)
	require.NoError(t, err)
	require.Equal(t, len(docs), m.Len())

	for i := range docs {
		for j := range docs {
			want := Distance(docs[i], docs[j])
			assert.InDelta(t, want, m.At(i, j), 1e-12, "(%d,%d)", i, j)
		}
	}
}

func TestBuildMatrix_Symmetric(t *testing.T) {
	docs := randomCorpus(11, 30)
	m, err := BuildMatrix(context.Background(), docs, 3)
	require.NoError(t, err)
	for i := 0; i < m.Len(); i++ {
		for j := 0; j < m.Len(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.GreaterOrEqual(t, m.At(i, j), 0.0)
			assert.LessOrEqual(t, m.At(i, j), 1.0)
		}
	}
}

func TestBuildMatrix_SelfDistance(t *testing.T) {
	docs := randomCorpus(3, 25)
	m, err := BuildMatrix(context.Background(), docs, 1)
	require.NoError(t, err)
	for i, d := range docs {
		if len(d.KeyPhrases) == 0 {
			continue
		}
		// Key phrases are quoted from the text, so every token is found.
		assert.Equal(t, 0.0, m.At(i, i), "doc %d", i)
	}
}

func TestBuildMatrix_NoSignalRule(t *testing.T) {
	docs := []Document{
		{Text: "budget budget", KeyPhrases: []string{"budget"}},
		{Text: "budget budget"},
		{Text: "budget", KeyPhrases: []string{"budget"}},
	}
	m, err := BuildMatrix(context.Background(), docs, 0)
	require.NoError(t, err)
	for j := range docs {
		assert.Equal(t, 1.0, m.At(1, j))
		assert.Equal(t, 1.0, m.At(j, 1))
	}
	assert.Equal(t, 0.0, m.At(0, 2))
}

func TestBuildMatrix_Empty(t *testing.T) {
	m, err := BuildMatrix(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.FindCluster(0.5, 0.75).Centroid)
}

func TestBuildMatrix_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildMatrix(ctx, randomCorpus(1, 5), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatrix_Exclude(t *testing.T) {
	docs := []Document{
		{Text: "a b", KeyPhrases: []string{"a"}},
		{Text: "a b", KeyPhrases: []string{"a"}},
		{Text: "a b", KeyPhrases: []string{"b"}},
	}
	m, err := BuildMatrix(context.Background(), docs, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, m.At(0, 1))

	m.Exclude(1)
	for j := 0; j < 3; j++ {
		assert.Equal(t, 1.0, m.At(1, j))
		assert.Equal(t, 1.0, m.At(j, 1))
	}
	assert.Equal(t, 0.0, m.At(0, 2))
}

func BenchmarkBuildMatrix(b *testing.B) {
	docs := randomCorpus(42, 300)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildMatrix(ctx, docs, 0); err != nil {
			b.Fatal(err)
		}
	}
}
