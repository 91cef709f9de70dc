package phrase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_FooBar(t *testing.T) {
	x := Build([]string{"foo", "bar"})
	require.NoError(t, x.Index(0, "foobar"))

	assert.Equal(t, []Span{{0, 3}}, x.Spans("foo", 0))
	assert.Equal(t, []Span{{3, 6}}, x.Spans("bar", 0))
	assert.Equal(t, []string{"bar", "foo"}, x.Phrases(0))
	assert.Equal(t, 2, x.PhraseCount(0))
}

func TestIndex_SpansSliceToPhrase(t *testing.T) {
	texts := []string{
		"the prime minister answered the minister",
		"minister minister minister",
		"no match here",
	}
	x := Build([]string{"minister", "prime minister", "nist"})
	for i, text := range texts {
		require.NoError(t, x.Index(DocID(i), text))
	}
	for _, p := range x.Vocabulary() {
		for i, text := range texts {
			for _, sp := range x.Spans(p, DocID(i)) {
				assert.Equal(t, p, text[sp.Start:sp.End])
			}
		}
	}
	assert.Len(t, x.Spans("minister", 1), 3)
	assert.Len(t, x.Spans("nist", 1), 3)
}

func TestIndex_DocumentsRoundTrip(t *testing.T) {
	// Documents(p) must equal the set of docs whose text contains p.
	vocab := []string{"tax", "budget", "defense", "pension", "ax"}
	texts := []string{
		"tax reform and the budget",
		"defense budget",
		"pension",
		"taxation of pension funds",
		"",
	}
	x := Build(vocab)
	for i, text := range texts {
		require.NoError(t, x.Index(DocID(i), text))
	}
	for _, p := range vocab {
		var want []DocID
		for i, text := range texts {
			if strings.Contains(text, p) {
				want = append(want, DocID(i))
			}
		}
		got := x.Documents(p)
		if want == nil {
			assert.Empty(t, got, p)
			continue
		}
		assert.Equal(t, want, got, p)
	}
}

func TestIndex_MissingKeysAreEmpty(t *testing.T) {
	x := Build([]string{"vote"})
	require.NoError(t, x.Index(0, "no votes cast"))

	assert.NotNil(t, x.Spans("unknown", 0))
	assert.Empty(t, x.Spans("unknown", 0))
	assert.Empty(t, x.Spans("vote", 42))
	assert.Empty(t, x.Documents("unknown"))
	assert.Empty(t, x.Phrases(42))
	assert.False(t, x.Contains("vote", 42))
	assert.True(t, x.Contains("vote", 0))

	// Lookups must not create entries.
	assert.Len(t, x.spans, 1)
	assert.Len(t, x.phrases, 1)
}

func TestIndex_EmptyVocabulary(t *testing.T) {
	x := Build(nil)
	require.NoError(t, x.Index(0, "anything"))
	assert.Equal(t, 1, x.Len())
	assert.Empty(t, x.Vocabulary())
	assert.Empty(t, x.Phrases(0))

	res, err := x.Find(ByDoc(0))
	require.NoError(t, err)
	assert.Empty(t, res.Phrases)
}

func TestIndex_DuplicateDocument(t *testing.T) {
	x := Build([]string{"bill"})
	require.NoError(t, x.Index(3, "bill"))
	err := x.Index(3, "bill bill")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentIndexed))
	assert.Len(t, x.Spans("bill", 3), 1, "state unchanged after rejected re-index")
}

func TestIndex_SpansReturnsCopy(t *testing.T) {
	x := Build([]string{"a"})
	require.NoError(t, x.Index(0, "a"))
	got := x.Spans("a", 0)
	got[0].Start = 99
	assert.Equal(t, 0, x.Spans("a", 0)[0].Start)
}

func TestFind_Modes(t *testing.T) {
	x := Build([]string{"foo", "bar"})
	require.NoError(t, x.Index(0, "foobar"))
	require.NoError(t, x.Index(1, "bar"))

	tests := []struct {
		name string
		q    Query
		want Result
	}{
		{"phrase and doc", At("foo", 0), Result{Spans: []Span{{0, 3}}}},
		{"phrase and doc miss", At("foo", 1), Result{Spans: []Span{}}},
		{"phrase only", ByPhrase("bar"), Result{Docs: []DocID{0, 1}}},
		{"phrase only miss", ByPhrase("baz"), Result{Docs: []DocID{}}},
		{"doc only", ByDoc(0), Result{Phrases: []string{"bar", "foo"}}},
		{"doc only miss", ByDoc(7), Result{Phrases: []string{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.Find(tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind_InvalidArgument(t *testing.T) {
	x := Build([]string{"foo"})
	_, err := x.Find(Query{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
