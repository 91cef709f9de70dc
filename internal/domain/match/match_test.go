package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/kokkai/internal/ports"
)

func TestBestSpeech(t *testing.T) {
	speeches := []ports.Speech{
		{Order: 1, Text: "Opening remarks"},
		{Order: 2, Text: "The pension system needs reform"},
		{Order: 3, Text: "Pension"},
	}
	best, err := BestSpeech([]string{"Pension", "reform", "pension"}, speeches)
	require.NoError(t, err)
	assert.Equal(t, 1, best.Index)
	assert.Equal(t, 1.0, best.Score)
}

func TestBestSpeech_FirstMaximumWins(t *testing.T) {
	speeches := []ports.Speech{{Text: "tax"}, {Text: "tax"}}
	best, err := BestSpeech([]string{"tax", "cut"}, speeches)
	require.NoError(t, err)
	assert.Equal(t, 0, best.Index)
	assert.Equal(t, 0.5, best.Score)
}

func TestBestSpeech_NoCandidates(t *testing.T) {
	_, err := BestSpeech([]string{"tax"}, nil)
	assert.ErrorIs(t, err, ErrNoSpeech)
}

func TestBestSpeech_NoTokens(t *testing.T) {
	best, err := BestSpeech(nil, []ports.Speech{{Text: "x"}})
	require.NoError(t, err)
	assert.Equal(t, 0, best.Index)
	assert.Equal(t, 0.0, best.Score)
}

func TestAlignClip(t *testing.T) {
	speeches := []ports.Speech{
		{MinutesID: "m1", Order: 1, Speaker: "sato", Text: "energy policy"},
		{MinutesID: "m1", Order: 2, Speaker: "yamada", Text: "about energy"},
		{MinutesID: "m1", Order: 3, Speaker: "yamada", Text: "nuclear energy policy"},
		{MinutesID: "m2", Order: 1, Speaker: "yamada", Text: "nuclear energy policy"},
	}
	clip := ports.Clip{ClipID: 7, Speaker: "yamada", MinutesID: "m1", Tokens: []string{"nuclear", "policy"}}
	s, score, err := AlignClip(clip, speeches)
	require.NoError(t, err)
	assert.Equal(t, ports.SpeechKey{MinutesID: "m1", Order: 3, Speaker: "yamada"}, s.Key())
	assert.Equal(t, 1.0, score)

	clip.Speaker = "tanaka"
	_, _, err = AlignClip(clip, speeches)
	assert.ErrorIs(t, err, ErrNoSpeech)
}

func TestSimilar(t *testing.T) {
	clips := []ports.Clip{
		{ClipID: 0, Tokens: []string{"pension", "reform"}},
		{ClipID: 1, Tokens: []string{"nuclear"}},
		{ClipID: 2, Tokens: []string{"pension"}},
	}
	texts := []string{
		"pension reform bill",
		"nuclear energy",
		"pension payments",
	}
	got, err := Similar(clips, texts, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []Scored{{0, 1}, {2, 0.5}}, got[0])
	assert.Equal(t, []Scored{{1, 1}, {0, 0}}, got[1])
	assert.Equal(t, []Scored{{0, 1}, {2, 1}}, got[2])
}

func TestSimilar_LengthMismatch(t *testing.T) {
	_, err := Similar([]ports.Clip{{}}, nil, 5)
	assert.Error(t, err)
}
