package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/kokkai/internal/domain/match"
	"github.com/corey/kokkai/internal/ports"
)

var clipSpeeches = []ports.Speech{
	{MinutesID: "m1", Order: 1, Speaker: "Sato", Text: "消費税の増税について"},
	{MinutesID: "m1", Order: 2, Speaker: "Sato", Text: "年金制度の改革"},
	{MinutesID: "m1", Order: 3, Speaker: "Suzuki", Text: "年金と消費税"},
	{MinutesID: "m2", Order: 1, Speaker: "Sato", Text: "原発の再稼働"},
}

func TestAlignClips(t *testing.T) {
	a := New(NewPaths(t.TempDir()), nil, nil)
	clips := []ports.Clip{
		{ClipID: 1, Title: "年金改革", Speaker: "Sato", MinutesID: "m1", Tokens: []string{"年金", "改革"}},
		{ClipID: 2, Title: "質疑", Speaker: "Tanaka", MinutesID: "m1", Tokens: []string{"年金"}},
	}

	aligned := a.AlignClips(clips, clipSpeeches)
	require.Len(t, aligned, 2)

	require.NoError(t, aligned[0].Err)
	assert.Equal(t, 2, aligned[0].Speech.Order)
	assert.Equal(t, 1.0, aligned[0].Score)

	assert.ErrorIs(t, aligned[1].Err, match.ErrNoSpeech)

	texts := ClipTexts(aligned)
	assert.Equal(t, []string{"年金制度の改革", "質疑"}, texts)
}

func TestSimilarClips(t *testing.T) {
	a := New(NewPaths(t.TempDir()), nil, nil)
	clips := []ports.Clip{
		{ClipID: 1, Speaker: "Sato", MinutesID: "m1", Tokens: []string{"消費税", "増税"}},
		{ClipID: 2, Speaker: "Suzuki", MinutesID: "m1", Tokens: []string{"年金", "消費税"}},
		{ClipID: 3, Speaker: "Sato", MinutesID: "m2", Tokens: []string{"原発"}},
	}

	ranked, err := a.SimilarClips(clips, clipSpeeches, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Clip 1's tokens are both in its own transcript, one in clip 2's.
	assert.Equal(t, []match.Scored{{Index: 0, Score: 1}, {Index: 1, Score: 0.5}}, ranked[0])
	assert.Equal(t, 2, ranked[2][0].Index)
}
