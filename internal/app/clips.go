package app

import (
	"github.com/corey/kokkai/internal/domain/match"
	"github.com/corey/kokkai/internal/ports"
)

// Alignment is the speech picked for one clip. Err is set (wrapping
// match.ErrNoSpeech) when the clip's speaker has no speech in its minutes.
type Alignment struct {
	Clip   ports.Clip
	Speech ports.Speech
	Score  float64
	Err    error
}

// AlignClips aligns every clip to its best speech.
func (a *App) AlignClips(clips []ports.Clip, speeches []ports.Speech) []Alignment {
	out := make([]Alignment, len(clips))
	missed := 0
	for i, c := range clips {
		s, score, err := match.AlignClip(c, speeches)
		out[i] = Alignment{Clip: c, Speech: s, Score: score, Err: err}
		if err != nil {
			missed++
		}
	}
	a.log.Info("aligned clips", "clips", len(clips), "unaligned", missed)
	return out
}

// ClipTexts returns the transcript text for each aligned clip, falling back
// to the clip title when no speech was found.
func ClipTexts(aligned []Alignment) []string {
	texts := make([]string, len(aligned))
	for i, al := range aligned {
		if al.Err != nil {
			texts[i] = al.Clip.Title
			continue
		}
		texts[i] = al.Speech.Text
	}
	return texts
}

// SimilarClips aligns clips to speeches and ranks, for each clip, the k clips
// whose transcripts cover most of its tokens.
func (a *App) SimilarClips(clips []ports.Clip, speeches []ports.Speech, k int) ([][]match.Scored, error) {
	return match.Similar(clips, ClipTexts(a.AlignClips(clips, speeches)), k)
}
