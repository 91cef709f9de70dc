package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corey/kokkai/internal/domain/corpus"
	"github.com/corey/kokkai/internal/domain/phrase"
)

// DefaultWindow is the window length, in characters, used by LocateSpeech.
const DefaultWindow = 10

// ErrNoUniqueWindow is returned when no window of a speech occurs in exactly
// one target text.
var ErrNoUniqueWindow = errors.New("no window matches a single target")

// LocateSpeech finds which of targets holds the same speech, typically a
// second transcript of the session with its own timing.
//
// The speaker name (first field) is dropped and the rest joined, then cut
// into consecutive windows of window characters. Windows are tried in order
// and the first one found in exactly one target decides. The last window is
// used only when characters follow it. window <= 0 means DefaultWindow.
// Returns the index of the matching target.
func LocateSpeech(speech string, targets []string, window int) (int, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	var text string
	if fields := strings.Fields(speech); len(fields) > 1 {
		text = strings.Join(fields[1:], "")
	}
	runes := []rune(corpus.Normalize(text))

	var windows []string
	for i := 0; i < len(runes)-window; i += window {
		windows = append(windows, string(runes[i:i+window]))
	}

	idx := phrase.Build(windows)
	for i, t := range targets {
		if err := idx.Index(phrase.DocID(i), corpus.Normalize(t)); err != nil {
			return -1, err
		}
	}
	for _, w := range windows {
		if docs := idx.Documents(w); len(docs) == 1 {
			return int(docs[0]), nil
		}
	}
	return -1, fmt.Errorf("%d windows over %d targets: %w", len(windows), len(targets), ErrNoUniqueWindow)
}
