// Package corpus loads speech and clip records and prepares them for matching.
//
// Records arrive as JSONL produced by the scraper and key-phrase extractor.
// Matching downstream is exact and case-sensitive, so text and key phrases go
// through the same Normalize before they meet.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/corey/kokkai/internal/domain/cluster"
	"github.com/corey/kokkai/internal/ports"
)

// maxLineBytes bounds a single JSONL record. Full-session speeches run long.
const maxLineBytes = 16 << 20

// annotationRe matches stenographer annotations (〔拍手〕 and the like) and
// horizontal rules.
var annotationRe = regexp.MustCompile(`〔[^〔〕]+〕|─|―`)

// Normalize folds full-width and compatibility forms (NFKC) and lowercases.
func Normalize(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

// CleanSpeechText strips a raw minutes speech down to its content: the first
// whitespace-separated field (the speaker's name) is dropped, the remaining
// fields are joined without separator, and annotations are removed.
func CleanSpeechText(text string) string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return ""
	}
	return annotationRe.ReplaceAllString(strings.Join(fields[1:], ""), "")
}

// LoadSpeeches reads one ports.Speech per line. Blank lines are skipped.
func LoadSpeeches(r io.Reader) ([]ports.Speech, error) {
	var speeches []ports.Speech
	err := eachLine(r, func(line []byte, n int) error {
		var s ports.Speech
		if err := json.Unmarshal(line, &s); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		speeches = append(speeches, s)
		return nil
	})
	return speeches, err
}

// LoadClips reads one ports.Clip per line. Blank lines are skipped.
func LoadClips(r io.Reader) ([]ports.Clip, error) {
	var clips []ports.Clip
	err := eachLine(r, func(line []byte, n int) error {
		var c ports.Clip
		if err := json.Unmarshal(line, &c); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		clips = append(clips, c)
		return nil
	})
	return clips, err
}

func eachLine(r io.Reader, fn func(line []byte, n int) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if err := fn(line, n); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("line %d: %w", n+1, err)
	}
	return nil
}

// Documents converts speeches into clustering input, normalizing text and
// key phrases. When clean is set the raw minutes text is cleaned first.
// Document i corresponds to speeches[i].
func Documents(speeches []ports.Speech, clean bool) []cluster.Document {
	docs := make([]cluster.Document, len(speeches))
	for i, s := range speeches {
		text := s.Text
		if clean {
			text = CleanSpeechText(text)
		}
		docs[i].Text = Normalize(text)
		if len(s.KeyPhrases) > 0 {
			docs[i].KeyPhrases = make([]string, len(s.KeyPhrases))
			for k, p := range s.KeyPhrases {
				docs[i].KeyPhrases[k] = Normalize(p)
			}
		}
	}
	return docs
}
