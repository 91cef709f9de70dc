package ports

// Speech is one transcript entry of a session's minutes. Text and KeyPhrases
// are produced upstream (scraper + key-phrase extractor); this module only
// normalizes them.
type Speech struct {
	MinutesID  string   `json:"minutes_id"`
	Order      int      `json:"order"`
	Speaker    string   `json:"speaker"`
	Text       string   `json:"text"`
	KeyPhrases []string `json:"key_phrases"`
}

// Key returns the archive-wide identity of the speech.
func (s Speech) Key() SpeechKey {
	return SpeechKey{MinutesID: s.MinutesID, Order: s.Order, Speaker: s.Speaker}
}

// Clip is a video clip of a session. Tokens are the content words extracted
// from the clip title.
type Clip struct {
	ClipID    int      `json:"clip_id"`
	Title     string   `json:"title"`
	Speaker   string   `json:"speaker"`
	MinutesID string   `json:"minutes_id"`
	Tokens    []string `json:"tokens"`
}
