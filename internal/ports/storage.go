// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// Storage persists clustering runs to durable storage.
// The backing store (bbolt) is corpus-scoped: each corpusID gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// The PhraseIndex and distance matrix are never stored: they are rebuilt for
// every run. Only the resulting clusters are kept.
type Storage interface {
	// SaveRun persists one clustering run under its corpus.
	// A run with the same ID overwrites the earlier one.
	SaveRun(corpusID string, run *ClusterRun) error

	// LoadRun retrieves a single run. Returns nil, nil if it doesn't exist.
	LoadRun(corpusID, runID string) (*ClusterRun, error)

	// LatestRun returns the most recently created run for a corpus.
	// Returns nil, nil if the corpus has no runs.
	LatestRun(corpusID string) (*ClusterRun, error)

	// ListRuns returns every run for a corpus, oldest first.
	ListRuns(corpusID string) ([]*ClusterRun, error)

	// DeleteCorpus removes all runs for a corpus.
	// Idempotent: deleting a nonexistent corpus is not an error.
	DeleteCorpus(corpusID string) error
}

// ClusterRun is one invocation of the greedy clusterer over a corpus,
// flattened for persistence and display.
type ClusterRun struct {
	ID        string    `json:"id"`
	CorpusID  string    `json:"corpus_id"`
	CreatedAt time.Time `json:"created_at"`

	SpeechCount int             `json:"speech_count"`
	Vocabulary  int             `json:"vocabulary"` // distinct key tokens indexed
	Options     RunOptions      `json:"options"`
	Clusters    []ClusterRecord `json:"clusters"`
}

// RunOptions records the thresholds a run was computed with.
type RunOptions struct {
	CoreThreshold float64 `json:"core_threshold"`
	SubThreshold  float64 `json:"sub_threshold"`
	MaxClusters   int     `json:"max_clusters"`
	MinCoreSize   int     `json:"min_core_size"`
}

// ClusterRecord is a cluster whose members are mapped back to speech keys.
type ClusterRecord struct {
	Centroid SpeechKey   `json:"centroid"`
	Core     []SpeechKey `json:"core"`
	Sub      []SpeechKey `json:"sub"`
	Phrases  []string    `json:"phrases"` // key phrases of the centroid speech
}

// SpeechKey identifies a speech across the archive.
type SpeechKey struct {
	MinutesID string `json:"minutes_id"`
	Order     int    `json:"order"`
	Speaker   string `json:"speaker"`
}
