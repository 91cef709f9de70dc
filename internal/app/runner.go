package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/corey/kokkai/internal/domain/cluster"
	"github.com/corey/kokkai/internal/domain/corpus"
	"github.com/corey/kokkai/internal/ports"
)

// LoadSpeeches reads a JSONL speech corpus from disk.
func LoadSpeeches(path string) ([]ports.Speech, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	speeches, err := corpus.LoadSpeeches(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return speeches, nil
}

// LoadClips reads a JSONL clip list from disk.
func LoadClips(path string) ([]ports.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clips: %w", err)
	}
	defer f.Close()

	clips, err := corpus.LoadClips(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clips, nil
}

// RunClusters loads the corpus at corpusPath, clusters it and, when a store
// is attached, persists the run under CorpusID(corpusPath).
func (a *App) RunClusters(ctx context.Context, corpusPath string, opts cluster.Options) (*ports.ClusterRun, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	speeches, err := LoadSpeeches(corpusPath)
	if err != nil {
		return nil, err
	}

	clean := a.Config != nil && a.Config.Cluster.CleanText
	docs := corpus.Documents(speeches, clean)

	m, err := cluster.BuildMatrix(ctx, docs, opts.Workers)
	if err != nil {
		return nil, err
	}
	clusters := m.Extract(opts)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	run := newRun(id.String(), CorpusID(corpusPath), a.now(), speeches, clusters, opts)
	run.Vocabulary = m.Vocabulary
	elapsed := time.Since(start)

	if a.Store != nil {
		if err := a.Store.SaveRun(run.CorpusID, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		if err := a.appendRunLog(run, elapsed); err != nil {
			a.log.Warn("run log not written", "path", a.Paths.RunLog, "err", err)
		}
	}

	a.log.Info("clustered corpus",
		"corpus", run.CorpusID,
		"run", run.ID,
		"speeches", len(speeches),
		"vocabulary", run.Vocabulary,
		"clusters", len(run.Clusters),
		"elapsed", elapsed.Round(time.Millisecond),
	)
	return run, nil
}

// appendRunLog appends one JSON record per persisted run to .kokkai/log/runs.log.
func (a *App) appendRunLog(run *ports.ClusterRun, elapsed time.Duration) error {
	f, err := os.OpenFile(a.Paths.RunLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	slog.New(slog.NewJSONHandler(f, nil)).Info("cluster run",
		"corpus", run.CorpusID,
		"run", run.ID,
		"speeches", run.SpeechCount,
		"vocabulary", run.Vocabulary,
		"clusters", len(run.Clusters),
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return f.Close()
}

// newRun maps document indices back to speech keys.
func newRun(id, corpusID string, created time.Time, speeches []ports.Speech, clusters []cluster.Cluster, opts cluster.Options) *ports.ClusterRun {
	run := &ports.ClusterRun{
		ID:          id,
		CorpusID:    corpusID,
		CreatedAt:   created,
		SpeechCount: len(speeches),
		Options: ports.RunOptions{
			CoreThreshold: opts.CoreThreshold,
			SubThreshold:  opts.SubThreshold,
			MaxClusters:   opts.MaxClusters,
			MinCoreSize:   opts.MinCoreSize,
		},
		Clusters: make([]ports.ClusterRecord, 0, len(clusters)),
	}

	keys := func(ids []int) []ports.SpeechKey {
		out := make([]ports.SpeechKey, len(ids))
		for i, id := range ids {
			out[i] = speeches[id].Key()
		}
		return out
	}

	for _, c := range clusters {
		centroid := speeches[c.Centroid]
		run.Clusters = append(run.Clusters, ports.ClusterRecord{
			Centroid: centroid.Key(),
			Core:     keys(c.Core),
			Sub:      keys(c.Sub),
			Phrases:  append([]string(nil), centroid.KeyPhrases...),
		})
	}
	return run
}
