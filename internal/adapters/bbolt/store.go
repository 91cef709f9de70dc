// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Each corpus gets its own top-level bucket. Within that bucket, the "runs"
// sub-bucket holds one gob-encoded ClusterRun per key. Run ids are UUIDv7, so
// byte order of the keys is creation order. Writes are transactional: a crash
// mid-write cannot corrupt previously committed data.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/corey/kokkai/internal/ports"
)

var bucketRuns = []byte("runs")

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// IsLocked reports whether err is NewStore failing because another process
// holds the database file lock.
func IsLocked(err error) bool {
	return errors.Is(err, berrors.ErrTimeout)
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists one clustering run under its corpus.
func (s *Store) SaveRun(corpusID string, run *ports.ClusterRun) error {
	if run == nil {
		return fmt.Errorf("nil run")
	}
	if run.ID == "" {
		return fmt.Errorf("run without id")
	}

	data, err := encodeRun(run)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", run.ID, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		corpus, err := tx.CreateBucketIfNotExists([]byte(corpusID))
		if err != nil {
			return err
		}
		rb, err := corpus.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		return rb.Put([]byte(run.ID), data)
	})
}

// runs returns the runs bucket of a corpus, or nil.
func runs(tx *bolt.Tx, corpusID string) *bolt.Bucket {
	corpus := tx.Bucket([]byte(corpusID))
	if corpus == nil {
		return nil
	}
	return corpus.Bucket(bucketRuns)
}

// copyBytes copies a value out of the transaction (bbolt slices are only
// valid within tx).
func copyBytes(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// LoadRun retrieves a single run. Returns nil, nil if it doesn't exist.
func (s *Store) LoadRun(corpusID, runID string) (*ports.ClusterRun, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		rb := runs(tx, corpusID)
		if rb == nil {
			return nil
		}
		if v := rb.Get([]byte(runID)); v != nil {
			data = copyBytes(v)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	return decodeRun(data)
}

// LatestRun returns the newest run of a corpus. Returns nil, nil if none.
func (s *Store) LatestRun(corpusID string) (*ports.ClusterRun, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		rb := runs(tx, corpusID)
		if rb == nil {
			return nil
		}
		if _, v := rb.Cursor().Last(); v != nil {
			data = copyBytes(v)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	return decodeRun(data)
}

// ListRuns returns every run of a corpus, oldest first.
func (s *Store) ListRuns(corpusID string) ([]*ports.ClusterRun, error) {
	var blobs [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		rb := runs(tx, corpusID)
		if rb == nil {
			return nil
		}
		return rb.ForEach(func(_, v []byte) error {
			blobs = append(blobs, copyBytes(v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]*ports.ClusterRun, 0, len(blobs))
	for _, b := range blobs {
		run, err := decodeRun(b)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}

// DeleteCorpus removes all runs for a corpus.
// Idempotent: deleting a nonexistent corpus is not an error.
func (s *Store) DeleteCorpus(corpusID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(corpusID))
		if errors.Is(err, berrors.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

var _ ports.Storage = (*Store)(nil)
