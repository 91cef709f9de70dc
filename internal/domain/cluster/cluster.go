package cluster

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned when clustering options are inconsistent.
var ErrInvalidOptions = errors.New("invalid cluster options")

// Cluster is a group of documents around a centroid.
// Core holds documents within the core threshold of the centroid, Sub those
// within the looser sub threshold; Core is always a subset of Sub. Both are
// ascending document indices.
type Cluster struct {
	Centroid int
	Core     []int
	Sub      []int
}

// Options controls FindClusters.
type Options struct {
	CoreThreshold float64 // max distance to join the core list
	SubThreshold  float64 // max distance to join the sub list
	MaxClusters   int     // upper bound on returned clusters
	MinCoreSize   int     // stop once the best core is smaller than this
	Workers       int     // matrix fill parallelism; <= 0 means GOMAXPROCS
}

// DefaultOptions returns the thresholds the archive is tuned for.
func DefaultOptions() Options {
	return Options{
		CoreThreshold: 0.5,
		SubThreshold:  0.75,
		MaxClusters:   10,
		MinCoreSize:   3,
	}
}

// Validate checks that the thresholds are ordered and the counts positive.
// SubThreshold must stay below 1: excluded documents sit at distance 1 and
// must never re-enter a sub list.
func (o Options) Validate() error {
	switch {
	case o.CoreThreshold < 0:
		return fmt.Errorf("%w: core threshold %v < 0", ErrInvalidOptions, o.CoreThreshold)
	case o.SubThreshold <= o.CoreThreshold:
		return fmt.Errorf("%w: sub threshold %v must exceed core threshold %v", ErrInvalidOptions, o.SubThreshold, o.CoreThreshold)
	case o.SubThreshold >= 1:
		return fmt.Errorf("%w: sub threshold %v must be < 1", ErrInvalidOptions, o.SubThreshold)
	case o.MaxClusters < 1:
		return fmt.Errorf("%w: max clusters %d < 1", ErrInvalidOptions, o.MaxClusters)
	case o.MinCoreSize < 1:
		return fmt.Errorf("%w: min core size %d < 1", ErrInvalidOptions, o.MinCoreSize)
	}
	return nil
}

// FindCluster returns the candidate with the largest core list.
// Centroids are tried in index order and the first maximum wins, so ties go
// to the lowest index. An empty matrix yields Centroid -1 and empty lists.
func (m *Matrix) FindCluster(coreThreshold, subThreshold float64) Cluster {
	best := Cluster{Centroid: -1, Core: []int{}, Sub: []int{}}
	for i := 0; i < m.n; i++ {
		c := Cluster{Centroid: i, Core: []int{}, Sub: []int{}}
		for j := 0; j < m.n; j++ {
			d := m.sym.At(i, j)
			if d <= coreThreshold {
				c.Core = append(c.Core, j)
			}
			if d <= subThreshold {
				c.Sub = append(c.Sub, j)
			}
		}
		if best.Centroid < 0 || len(c.Core) > len(best.Core) {
			best = c
		}
	}
	return best
}

// FindClusters greedily extracts up to opts.MaxClusters clusters from docs.
//
// Each round takes the cluster with the largest core. If that core is smaller
// than opts.MinCoreSize the loop stops: the remaining documents are too
// dispersed. Otherwise the cluster is accepted and every member of its sub
// list is excluded from later rounds, as centroid or as member.
//
// A corpus without any key phrase produces an all-ones matrix and therefore
// an empty result with a nil error.
func FindClusters(ctx context.Context, docs []Document, opts Options) ([]Cluster, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m, err := BuildMatrix(ctx, docs, opts.Workers)
	if err != nil {
		return nil, err
	}
	return m.Extract(opts), nil
}

// Extract runs the greedy loop of FindClusters on m, mutating it.
func (m *Matrix) Extract(opts Options) []Cluster {
	var clusters []Cluster
	for len(clusters) < opts.MaxClusters {
		c := m.FindCluster(opts.CoreThreshold, opts.SubThreshold)
		if len(c.Core) < opts.MinCoreSize {
			break
		}
		clusters = append(clusters, c)
		m.Exclude(c.Sub...)
	}
	return clusters
}
