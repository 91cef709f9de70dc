package cluster

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/corey/kokkai/internal/domain/phrase"
)

// Matrix is the symmetric distance matrix of one clustering run. Values are
// in [0, 1]; 1 means no shared signal. Excluded documents have their whole
// row and column reset to 1.
type Matrix struct {
	sym *mat.SymDense // nil when there are no documents
	n   int

	// Vocabulary is the number of distinct key tokens the run indexed,
	// reported with every stored run.
	Vocabulary int
}

func newMatrix(n int) *Matrix {
	m := &Matrix{n: n}
	if n == 0 {
		return m
	}
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1
	}
	m.sym = mat.NewSymDense(n, data)
	return m
}

// Len returns the number of documents.
func (m *Matrix) Len() int { return m.n }

// At returns distance(i, j).
func (m *Matrix) At(i, j int) float64 { return m.sym.At(i, j) }

// Exclude resets the rows and columns of ids to 1 so they can no longer
// anchor or join a cluster.
func (m *Matrix) Exclude(ids ...int) {
	for _, i := range ids {
		for k := 0; k < m.n; k++ {
			m.sym.SetSym(i, k, 1)
		}
	}
}

// BuildMatrix computes the distance matrix of docs.
//
// One phrase index is built over the union of all key tokens and every text
// is scanned once; containment checks are then map lookups. Each unordered
// pair (diagonal included) is evaluated once. Rows are filled concurrently on
// up to workers goroutines (<= 0 means GOMAXPROCS); every goroutine writes a
// disjoint set of cells and only reads the index.
//
// Documents without key phrases get distance 1 to everything, themselves
// included.
func BuildMatrix(ctx context.Context, docs []Document, workers int) (*Matrix, error) {
	n := len(docs)
	tokens := make([][]string, n)
	var vocab []string
	for i, d := range docs {
		tokens[i] = KeyTokens(d.KeyPhrases)
		vocab = append(vocab, tokens[i]...)
	}

	idx := phrase.Build(vocab)
	for i, d := range docs {
		if err := idx.Index(phrase.DocID(i), d.Text); err != nil {
			return nil, fmt.Errorf("index doc %d: %w", i, err)
		}
	}

	m := newMatrix(n)
	m.Vocabulary = len(idx.Vocabulary())

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			di := phrase.DocID(i)
			for j := i; j < n; j++ {
				dj := phrase.DocID(j)
				d := coverage(tokens[i], tokens[j],
					func(tok string) bool { return idx.Contains(tok, dj) },
					func(tok string) bool { return idx.Contains(tok, di) },
				)
				m.sym.SetSym(i, j, d)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, d := range docs {
		if len(d.KeyPhrases) == 0 {
			m.Exclude(i)
		}
	}
	return m, nil
}
