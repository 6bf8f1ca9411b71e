// Package index provides the exact nearest-neighbor index over corpus
// question embeddings. The corpus is small (thousands of rows), so an
// exhaustive flat scan by squared Euclidean distance is both exact and fast
// enough; there is no approximation.
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"krishisahay/internal/domain"
)

var (
	// ErrIndexUnavailable reports a missing or unreadable persisted index.
	ErrIndexUnavailable = errors.New("index: unavailable")
	// ErrDimensionMismatch reports a query or build vector whose dimension
	// disagrees with the index.
	ErrDimensionMismatch = errors.New("index: dimension mismatch")
	// ErrIndexBuild reports a fatal build-time failure (bad vectors or a
	// vector count that disagrees with the corpus).
	ErrIndexBuild = errors.New("index: build failed")
)

// Flat is an exact L2 index. Row i carries the vector for corpus entry i and
// the entry's content-hash ID; lookups resolve by ID, position is a checked
// invariant.
type Flat struct {
	dim     int
	ids     []string
	vectors [][]float32
}

// NewFlat creates an empty index with a fixed vector dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: invalid dimension %d", ErrIndexBuild, dim)
	}
	return &Flat{dim: dim}, nil
}

// Dimension returns the vector dimension of the index.
func (f *Flat) Dimension() int { return f.dim }

// Len returns the number of indexed rows.
func (f *Flat) Len() int { return len(f.vectors) }

// IDAt returns the entry ID stored at a position.
func (f *Flat) IDAt(pos int) string { return f.ids[pos] }

// Add appends one row. Vectors containing NaN or Inf are rejected: a poisoned
// row would silently win or lose every distance comparison.
func (f *Flat) Add(id string, vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vec), f.dim)
	}
	for _, v := range vec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%w: non-finite value in vector %q", ErrIndexBuild, id)
		}
	}
	f.ids = append(f.ids, id)
	f.vectors = append(f.vectors, vec)
	return nil
}

// Search returns the k nearest rows to query by squared Euclidean distance,
// closest first. Ties break toward the lowest position, matching linear-scan
// order, so results are deterministic.
func (f *Flat) Search(query []float32, k int) ([]domain.Neighbor, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query dim %d, index dim %d", ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 {
		k = 1
	}
	neighbors := make([]domain.Neighbor, len(f.vectors))
	for i, vec := range f.vectors {
		neighbors[i] = domain.Neighbor{ID: f.ids[i], Position: i, Distance: sqL2(query, vec)}
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		if neighbors[a].Distance != neighbors[b].Distance {
			return neighbors[a].Distance < neighbors[b].Distance
		}
		return neighbors[a].Position < neighbors[b].Position
	})
	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k], nil
}

func sqL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// BuildFromCorpus encodes every corpus question with the embedder and indexes
// the vectors in corpus order. The produced vector count must equal the
// corpus size; anything else aborts the build.
func BuildFromCorpus(entries []domain.CorpusEntry, emb domain.Embedder) (*Flat, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrIndexBuild)
	}
	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
	}
	vectors, err := emb.Encode(questions)
	if err != nil {
		return nil, fmt.Errorf("%w: encode corpus: %v", ErrIndexBuild, err)
	}
	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("%w: %d vectors for %d corpus rows", ErrIndexBuild, len(vectors), len(entries))
	}
	flat, err := NewFlat(emb.Dimension())
	if err != nil {
		return nil, err
	}
	for i, vec := range vectors {
		if err := flat.Add(entries[i].ID, vec); err != nil {
			return nil, err
		}
	}
	return flat, nil
}
