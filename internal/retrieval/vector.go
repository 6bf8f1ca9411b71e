package retrieval

import (
	"fmt"

	"krishisahay/internal/domain"
	"krishisahay/internal/index"
)

// Vector answers with the single most semantically similar corpus entry,
// found by exact squared-L2 search over the embedding index.
type Vector struct {
	embedder domain.Embedder
	index    *index.Flat
	entries  []domain.CorpusEntry
	byID     map[string]domain.CorpusEntry
}

// NewVector wires the retriever and verifies the index against the corpus
// and the embedder: row counts must agree and, once the embedder knows its
// dimension, it must match the index. Failing fast here beats returning a
// garbage nearest match later.
func NewVector(emb domain.Embedder, idx *index.Flat, entries []domain.CorpusEntry) (*Vector, error) {
	if idx.Len() != len(entries) {
		return nil, fmt.Errorf("%w: index has %d rows, corpus has %d",
			index.ErrIndexUnavailable, idx.Len(), len(entries))
	}
	if d := emb.Dimension(); d != 0 && d != idx.Dimension() {
		return nil, fmt.Errorf("%w: embedder dim %d, index dim %d",
			index.ErrDimensionMismatch, d, idx.Dimension())
	}
	byID := make(map[string]domain.CorpusEntry, len(entries))
	for i, e := range entries {
		if idx.IDAt(i) != e.ID {
			return nil, fmt.Errorf("%w: row %d id %q does not match corpus entry %q",
				index.ErrIndexUnavailable, i, idx.IDAt(i), e.ID)
		}
		byID[e.ID] = e
	}
	return &Vector{embedder: emb, index: idx, entries: entries, byID: byID}, nil
}

// Name returns the strategy name.
func (v *Vector) Name() string { return "vector" }

// Retrieve encodes the query and returns the nearest entry's answer
// verbatim. topK is accepted for the Retriever interface but the vector path
// always resolves the single nearest match. No relevance threshold is
// applied: the nearest answer is returned even at a large distance.
func (v *Vector) Retrieve(query string, topK int) (string, error) {
	vecs, err := v.embedder.Encode([]string{query})
	if err != nil {
		return "", err
	}
	neighbors, err := v.index.Search(vecs[0], 1)
	if err != nil {
		return "", err
	}
	if len(neighbors) == 0 {
		return "", fmt.Errorf("%w: empty index", index.ErrIndexUnavailable)
	}
	entry, ok := v.byID[neighbors[0].ID]
	if !ok {
		return "", fmt.Errorf("%w: neighbor id %q not in corpus",
			index.ErrIndexUnavailable, neighbors[0].ID)
	}
	return entry.Answer, nil
}

// Nearest exposes the raw top-k neighbors for diagnostics.
func (v *Vector) Nearest(query string, k int) ([]domain.Neighbor, error) {
	vecs, err := v.embedder.Encode([]string{query})
	if err != nil {
		return nil, err
	}
	return v.index.Search(vecs[0], k)
}
