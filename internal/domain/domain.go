package domain

import (
	"crypto/sha1"
	"encoding/hex"
)

// CorpusEntry is a single question/answer pair from the offline knowledge base.
// ID is a content hash of question+answer and is the stable join key between
// the corpus table and the vector index.
type CorpusEntry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EntryID derives the content-hash identifier for a question/answer pair.
func EntryID(question, answer string) string {
	h := sha1.Sum([]byte(question + "\x00" + answer))
	return hex.EncodeToString(h[:8])
}

// Neighbor is a single hit from a nearest-neighbor search.
type Neighbor struct {
	ID       string
	Position int
	Distance float32
}

// SearchResult is a scored corpus entry from the keyword path.
type SearchResult struct {
	Entry    CorpusEntry
	Position int
	Score    int
}

// Embedder converts free text into fixed-dimension numeric vectors.
// Implementations must be deterministic for a fixed model state.
type Embedder interface {
	Name() string
	Dimension() int
	Encode(texts []string) ([][]float32, error)
}

// Retriever is one named retrieval strategy. An error means the strategy is
// unavailable (missing model, missing index), never "no match found" — every
// usable strategy answers with some string.
type Retriever interface {
	Name() string
	Retrieve(query string, topK int) (string, error)
}
