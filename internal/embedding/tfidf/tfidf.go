// Package tfidf implements a TF-IDF sentence embedder. The model is fitted
// once over the corpus questions at index-build time and persisted; serving
// loads the fitted state read-only, so query-time encoding needs no network
// and is deterministic for a fixed model file.
package tfidf

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"krishisahay/internal/embedding"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Embedder is a TF-IDF vectorizer with a corpus-fitted vocabulary.
type Embedder struct {
	vocabulary map[string]int
	terms      []string
	idf        []float32
	stopwords  map[string]struct{}
	fitted     bool
}

// New creates an unfitted TF-IDF embedder.
func New() *Embedder {
	return &Embedder{
		vocabulary: make(map[string]int),
		stopwords:  defaultStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Dimension returns the dimensionality of produced vectors (vocabulary size).
func (e *Embedder) Dimension() int { return len(e.terms) }

// Fit builds the vocabulary and IDF values from the corpus questions.
// Term order is sorted, so the vector space is stable across runs.
func (e *Embedder) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("tfidf: empty corpus")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return errors.New("tfidf: no tokens found in corpus")
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	e.terms = terms
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float32, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// smoothed IDF
		e.idf[i] = float32(math.Log((1+n)/(1+float64(df[term]))) + 1.0)
	}
	e.fitted = true
	return nil
}

// Encode computes L2-normalized TF-IDF vectors for the given texts,
// order-preserving.
func (e *Embedder) Encode(texts []string) ([][]float32, error) {
	if !e.fitted {
		return nil, fmt.Errorf("%w: tfidf model not fitted", embedding.ErrModelUnavailable)
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.encodeOne(text)
	}
	return out, nil
}

func (e *Embedder) encodeOne(text string) []float32 {
	vec := make([]float32, len(e.terms))
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float32(count) / float32(total) * e.idf[idx]
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

func (e *Embedder) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := e.stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// model is the persisted fitted state.
type model struct {
	Terms []string
	IDF   []float32
}

// Save writes the fitted model to path. This file is the local model cache
// the serving path depends on.
func (e *Embedder) Save(path string) error {
	if !e.fitted {
		return errors.New("tfidf: cannot save unfitted model")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(model{Terms: e.terms, IDF: e.idf}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a fitted model from path. A missing or corrupt file is reported
// as ErrModelUnavailable so callers can degrade to the keyword path.
func Load(path string) (*Embedder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", embedding.ErrModelUnavailable, err)
	}
	defer f.Close()
	var m model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", embedding.ErrModelUnavailable, path, err)
	}
	if len(m.Terms) == 0 || len(m.Terms) != len(m.IDF) {
		return nil, fmt.Errorf("%w: inconsistent model file %s", embedding.ErrModelUnavailable, path)
	}
	e := New()
	e.terms = m.Terms
	e.idf = m.IDF
	e.vocabulary = make(map[string]int, len(m.Terms))
	for i, term := range m.Terms {
		e.vocabulary[term] = i
	}
	e.fitted = true
	return e, nil
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to",
		"of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were",
		"be", "been", "being", "it", "this", "that", "these", "those", "from",
		"up", "down", "over", "under", "than", "so", "such", "into", "about",
		"can", "will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
