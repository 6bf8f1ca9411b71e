// Package knowledge is the append-only ad-hoc Q&A store that extends the
// static corpus at runtime. Entries accumulate independently and are never
// deduplicated against the corpus.
package knowledge

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Record is one stored Q&A pair.
type Record struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// Store persists records as a JSON array. Appends are reload-append-save
// under an in-process mutex; a cross-process append race is last-writer-wins
// by design.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewStore creates a store over the given JSON file. The file may not exist
// yet; it is created on first Add.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Add appends a Q&A pair tagged with a category and creation timestamp.
func (s *Store) Add(question, answer, category string) error {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return errors.New("knowledge: question and answer must be non-empty")
	}
	if category == "" {
		category = "general"
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	records = append(records, Record{
		Question:  question,
		Answer:    answer,
		Category:  category,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})
	return s.save(records)
}

// Records returns all stored entries in insertion order. An unreadable or
// corrupt file is treated as empty: this store sits on the offline query path
// and must never fail the caller.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// FirstMatch returns the first record whose question contains any of the
// given tokens as a substring, case-folded. No ranking: first match wins.
func (s *Store) FirstMatch(tokens []string) (Record, bool) {
	for _, rec := range s.Records() {
		q := strings.ToLower(rec.Question)
		for _, tok := range tokens {
			if tok != "" && strings.Contains(q, tok) {
				return rec, true
			}
		}
	}
	return Record{}, false
}

func (s *Store) load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("knowledge store unreadable, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("knowledge store corrupt, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return records
}

func (s *Store) save(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
