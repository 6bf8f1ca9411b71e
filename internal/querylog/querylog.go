// Package querylog records farmer queries for the analytics dashboard. It is
// a file-backed, capped log: write failures are logged and swallowed, never
// surfaced to the query path.
package querylog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxEntries     = 1000
	maxQueryLength = 200
)

// Entry is one logged query.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Farmer    string `json:"farmer_name"`
	Location  string `json:"location"`
	Query     string `json:"query"`
	Type      string `json:"type"`
	Date      string `json:"date"`
}

// Summary aggregates the log for the dashboard.
type Summary struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
	ByDate map[string]int `json:"by_date"`
}

// Log is the file-backed query log.
type Log struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// New creates a query log over the given JSON file.
func New(path string, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{path: path, logger: logger}
}

// Record appends a query, truncating long query text and trimming the log to
// the most recent entries. Errors are logged, not returned.
func (l *Log) Record(farmer, location, query, queryType string) {
	if farmer == "" {
		farmer = "Anonymous"
	}
	if location == "" {
		location = "Unknown"
	}
	runes := []rune(query)
	if len(runes) > maxQueryLength {
		query = string(runes[:maxQueryLength])
	}
	now := time.Now()
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: now.Format("2006-01-02 15:04:05"),
		Farmer:    farmer,
		Location:  location,
		Query:     query,
		Type:      queryType,
		Date:      now.Format("2006-01-02"),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.load()
	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	if err := l.save(entries); err != nil {
		l.logger.Warn("query log write failed", zap.String("path", l.path), zap.Error(err))
	}
}

// Entries returns all logged queries, oldest first. Unreadable files read as
// empty.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Summarize aggregates counts by query type and by date.
func (l *Log) Summarize() Summary {
	entries := l.Entries()
	s := Summary{
		Total:  len(entries),
		ByType: make(map[string]int),
		ByDate: make(map[string]int),
	}
	for _, e := range entries {
		s.ByType[e.Type]++
		s.ByDate[e.Date]++
	}
	return s
}

func (l *Log) load() []Entry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("query log unreadable, treating as empty",
				zap.String("path", l.path), zap.Error(err))
		}
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn("query log corrupt, treating as empty",
			zap.String("path", l.path), zap.Error(err))
		return nil
	}
	return entries
}

func (l *Log) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0o644)
}
