package corpus

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"krishisahay/internal/domain"
)

// ErrMissingColumns reports a raw source whose header lacks a required column.
var ErrMissingColumns = errors.New("corpus: required column missing from source")

// BuildOptions names the question/answer columns in the raw source.
type BuildOptions struct {
	QuestionColumn string
	AnswerColumn   string
}

// DefaultBuildOptions matches the KCC export layout.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{QuestionColumn: "QueryText", AnswerColumn: "KccAns"}
}

// Build reads a raw CSV source and produces the canonical corpus: rows with a
// missing or blank question or answer are dropped whole, exact duplicate
// (question, answer) pairs collapse to the first occurrence, and surviving
// rows keep their original order.
func Build(r io.Reader, opts BuildOptions) ([]domain.CorpusEntry, error) {
	if opts.QuestionColumn == "" || opts.AnswerColumn == "" {
		opts = DefaultBuildOptions()
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("corpus: read header: %w", err)
	}
	qi, ai := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.QuestionColumn:
			qi = i
		case opts.AnswerColumn:
			ai = i
		}
	}
	if qi < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumns, opts.QuestionColumn)
	}
	if ai < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumns, opts.AnswerColumn)
	}

	var entries []domain.CorpusEntry
	seen := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("corpus: read row: %w", err)
		}
		if qi >= len(rec) || ai >= len(rec) {
			continue
		}
		q := strings.TrimSpace(rec[qi])
		a := strings.TrimSpace(rec[ai])
		if q == "" || a == "" {
			continue
		}
		id := domain.EntryID(q, a)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, domain.CorpusEntry{ID: id, Question: q, Answer: a})
	}
	return entries, nil
}

// SaveCSV writes the canonical two-column corpus table. Row order is the
// position join key shared with the vector index.
func SaveCSV(path string, entries []domain.CorpusEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"question", "answer"}); err != nil {
		f.Close()
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Question, e.Answer}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveJSON writes the structured-record interchange form.
func SaveJSON(path string, entries []domain.CorpusEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadCSV reads a canonical corpus table back, re-deriving entry IDs.
// Rows with an empty question or answer are rejected: the builder never
// produces them, so their presence means the file was edited by hand.
func LoadCSV(path string) ([]domain.CorpusEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := Build(f, BuildOptions{QuestionColumn: "question", AnswerColumn: "answer"})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("corpus: no entries in " + path)
	}
	return entries, nil
}
