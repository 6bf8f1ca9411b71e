package querylog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDefaultsAndFields(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "log.json"), nil)
	l.Record("", "", "how to grow tomato", "chat")

	entries := l.Entries()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "Anonymous", e.Farmer)
	assert.Equal(t, "Unknown", e.Location)
	assert.Equal(t, "how to grow tomato", e.Query)
	assert.Equal(t, "chat", e.Type)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, time.Now().Format("2006-01-02"), e.Date)
}

func TestRecordTruncatesLongQueries(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "log.json"), nil)
	l.Record("Ravi", "Guntur", strings.Repeat("x", 500), "chat")

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Query, 200)
}

func TestRecordCapsLogSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	// pre-seed a full log so a single Record triggers the trim
	full := make([]Entry, maxEntries)
	for i := range full {
		full[i] = Entry{ID: fmt.Sprintf("seed-%d", i), Query: "old", Type: "chat"}
	}
	data, err := json.Marshal(full)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	l := New(path, nil)
	l.Record("Ravi", "Guntur", "newest query", "chat")

	entries := l.Entries()
	require.Len(t, entries, maxEntries)
	assert.Equal(t, "seed-1", entries[0].ID, "oldest entry is dropped")
	assert.Equal(t, "newest query", entries[maxEntries-1].Query)
}

func TestEntriesMissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "never-written.json"), nil)
	assert.Empty(t, l.Entries())
}

func TestEntriesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("]["), 0o644))
	l := New(path, nil)
	assert.Empty(t, l.Entries())
}

func TestSummarize(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "log.json"), nil)
	l.Record("Ravi", "Guntur", "aphids in mustard", "chat")
	l.Record("Ravi", "Guntur", "weather Guntur", "weather")
	l.Record("Sita", "Nellore", "market Nellore Rice", "market")
	l.Record("Sita", "Nellore", "paddy blast", "chat")

	s := l.Summarize()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.ByType["chat"])
	assert.Equal(t, 1, s.ByType["weather"])
	assert.Equal(t, 1, s.ByType["market"])
	assert.Equal(t, 4, s.ByDate[time.Now().Format("2006-01-02")])
}
