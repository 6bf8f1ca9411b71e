package corpus

import (
	_ "embed"
	"encoding/json"

	"krishisahay/internal/domain"
)

//go:embed seed.json
var seedData []byte

// Seed returns the built-in agricultural Q&A corpus. It keeps the keyword
// path usable before any external corpus has been built.
func Seed() []domain.CorpusEntry {
	var raw []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(seedData, &raw); err != nil {
		// seed.json is compiled in; a decode failure is a programming error
		panic("corpus: invalid embedded seed: " + err.Error())
	}
	entries := make([]domain.CorpusEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, domain.CorpusEntry{
			ID:       domain.EntryID(r.Question, r.Answer),
			Question: r.Question,
			Answer:   r.Answer,
		})
	}
	return entries
}
