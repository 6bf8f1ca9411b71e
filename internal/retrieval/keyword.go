// Package retrieval implements the offline answer paths: a vector retriever
// over the persisted embedding index, a keyword-overlap retriever that needs
// no model at all, and the ordered fallback chain that ties them together.
package retrieval

import (
	"regexp"
	"sort"
	"strings"

	"krishisahay/internal/domain"
	"krishisahay/internal/knowledge"
)

// NoticeNoOfflineData is the terminal answer when nothing matches. It is a
// valid answer state, not an error: the offline path always says something.
const NoticeNoOfflineData = "No specific offline data found for this query. " +
	"Please enable online mode for AI-powered answers, or consult your local " +
	"Kisan Call Centre at 1800-180-1551."

// AnswerSeparator joins multiple selected answers in rank order.
const AnswerSeparator = "\n\n---\n\n"

var keywordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{3,}`)

// stopwords are never scored, even when they appear verbatim in a question.
var stopwords = map[string]struct{}{
	"how": {}, "what": {}, "when": {}, "where": {}, "which": {}, "does": {},
	"can": {}, "the": {}, "for": {}, "and": {}, "with": {}, "are": {},
	"this": {}, "that": {}, "from": {}, "have": {}, "been": {}, "will": {},
}

// Keyword scores corpus entries by keyword overlap: 3 points per query token
// found in the question text, 1 more per token found in the answer text.
// It never fails; absence of data is the fallback notice.
type Keyword struct {
	entries  []domain.CorpusEntry
	store    *knowledge.Store
	minScore int
}

// KeywordOption tweaks the retriever.
type KeywordOption func(*Keyword)

// WithMinScore sets the relevance floor. The default of 1 reproduces the
// reference "score > 0" rule; raising it trades recall for precision.
func WithMinScore(min int) KeywordOption {
	return func(k *Keyword) {
		if min > 0 {
			k.minScore = min
		}
	}
}

// NewKeyword creates the keyword retriever over a static corpus and an
// optional ad-hoc store (nil disables the secondary lookup).
func NewKeyword(entries []domain.CorpusEntry, store *knowledge.Store, opts ...KeywordOption) *Keyword {
	k := &Keyword{entries: entries, store: store, minScore: 1}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Name returns the strategy name.
func (k *Keyword) Name() string { return "keyword" }

// Retrieve returns up to topK concatenated answers ranked by overlap score.
// The error is always nil; this strategy is the terminal link of the chain.
func (k *Keyword) Retrieve(query string, topK int) (string, error) {
	if topK <= 0 {
		topK = 3
	}
	tokens := Tokenize(query)
	results := k.Score(tokens)

	var answers []string
	for _, r := range results {
		if len(answers) == topK {
			break
		}
		answers = append(answers, r.Entry.Answer)
	}
	if len(answers) > 0 {
		return strings.Join(answers, AnswerSeparator), nil
	}

	if k.store != nil {
		if rec, ok := k.store.FirstMatch(tokens); ok {
			return rec.Answer, nil
		}
	}
	return NoticeNoOfflineData, nil
}

// Score ranks every corpus entry against the surviving query tokens:
// descending score, ties broken by ascending corpus position. Entries below
// the relevance floor are dropped.
func (k *Keyword) Score(tokens []string) []domain.SearchResult {
	var results []domain.SearchResult
	for i, entry := range k.entries {
		q := strings.ToLower(entry.Question)
		a := strings.ToLower(entry.Answer)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(q, tok) {
				score += 3
			}
			if strings.Contains(a, tok) {
				score++
			}
		}
		if score >= k.minScore {
			results = append(results, domain.SearchResult{Entry: entry, Position: i, Score: score})
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Position < results[b].Position
	})
	return results
}

// Tokenize extracts case-folded word tokens of length >= 3 and removes the
// fixed stop-word set.
func Tokenize(query string) []string {
	raw := keywordPattern.FindAllString(strings.ToLower(query), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
