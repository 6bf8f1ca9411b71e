package assistant

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishisahay/internal/config"
	"krishisahay/internal/corpus"
	"krishisahay/internal/embedding/tfidf"
	"krishisahay/internal/index"
	"krishisahay/internal/lang"
	"krishisahay/internal/retrieval"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("KRISHI_TEST_WEATHER_KEY", "")
	t.Setenv("KRISHI_TEST_GROQ_KEY", "")
	return &config.AppConfig{
		Data: config.DataConfig{
			CorpusCSV:      filepath.Join(dir, "corpus.csv"),
			CorpusJSON:     filepath.Join(dir, "corpus.json"),
			IndexFile:      filepath.Join(dir, "index.ksix"),
			ModelFile:      filepath.Join(dir, "model.bin"),
			KnowledgeStore: filepath.Join(dir, "kb.json"),
			QueryLog:       filepath.Join(dir, "log.json"),
		},
		Retrieval: config.RetrievalConfig{TopK: 3, MinScore: 1},
		Weather:   config.WeatherConfig{APIKeyEnv: "KRISHI_TEST_WEATHER_KEY"},
		LLM:       config.LLMConfig{APIKeyEnv: "KRISHI_TEST_GROQ_KEY"},
	}
}

func TestOpenFallsBackToSeedCorpus(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	assert.Greater(t, svc.CorpusSize(), 0)
	assert.False(t, svc.VectorReady(), "no model or index on disk")
	assert.False(t, svc.OnlineReady(), "no API key configured")
}

func TestOpenWithBuiltArtifacts(t *testing.T) {
	cfg := testConfig(t)

	entries := corpus.Seed()
	require.NoError(t, corpus.SaveCSV(cfg.Data.CorpusCSV, entries))

	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
	}
	emb := tfidf.New()
	require.NoError(t, emb.Fit(questions))
	require.NoError(t, emb.Save(cfg.Data.ModelFile))

	flat, err := index.BuildFromCorpus(entries, emb)
	require.NoError(t, err)
	require.NoError(t, flat.WriteFile(cfg.Data.IndexFile))

	svc, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.True(t, svc.VectorReady())

	resp := svc.Ask(context.Background(), AskRequest{
		Query:    "how to control aphids in mustard",
		Language: lang.English,
	})
	assert.Equal(t, "offline", resp.Source)
	assert.Contains(t, resp.Answer, "Aphid Control in Mustard")
}

func TestAskEmptyQuery(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	resp := svc.Ask(context.Background(), AskRequest{Query: "   "})
	assert.Equal(t, "Please enter a question.", resp.Answer)
}

func TestAskEnglishAnswer(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	resp := svc.Ask(context.Background(), AskRequest{
		Query:    "aphids in mustard",
		Language: lang.English,
	})
	assert.Equal(t, "offline", resp.Source)
	assert.Contains(t, resp.Answer, "Aphid Control in Mustard")
	assert.NotContains(t, resp.Answer, "ఆవాలలో", "English mode must not leak the Telugu segment")
}

func TestAskTeluguAnswer(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	resp := svc.Ask(context.Background(), AskRequest{
		Query:    "aphids in mustard",
		TopK:     1,
		Language: lang.Telugu,
	})
	assert.Contains(t, resp.Answer, "పేనుబంక")
	assert.Empty(t, resp.Notice)
}

func TestAskTeluguUnavailableShowsEnglishWithNotice(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	// nothing matches, so the single-line fallback notice comes back; it has
	// no Telugu segment
	resp := svc.Ask(context.Background(), AskRequest{
		Query:    "xylophone quantum",
		Language: lang.Telugu,
	})
	assert.Equal(t, retrieval.NoticeNoOfflineData, resp.Answer)
	assert.Equal(t, "Telugu translation not available. Showing English.", resp.Notice)
}

func TestAskLogsQueries(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	svc.Ask(context.Background(), AskRequest{Query: "aphids", Farmer: "Ravi", Location: "Guntur"})
	svc.Ask(context.Background(), AskRequest{Query: "wheat fertilizer"})

	summary := svc.Dashboard()
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.ByType["chat"])
}

func TestAddKnowledgeReachableThroughAsk(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddKnowledge(
		"solar pump subsidy under kusum scheme",
		"PM-KUSUM gives up to 60% subsidy on standalone solar pumps. Apply via the state nodal agency.",
		"scheme"))

	resp := svc.Ask(context.Background(), AskRequest{
		Query:    "kusum solar",
		Language: lang.English,
	})
	assert.Contains(t, resp.Answer, "PM-KUSUM")
}

func TestAddKnowledgeValidation(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)
	require.Error(t, svc.AddKnowledge("", "answer", ""))
}

func TestWeatherMockMode(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	report, advice, err := svc.Weather(context.Background(), "Guntur", "Ravi")
	require.NoError(t, err)
	assert.True(t, report.Mock)
	assert.NotEmpty(t, advice)

	summary := svc.Dashboard()
	assert.Equal(t, 1, summary.ByType["weather"])
}

func TestLogMarketQuery(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	svc.LogMarketQuery("Ravi", "Punjab", "Wheat")
	summary := svc.Dashboard()
	assert.Equal(t, 1, summary.ByType["market"])
}

func TestAskAnswerJoinsTopK(t *testing.T) {
	svc, err := Open(testConfig(t), nil)
	require.NoError(t, err)

	// "blight" hits the tomato and potato entries; English mode keeps only
	// the first line of the joined answer
	resp := svc.Ask(context.Background(), AskRequest{
		Query:    "blight treatment",
		TopK:     2,
		Language: lang.English,
	})
	assert.Equal(t, "offline", resp.Source)
	assert.False(t, strings.Contains(resp.Answer, "\n"))
}
