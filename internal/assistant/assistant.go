// Package assistant is the application core: it owns the shared read-only
// resources (corpus, embedding model, vector index) loaded once per process,
// and exposes the operations the TUI and HTTP surfaces call.
package assistant

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"krishisahay/internal/advisory"
	"krishisahay/internal/config"
	"krishisahay/internal/corpus"
	"krishisahay/internal/domain"
	"krishisahay/internal/embedding/tfidf"
	"krishisahay/internal/index"
	"krishisahay/internal/knowledge"
	"krishisahay/internal/lang"
	"krishisahay/internal/llm"
	"krishisahay/internal/querylog"
	"krishisahay/internal/retrieval"
)

// AskRequest is one assistant question.
type AskRequest struct {
	Query    string
	TopK     int
	Language lang.Language
	Farmer   string
	Location string
	Online   bool
}

// AskResponse carries the answer plus display hints.
type AskResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
	Notice string `json:"notice,omitempty"`
}

// Service holds the process-wide handles. Construct it once in main and pass
// it by reference; everything inside is immutable after Open except the two
// append-only stores, which guard themselves.
type Service struct {
	cfg         *config.AppConfig
	entries     []domain.CorpusEntry
	chain       *retrieval.Chain
	knowledge   *knowledge.Store
	queryLog    *querylog.Log
	weather     *advisory.Client
	llm         *llm.Client
	vectorReady bool
	logger      *zap.Logger
}

// Open loads the corpus, model and index, and assembles the retrieval chain.
// A missing model or index degrades to the keyword-only chain instead of
// failing: the assistant must stay usable fully offline.
func Open(cfg *config.AppConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := corpus.LoadCSV(cfg.Data.CorpusCSV)
	if err != nil {
		logger.Warn("corpus file unavailable, using built-in seed corpus",
			zap.String("path", cfg.Data.CorpusCSV), zap.Error(err))
		entries = corpus.Seed()
	}

	store := knowledge.NewStore(cfg.Data.KnowledgeStore, logger)
	qlog := querylog.New(cfg.Data.QueryLog, logger)

	keyword := retrieval.NewKeyword(entries, store,
		retrieval.WithMinScore(cfg.Retrieval.MinScore))

	var strategies []domain.Retriever
	vectorReady := false
	if vec, err := openVector(cfg, entries); err != nil {
		logger.Warn("vector path unavailable, keyword retrieval only", zap.Error(err))
	} else {
		strategies = append(strategies, vec)
		vectorReady = true
	}
	strategies = append(strategies, keyword)

	svc := &Service{
		cfg:         cfg,
		entries:     entries,
		chain:       retrieval.NewChain(logger, strategies...),
		knowledge:   store,
		queryLog:    qlog,
		weather:     advisory.NewClient(os.Getenv(cfg.Weather.APIKeyEnv), cfg.Weather.BaseURL, logger),
		llm: llm.New(llm.Config{
			APIKey:  os.Getenv(cfg.LLM.APIKeyEnv),
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		}, logger),
		vectorReady: vectorReady,
		logger:      logger,
	}
	logger.Info("assistant ready",
		zap.Int("corpus_size", len(entries)),
		zap.Strings("strategies", svc.chain.Strategies()))
	return svc, nil
}

func openVector(cfg *config.AppConfig, entries []domain.CorpusEntry) (*retrieval.Vector, error) {
	emb, err := tfidf.Load(cfg.Data.ModelFile)
	if err != nil {
		return nil, err
	}
	idx, err := index.ReadFile(cfg.Data.IndexFile)
	if err != nil {
		return nil, err
	}
	return retrieval.NewVector(emb, idx, entries)
}

// Ask answers a question: offline retrieval through the chain, language
// segment selection, optional online enrichment, and query logging.
func (s *Service) Ask(ctx context.Context, req AskRequest) AskResponse {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return AskResponse{Answer: "Please enter a question.", Source: "offline"}
	}
	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.Retrieval.TopK
	}

	offline := s.chain.RetrieveOffline(query, topK)
	s.queryLog.Record(req.Farmer, req.Location, query, "chat")

	if req.Online && s.llm.Available() {
		return AskResponse{
			Answer: s.llm.Answer(ctx, query, string(req.Language), offline),
			Source: "online",
		}
	}

	answer, err := lang.Segment(offline, req.Language)
	if errors.Is(err, lang.ErrTranslationUnavailable) {
		primary, _ := lang.Split(offline)
		return AskResponse{
			Answer: primary,
			Source: "offline",
			Notice: "Telugu translation not available. Showing English.",
		}
	}
	return AskResponse{Answer: answer, Source: "offline"}
}

// AddKnowledge appends an ad-hoc Q&A pair to the runtime store.
func (s *Service) AddKnowledge(question, answer, category string) error {
	return s.knowledge.Add(question, answer, category)
}

// Weather returns the current weather and a farming advisory for a location.
func (s *Service) Weather(ctx context.Context, location, farmer string) (*advisory.Report, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	report, err := s.weather.Current(ctx, location)
	if err != nil {
		return nil, advisory.FarmingAdvisory(nil), err
	}
	s.queryLog.Record(farmer, location, "weather "+location, "weather")
	return report, advisory.FarmingAdvisory(report), nil
}

// Dashboard summarizes the query log for analytics.
func (s *Service) Dashboard() querylog.Summary {
	return s.queryLog.Summarize()
}

// LogMarketQuery records a market-price lookup for analytics.
func (s *Service) LogMarketQuery(farmer, state, crop string) {
	s.queryLog.Record(farmer, state, "market "+state+" "+crop, "market")
}

// CorpusSize reports the number of loaded corpus entries.
func (s *Service) CorpusSize() int { return len(s.entries) }

// VectorReady reports whether the semantic path loaded successfully.
func (s *Service) VectorReady() bool { return s.vectorReady }

// OnlineReady reports whether the generative path is configured.
func (s *Service) OnlineReady() bool { return s.llm.Available() }
