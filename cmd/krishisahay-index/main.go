// Command krishisahay-index builds the persisted retrieval artifacts: the
// canonical corpus (CSV + JSON), the fitted embedding model and the vector
// index. It runs once, offline serving never rebuilds anything.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"krishisahay/internal/config"
	"krishisahay/internal/corpus"
	"krishisahay/internal/domain"
	"krishisahay/internal/embedding/remote"
	"krishisahay/internal/embedding/tfidf"
	"krishisahay/internal/index"
	"krishisahay/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, sourcePath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&sourcePath, "source", "", "Raw corpus CSV (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if sourcePath != "" {
		cfg.Source.Path = sourcePath
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	entries, err := buildCorpus(cfg, log)
	if err != nil {
		log.Fatal("corpus build failed", zap.Error(err))
	}

	emb, err := buildEmbedder(cfg, entries, log)
	if err != nil {
		log.Fatal("embedder init failed", zap.Error(err))
	}

	start := time.Now()
	flat, err := index.BuildFromCorpus(entries, emb)
	if err != nil {
		log.Fatal("index build failed", zap.Error(err))
	}
	if err := flat.WriteFile(cfg.Data.IndexFile); err != nil {
		log.Fatal("index write failed", zap.String("path", cfg.Data.IndexFile), zap.Error(err))
	}

	log.Info("index built",
		zap.Int("rows", flat.Len()),
		zap.Int("dimension", flat.Dimension()),
		zap.String("embedder", emb.Name()),
		zap.Duration("took", time.Since(start)),
		zap.String("index_file", cfg.Data.IndexFile))
}

func buildCorpus(cfg *config.AppConfig, log *zap.Logger) ([]domain.CorpusEntry, error) {
	f, err := os.Open(cfg.Source.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := corpus.Build(f, corpus.BuildOptions{
		QuestionColumn: cfg.Source.QuestionColumn,
		AnswerColumn:   cfg.Source.AnswerColumn,
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", cfg.Source.Path)
	}
	if err := corpus.SaveCSV(cfg.Data.CorpusCSV, entries); err != nil {
		return nil, err
	}
	if err := corpus.SaveJSON(cfg.Data.CorpusJSON, entries); err != nil {
		return nil, err
	}
	log.Info("corpus cleaned",
		zap.Int("entries", len(entries)),
		zap.String("csv", cfg.Data.CorpusCSV),
		zap.String("json", cfg.Data.CorpusJSON))
	return entries, nil
}

func buildEmbedder(cfg *config.AppConfig, entries []domain.CorpusEntry, log *zap.Logger) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		questions := make([]string, len(entries))
		for i, e := range entries {
			questions[i] = e.Question
		}
		emb := tfidf.New()
		if err := emb.Fit(questions); err != nil {
			return nil, err
		}
		if err := emb.Save(cfg.Data.ModelFile); err != nil {
			return nil, err
		}
		log.Info("tfidf model fitted",
			zap.Int("dimension", emb.Dimension()),
			zap.String("model_file", cfg.Data.ModelFile))
		return emb, nil
	case "remote":
		rc := cfg.Embedder.Remote
		if rc == nil {
			rc = &config.RemoteEmbedderConfig{}
		}
		log.Warn("remote embedder selected; the serving path loads the tfidf model cache, " +
			"so a remote-built index is only searchable by a matching remote embedder")
		return remote.New(remote.Config{
			BaseURL:   rc.BaseURL,
			APIKeyEnv: rc.APIKeyEnv,
			Model:     rc.Model,
			Timeout:   time.Duration(rc.TimeoutSecs) * time.Second,
			BatchSize: rc.BatchSize,
		})
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}
