package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataConfig locates the persisted artifacts: corpus table, vector index,
// fitted embedding model, ad-hoc knowledge store and query log.
type DataConfig struct {
	CorpusCSV      string `yaml:"corpus_csv"`
	CorpusJSON     string `yaml:"corpus_json"`
	IndexFile      string `yaml:"index_file"`
	ModelFile      string `yaml:"model_file"`
	KnowledgeStore string `yaml:"knowledge_store"`
	QueryLog       string `yaml:"query_log"`
}

// SourceConfig describes the raw corpus export consumed by the index build.
type SourceConfig struct {
	Path           string `yaml:"path"`
	QuestionColumn string `yaml:"question_column"`
	AnswerColumn   string `yaml:"answer_column"`
}

// RemoteEmbedderConfig configures the OpenAI-compatible embeddings endpoint.
type RemoteEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size"`
}

// EmbedderConfig selects and configures the embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	Remote *RemoteEmbedderConfig `yaml:"remote,omitempty"`
}

// RetrievalConfig tunes the offline answer paths.
type RetrievalConfig struct {
	TopK     int `yaml:"top_k"`
	MinScore int `yaml:"min_score"`
}

// WeatherConfig configures the OpenWeatherMap lookup.
type WeatherConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

// LLMConfig configures the Groq chat client.
type LLMConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggerConfig configures log verbosity.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data      DataConfig      `yaml:"data"`
	Source    SourceConfig    `yaml:"source"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Weather   WeatherConfig   `yaml:"weather"`
	LLM       LLMConfig       `yaml:"llm"`
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then
// ~/.config/krishisahay/config.yaml. If neither exists, it writes defaults to
// the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "krishisahay", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Data: DataConfig{
			CorpusCSV:      "data/clean_kcc.csv",
			CorpusJSON:     "data/kcc_qa_pairs.json",
			IndexFile:      "data/kcc_index.ksix",
			ModelFile:      "data/tfidf_model.bin",
			KnowledgeStore: "knowledge_base/agricultural_kb.json",
			QueryLog:       "data/query_logs.json",
		},
		Source: SourceConfig{
			Path:           "data/kcc_raw.csv",
			QuestionColumn: "QueryText",
			AnswerColumn:   "KccAns",
		},
		Embedder:  EmbedderConfig{Type: "tfidf"},
		Retrieval: RetrievalConfig{TopK: 3, MinScore: 1},
		Weather:   WeatherConfig{APIKeyEnv: "WEATHER_API_KEY"},
		LLM:       LLMConfig{APIKeyEnv: "GROQ_API_KEY"},
		Server:    ServerConfig{Port: "8080"},
		Logger:    LoggerConfig{Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Data.CorpusCSV == "" {
		cfg.Data.CorpusCSV = def.Data.CorpusCSV
	}
	if cfg.Data.CorpusJSON == "" {
		cfg.Data.CorpusJSON = def.Data.CorpusJSON
	}
	if cfg.Data.IndexFile == "" {
		cfg.Data.IndexFile = def.Data.IndexFile
	}
	if cfg.Data.ModelFile == "" {
		cfg.Data.ModelFile = def.Data.ModelFile
	}
	if cfg.Data.KnowledgeStore == "" {
		cfg.Data.KnowledgeStore = def.Data.KnowledgeStore
	}
	if cfg.Data.QueryLog == "" {
		cfg.Data.QueryLog = def.Data.QueryLog
	}
	if cfg.Source.QuestionColumn == "" {
		cfg.Source.QuestionColumn = def.Source.QuestionColumn
	}
	if cfg.Source.AnswerColumn == "" {
		cfg.Source.AnswerColumn = def.Source.AnswerColumn
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.MinScore <= 0 {
		cfg.Retrieval.MinScore = def.Retrieval.MinScore
	}
	if cfg.Weather.APIKeyEnv == "" {
		cfg.Weather.APIKeyEnv = def.Weather.APIKeyEnv
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = def.LLM.APIKeyEnv
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = def.Logger.Level
	}
	if cfg.Embedder.Type == "remote" && cfg.Embedder.Remote != nil {
		r := cfg.Embedder.Remote
		if r.BaseURL == "" {
			r.BaseURL = "http://localhost:11434/v1"
		}
		if r.Model == "" {
			r.Model = "all-minilm"
		}
		if r.TimeoutSecs == 0 {
			r.TimeoutSecs = 30
		}
		if r.BatchSize == 0 {
			r.BatchSize = 32
		}
	}
}
