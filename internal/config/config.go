package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds connection settings for an embedding backend.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "ollama" or "openai"
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Key      string `yaml:"key"`
	KeyEnv   string `yaml:"key_env"`
}

// CacheConfig controls where persisted vector indexes live.
type CacheConfig struct {
	Dir        string `yaml:"dir"`
	Collection string `yaml:"collection"`
}

// ChunkingConfig controls splitting of uploaded documents before embedding.
type ChunkingConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	Overlap int  `yaml:"overlap"`
}

// SearchConfig holds default search parameters.
type SearchConfig struct {
	Backend   string  `yaml:"backend"`
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"`
}

// DatabaseConfig holds Postgres settings for the pgvector backend.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type Config struct {
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	Cache    CacheConfig    `yaml:"cache"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Search   SearchConfig   `yaml:"search"`
	Database DatabaseConfig `yaml:"database"`
}

// LoadConfig reads a config from path. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.EmbedLLM.Provider == "" {
		cfg.EmbedLLM.Provider = "ollama"
	}
	if cfg.EmbedLLM.BaseURL == "" && cfg.EmbedLLM.Provider == "ollama" {
		cfg.EmbedLLM.BaseURL = "http://localhost:11434"
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = "nomic-embed-text"
	}
	if cfg.EmbedLLM.KeyEnv == "" && cfg.EmbedLLM.Provider == "openai" {
		cfg.EmbedLLM.KeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = "./vs_cache"
	}
	if cfg.Cache.Collection == "" {
		cfg.Cache.Collection = "sentences"
	}
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 500
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = 50
	}
	if cfg.Search.Backend == "" {
		cfg.Search.Backend = "chromem"
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 10
	}
	if cfg.Search.Threshold == 0 {
		cfg.Search.Threshold = 0.2
	}
}
