package embedding

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"embedlab/internal/config"
	"embedlab/internal/models"
)

// Embedder converts text into vectors. Satisfied by langchaingo's
// EmbedderImpl; tests substitute a deterministic fake.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// NewEmbedder builds the embedder selected by the config.
func NewEmbedder(cfg *config.LLMConfig) (Embedder, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaEmbedder(cfg)
	case "openai":
		return NewOpenAIEmbedder(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", models.ErrConfiguration, cfg.Provider)
	}
}

// NewOllamaEmbedder connects to a local Ollama service.
func NewOllamaEmbedder(cfg *config.LLMConfig) (Embedder, error) {
	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("embedding_model", cfg.Model).
		Msg("Creating ollama embedder")

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize ollama: %v", models.ErrDependency, err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("%w: create embedder: %v", models.ErrDependency, err)
	}
	return embedder, nil
}

// NewOpenAIEmbedder connects to OpenAI or an OpenAI-compatible endpoint.
func NewOpenAIEmbedder(cfg *config.LLMConfig) (Embedder, error) {
	key := cfg.Key
	if key == "" && cfg.KeyEnv != "" {
		key = os.Getenv(cfg.KeyEnv)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: no API key set for openai embedder (set %s)", models.ErrDependency, cfg.KeyEnv)
	}

	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(key, "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize openai: %v", models.ErrDependency, err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("%w: create embedder: %v", models.ErrDependency, err)
	}
	return embedder, nil
}

// ModelName is the backend identity used in cache keys, e.g.
// "ollama/nomic-embed-text".
func ModelName(cfg *config.LLMConfig) string {
	return cfg.Provider + "/" + cfg.Model
}

// WrapEmbedError classifies an embedding failure and attaches a hint for
// the common local-service case.
func WrapEmbedError(cfg *config.LLMConfig, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if cfg.Provider == "ollama" && strings.Contains(msg, "connection refused") {
		return fmt.Errorf("%w: %v (is the Ollama service running at %s?)", models.ErrDependency, err, cfg.BaseURL)
	}
	return fmt.Errorf("%w: %v", models.ErrDependency, err)
}
