package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"embedlab/internal/cachekey"
	"embedlab/internal/config"
	"embedlab/internal/corpus"
	"embedlab/internal/embedding"
	"embedlab/internal/helper"
	"embedlab/internal/models"
	"embedlab/internal/vectorstore"
)

// corpusFlags are the option flags shared by the index and search commands.
// Together with the configured model they form the cache key.
type corpusFlags struct {
	source     string
	file       string
	model      string
	preprocess []string
	chunk      bool
	chunkSize  int
	overlap    int
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", models.SourceSample, "data source: sample or file")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "document to index when --source=file")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "embedding model override, provider/model or model name")
	cmd.Flags().StringSliceVarP(&f.preprocess, "preprocess", "p", nil, "preprocessing flags: lowercase, strip-symbols, trim-spaces")
	cmd.Flags().BoolVar(&f.chunk, "chunk", false, "split documents into chunks before embedding")
	cmd.Flags().IntVar(&f.chunkSize, "chunk-size", cfgDefaultChunkSize, "chunk size in characters")
	cmd.Flags().IntVar(&f.overlap, "chunk-overlap", cfgDefaultChunkOverlap, "chunk overlap in characters")
}

// flag defaults must exist before config loads; LoadConfig uses the same
// values when the file is absent.
const (
	cfgDefaultChunkSize    = 500
	cfgDefaultChunkOverlap = 50
)

// effectiveLLM applies the --model override ("provider/model" or just a
// model name) on top of the configured embedding backend.
func (f *corpusFlags) effectiveLLM() *config.LLMConfig {
	llm := cfg.EmbedLLM
	if f.model != "" {
		if provider, model, ok := strings.Cut(f.model, "/"); ok {
			llm.Provider = provider
			llm.Model = model
		} else {
			llm.Model = f.model
		}
	}
	return &llm
}

func (f *corpusFlags) options(llm *config.LLMConfig) (cachekey.Options, error) {
	if unknown := corpus.ValidateFlags(f.preprocess); len(unknown) > 0 {
		return cachekey.Options{}, fmt.Errorf("%w: unknown preprocess flags: %s",
			models.ErrConfiguration, strings.Join(unknown, ", "))
	}

	source := f.source
	if f.source == models.SourceFile {
		if f.file == "" {
			return cachekey.Options{}, fmt.Errorf("%w: --source file needs --file", models.ErrConfiguration)
		}
		source = f.file
	}

	return cachekey.Options{
		Source:       source,
		Model:        embedding.ModelName(llm),
		Preprocess:   f.preprocess,
		UseChunking:  f.chunk,
		ChunkSize:    f.chunkSize,
		ChunkOverlap: f.overlap,
		Metric:       models.MetricCosine,
	}, nil
}

// buildFunc returns the builder Resolve invokes on a cache miss: load the
// corpus, preprocess, embed, and add every document in one pass.
func buildFunc(embedder embedding.Embedder, llm *config.LLMConfig, f corpusFlags) vectorstore.BuildFunc {
	return func(ctx context.Context, add func(ctx context.Context, docs []vectorstore.Document) error) error {
		sentences, err := corpus.Load(f.source, f.file, corpus.LoadOptions{
			UseChunking:  f.chunk,
			ChunkSize:    f.chunkSize,
			ChunkOverlap: f.overlap,
		})
		if err != nil {
			return err
		}
		if len(sentences) == 0 {
			return fmt.Errorf("%w: source produced no sentences to index", models.ErrData)
		}

		texts := make([]string, len(sentences))
		for i, s := range sentences {
			texts[i] = corpus.Preprocess(s.Text, f.preprocess)
		}

		log.Info().Int("sentences", len(texts)).Msg("Embedding corpus")
		vecs, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return embedding.WrapEmbedError(llm, err)
		}

		docs := make([]vectorstore.Document, len(sentences))
		for i, s := range sentences {
			docs[i] = vectorstore.Document{
				ID:        helper.GenerateUUID(),
				Content:   s.Text,
				Category:  s.Category,
				Embedding: vecs[i],
			}
		}
		return add(ctx, docs)
	}
}

// resolveIndex derives the cache key and resolves the persisted index for
// the selected backend.
func resolveIndex(ctx context.Context, backend string, f corpusFlags) (vectorstore.Index, string, vectorstore.Status, error) {
	llm := f.effectiveLLM()
	opts, err := f.options(llm)
	if err != nil {
		return nil, "", "", err
	}
	key := cachekey.DeriveKey(opts)

	embedder, err := embedding.NewEmbedder(llm)
	if err != nil {
		return nil, "", "", err
	}
	build := buildFunc(embedder, llm, f)

	switch backend {
	case models.BackendChromem:
		store, status, err := vectorstore.Resolve(ctx, cfg.Cache.Dir, key, cfg.Cache.Collection, build)
		if err != nil {
			return nil, "", "", err
		}
		return store, key, status, nil
	case models.BackendPostgres:
		sqldb, err := vectorstore.ConnectDB(&cfg.Database)
		if err != nil {
			return nil, "", "", err
		}
		db := vectorstore.NewDB(sqldb, cfg.Database.Debug)
		if err := vectorstore.InitDB(ctx, db); err != nil {
			return nil, "", "", fmt.Errorf("%w: init embeddings table: %v", models.ErrDependency, err)
		}
		store, status, err := vectorstore.ResolvePg(ctx, db, key, build)
		if err != nil {
			return nil, "", "", err
		}
		return store, key, status, nil
	default:
		return nil, "", "", fmt.Errorf("%w: backend %q has no persisted index", models.ErrConfiguration, backend)
	}
}
