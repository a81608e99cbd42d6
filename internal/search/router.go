// Package search routes a similarity query to either a brute-force cosine
// computation over freshly embedded documents or to a persisted index's
// native nearest-neighbor search.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"embedlab/internal/config"
	"embedlab/internal/corpus"
	"embedlab/internal/embedding"
	"embedlab/internal/models"
	"embedlab/internal/vectorstore"
)

// Request carries the user's query and search parameters.
type Request struct {
	Query      string
	TopK       int
	Threshold  float64 // direct mode only
	Preprocess []string
}

// Router dispatches requests to the selected backend.
type Router struct {
	Embedder embedding.Embedder
	LLM      *config.LLMConfig
}

// NewRouter builds a router around an embedder.
func NewRouter(embedder embedding.Embedder, llm *config.LLMConfig) *Router {
	return &Router{Embedder: embedder, LLM: llm}
}

// Route runs the request against the named backend. Direct mode ranks
// rawData by brute-force cosine similarity; indexed backends delegate to
// the persisted index. An empty result set is a valid, non-error outcome.
func (r *Router) Route(ctx context.Context, backend string, req Request, index vectorstore.Index, rawData []models.Sentence) ([]models.ResultRow, error) {
	switch backend {
	case models.BackendDirect:
		return r.Direct(ctx, req, rawData)
	case models.BackendChromem, models.BackendPostgres:
		return r.Indexed(ctx, req, index)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", models.ErrConfiguration, backend)
	}
}

// Direct embeds the query and every document fresh, normalizes to unit
// length, scores by cosine similarity, filters by threshold, and returns
// the top K rows by descending score.
func (r *Router) Direct(ctx context.Context, req Request, rawData []models.Sentence) ([]models.ResultRow, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if len(rawData) == 0 {
		return nil, fmt.Errorf("%w: no data to compare against", models.ErrData)
	}

	processedQuery := corpus.Preprocess(req.Query, req.Preprocess)
	texts := make([]string, len(rawData))
	for i, s := range rawData {
		texts[i] = corpus.Preprocess(s.Text, req.Preprocess)
	}

	docVecs, err := r.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, embedding.WrapEmbedError(r.LLM, err)
	}
	queryVec, err := r.Embedder.EmbedQuery(ctx, processedQuery)
	if err != nil {
		return nil, embedding.WrapEmbedError(r.LLM, err)
	}

	queryVec = Normalize(queryVec)

	rows := make([]models.ResultRow, 0, len(rawData))
	for i, vec := range docVecs {
		score := CosineSimilarity(queryVec, Normalize(vec))
		if score < req.Threshold {
			continue
		}
		rows = append(rows, models.ResultRow{
			Score:    score,
			Text:     rawData[i].Text,
			Category: rawData[i].Category,
		})
	}

	// Stable sort keeps ties in original corpus order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	if len(rows) > req.TopK {
		rows = rows[:req.TopK]
	}
	rank(rows)

	log.Debug().Int("candidates", len(rawData)).Int("results", len(rows)).Msg("Direct search done")
	return rows, nil
}

// Indexed delegates to the persisted index's nearest-neighbor search and
// converts its native distance into a similarity score. The conversion
// similarity = 1 - distance is only meaningful for a normalized metric,
// so any index not built with cosine distance is rejected.
func (r *Router) Indexed(ctx context.Context, req Request, index vectorstore.Index) ([]models.ResultRow, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if index == nil {
		return nil, fmt.Errorf("%w: no index resolved; build or load one first", models.ErrConfiguration)
	}
	if metric := index.Metric(); metric != models.MetricCosine {
		return nil, fmt.Errorf("%w: index metric %q cannot be converted to a similarity score", models.ErrConfiguration, metric)
	}

	processedQuery := corpus.Preprocess(req.Query, req.Preprocess)
	queryVec, err := r.Embedder.EmbedQuery(ctx, processedQuery)
	if err != nil {
		return nil, embedding.WrapEmbedError(r.LLM, err)
	}

	hits, err := index.Search(ctx, queryVec, req.TopK)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ResultRow, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, models.ResultRow{
			Score:    1 - h.Distance,
			Text:     h.Content,
			Category: h.Category,
		})
	}

	// Hits arrive distance-ascending; a stable sort preserves the index's
	// return order for equal scores.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	rank(rows)

	log.Debug().Int("results", len(rows)).Msg("Indexed search done")
	return rows, nil
}

func validate(req Request) error {
	if req.Query == "" {
		return fmt.Errorf("%w: query must not be empty", models.ErrConfiguration)
	}
	if req.TopK < 1 {
		return fmt.Errorf("%w: top-k must be at least 1, got %d", models.ErrConfiguration, req.TopK)
	}
	return nil
}

func rank(rows []models.ResultRow) {
	for i := range rows {
		rows[i].Rank = i + 1
	}
}
