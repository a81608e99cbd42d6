package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"embedlab/internal/config"
	"embedlab/internal/models"
	"embedlab/internal/vectorstore"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.EmbedQuery(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fakeIndex returns canned hits with a configurable metric label.
type fakeIndex struct {
	hits   []vectorstore.Hit
	metric string
	gotK   int
}

func (f *fakeIndex) Search(_ context.Context, _ []float32, k int) ([]vectorstore.Hit, error) {
	f.gotK = k
	if len(f.hits) > k {
		return f.hits[:k], nil
	}
	return f.hits, nil
}

func (f *fakeIndex) Metric() string { return f.metric }

func testRouter(e *fakeEmbedder) *Router {
	return NewRouter(e, &config.LLMConfig{Provider: "ollama", Model: "test"})
}

func testCorpus() []models.Sentence {
	return []models.Sentence{
		{Category: "a", Text: "north"},
		{Category: "b", Text: "east"},
		{Category: "a", Text: "northeast"},
	}
}

func compassEmbedder() *fakeEmbedder {
	inv := float32(1 / math.Sqrt2)
	return &fakeEmbedder{vectors: map[string][]float32{
		"north":     {0, 1},
		"east":      {1, 0},
		"northeast": {inv, inv},
	}}
}

func TestDirectRanksByCosine(t *testing.T) {
	r := testRouter(compassEmbedder())
	rows, err := r.Direct(context.Background(), Request{Query: "north", TopK: 3, Threshold: -1}, testCorpus())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Text != "north" || rows[1].Text != "northeast" || rows[2].Text != "east" {
		t.Errorf("unexpected ranking: %+v", rows)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("row %d has rank %d", i, row.Rank)
		}
	}
	if math.Abs(rows[0].Score-1) > 1e-6 {
		t.Errorf("self-similarity should be 1, got %f", rows[0].Score)
	}
}

func TestDirectThresholdCanEmptyResults(t *testing.T) {
	r := testRouter(compassEmbedder())
	rows, err := r.Direct(context.Background(), Request{Query: "north", TopK: 5, Threshold: 0.9}, testCorpus()[1:2])
	if err != nil {
		t.Fatalf("high threshold must not be an error, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result set, got %+v", rows)
	}
}

func TestDirectTopKCapsRows(t *testing.T) {
	r := testRouter(compassEmbedder())
	rows, err := r.Direct(context.Background(), Request{Query: "north", TopK: 2, Threshold: -1}, testCorpus())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestDirectEmbedFailureIsDependencyError(t *testing.T) {
	r := testRouter(&fakeEmbedder{err: errors.New("connection refused")})
	_, err := r.Direct(context.Background(), Request{Query: "north", TopK: 1}, testCorpus())
	if !errors.Is(err, models.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestDirectEmptyCorpusIsDataError(t *testing.T) {
	r := testRouter(compassEmbedder())
	_, err := r.Direct(context.Background(), Request{Query: "north", TopK: 1}, nil)
	if !errors.Is(err, models.ErrData) {
		t.Fatalf("expected data error, got %v", err)
	}
}

func TestValidateRejectsBadRequests(t *testing.T) {
	r := testRouter(compassEmbedder())
	if _, err := r.Direct(context.Background(), Request{Query: "", TopK: 1}, testCorpus()); !errors.Is(err, models.ErrConfiguration) {
		t.Errorf("empty query: expected configuration error, got %v", err)
	}
	if _, err := r.Direct(context.Background(), Request{Query: "north", TopK: 0}, testCorpus()); !errors.Is(err, models.ErrConfiguration) {
		t.Errorf("k=0: expected configuration error, got %v", err)
	}
}

func TestIndexedConvertsDistanceToSimilarity(t *testing.T) {
	idx := &fakeIndex{
		metric: models.MetricCosine,
		hits: []vectorstore.Hit{
			{Content: "north", Category: "a", Distance: 0},
			{Content: "northeast", Category: "a", Distance: 0.29},
			{Content: "east", Category: "b", Distance: 1},
		},
	}
	r := testRouter(compassEmbedder())
	rows, err := r.Indexed(context.Background(), Request{Query: "north", TopK: 3}, idx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if math.Abs(rows[0].Score-1) > 1e-9 || math.Abs(rows[1].Score-0.71) > 1e-9 {
		t.Errorf("distance not converted to similarity: %+v", rows)
	}
	if idx.gotK != 3 {
		t.Errorf("expected k=3 passed to index, got %d", idx.gotK)
	}
}

func TestIndexedRejectsNonCosineMetric(t *testing.T) {
	idx := &fakeIndex{metric: "l2"}
	r := testRouter(compassEmbedder())
	_, err := r.Indexed(context.Background(), Request{Query: "north", TopK: 3}, idx)
	if !errors.Is(err, models.ErrConfiguration) {
		t.Fatalf("expected configuration error for non-cosine metric, got %v", err)
	}
}

func TestIndexedEmptyCorpus(t *testing.T) {
	idx := &fakeIndex{metric: models.MetricCosine}
	r := testRouter(compassEmbedder())
	rows, err := r.Indexed(context.Background(), Request{Query: "north", TopK: 3}, idx)
	if err != nil {
		t.Fatalf("empty corpus must not be an error, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}

func TestRouteDispatch(t *testing.T) {
	r := testRouter(compassEmbedder())
	idx := &fakeIndex{metric: models.MetricCosine, hits: []vectorstore.Hit{{Content: "north", Distance: 0}}}

	if _, err := r.Route(context.Background(), models.BackendDirect, Request{Query: "north", TopK: 1, Threshold: -1}, nil, testCorpus()); err != nil {
		t.Errorf("direct dispatch failed: %v", err)
	}
	if _, err := r.Route(context.Background(), models.BackendChromem, Request{Query: "north", TopK: 1}, idx, nil); err != nil {
		t.Errorf("indexed dispatch failed: %v", err)
	}
	if _, err := r.Route(context.Background(), "abacus", Request{Query: "north", TopK: 1}, idx, nil); !errors.Is(err, models.ErrConfiguration) {
		t.Errorf("unknown backend: expected configuration error, got %v", err)
	}
}

func TestCosineSimilarityBasics(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors: expected 0, got %f", got)
	}
	if got := CosineSimilarity([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Errorf("opposite vectors: expected -1, got %f", got)
	}
	if got := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}); got != 0 {
		t.Errorf("mismatched lengths: expected 0, got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("unexpected normalization: %v", v)
	}
	zero := Normalize([]float32{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector should stay zero: %v", zero)
	}
}
