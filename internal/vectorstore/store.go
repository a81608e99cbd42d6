// Package vectorstore persists embedded documents and serves
// nearest-neighbor searches over them. The on-disk layout of a persisted
// index is owned by the underlying library; this package only addresses
// indexes by cache key and keeps the build-or-load contract.
package vectorstore

import "context"

// Status reports whether a resolved index was found or freshly built.
type Status string

const (
	StatusLoaded  Status = "loaded"
	StatusCreated Status = "created"
)

// Document is an embedded corpus entry headed for an index.
type Document struct {
	ID        string
	Content   string
	Category  string
	Embedding []float32
}

// Hit is one nearest-neighbor result. Distance is the index's native
// distance for its configured metric; for cosine it lies in [0, 2] and
// similarity is 1 - distance.
type Hit struct {
	Content  string
	Category string
	Distance float64
}

// Index serves read-only nearest-neighbor searches.
type Index interface {
	// Search returns up to k hits ordered by ascending distance.
	// An empty result is a valid outcome for an empty corpus.
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]Hit, error)

	// Metric names the distance metric the index was built with.
	Metric() string
}

// BuildFunc populates a fresh index by loading source data, preprocessing,
// embedding and adding documents through add.
type BuildFunc func(ctx context.Context, add func(ctx context.Context, docs []Document) error) error
