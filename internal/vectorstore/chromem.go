package vectorstore

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"embedlab/internal/models"
)

const compress = false

// ChromemStore wraps a chromem-go persistent database holding one
// collection of embedded sentences.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	dir        string
}

// OpenChromem opens (or creates) the persistent database at dir and its
// collection. Opening an existing directory loads the persisted index.
func OpenChromem(dir, collectionName string) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(dir, compress)
	if err != nil {
		return nil, fmt.Errorf("open persistent db: %w", err)
	}
	c, err := db.GetOrCreateCollection(collectionName, map[string]string{"metric": models.MetricCosine}, nil)
	if err != nil {
		return nil, fmt.Errorf("create/get collection: %w", err)
	}
	return &ChromemStore{db: db, collection: c, dir: dir}, nil
}

// Add persists documents into the collection. Embeddings must already be
// computed; chromem normalizes them on insert.
func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	chromemDocs := make([]chromem.Document, len(docs))
	for i, d := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        d.ID,
			Content:   d.Content,
			Metadata:  map[string]string{"category": d.Category},
			Embedding: d.Embedding,
		}
	}
	if err := s.collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	return nil
}

// Search returns up to k hits by ascending cosine distance. Read-only.
func (s *ChromemStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]Hit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: result count must be at least 1, got %d", models.ErrConfiguration, k)
	}
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("query by similarity: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			Content:  r.Content,
			Category: r.Metadata["category"],
			Distance: 1 - float64(r.Similarity),
		}
	}
	return hits, nil
}

// Metric reports the collection's distance metric.
func (s *ChromemStore) Metric() string {
	return models.MetricCosine
}

// Count returns the number of persisted documents.
func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// Dir returns the directory backing this index.
func (s *ChromemStore) Dir() string {
	return s.dir
}
