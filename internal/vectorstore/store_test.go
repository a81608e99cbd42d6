package vectorstore

import (
	"context"
	"errors"
	"testing"
)

func testDocs() []Document {
	return []Document{
		{ID: "1", Content: "alpha", Category: "a", Embedding: []float32{1, 0, 0}},
		{ID: "2", Content: "beta", Category: "b", Embedding: []float32{0, 1, 0}},
		{ID: "3", Content: "gamma", Category: "a", Embedding: []float32{0, 0, 1}},
	}
}

func buildTestDocs(ctx context.Context, add func(context.Context, []Document) error) error {
	return add(ctx, testDocs())
}

func TestResolveCreatesThenLoads(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	key := "abc123"

	store, status, err := Resolve(ctx, root, key, "sentences", buildTestDocs)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusCreated {
		t.Fatalf("first resolve: expected %q, got %q", StatusCreated, status)
	}
	if store.Count() != 3 {
		t.Fatalf("expected 3 documents, got %d", store.Count())
	}

	store2, status2, err := Resolve(ctx, root, key, "sentences", func(context.Context, func(context.Context, []Document) error) error {
		t.Fatal("build must not run when the index already exists")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if status2 != StatusLoaded {
		t.Fatalf("second resolve: expected %q, got %q", StatusLoaded, status2)
	}
	if store2.Count() != store.Count() {
		t.Fatalf("loaded index has %d documents, created had %d", store2.Count(), store.Count())
	}
}

func TestResolveFailedBuildLeavesNothing(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	key := "def456"

	buildErr := errors.New("embedding backend down")
	_, _, err := Resolve(ctx, root, key, "sentences", func(ctx context.Context, add func(context.Context, []Document) error) error {
		// Partial progress before the failure.
		if err := add(ctx, testDocs()[:1]); err != nil {
			return err
		}
		return buildErr
	})
	if !errors.Is(err, buildErr) {
		t.Fatalf("expected build error, got %v", err)
	}

	// Nothing may be addressable under the key: the next resolve builds again.
	_, status, err := Resolve(ctx, root, key, "sentences", buildTestDocs)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusCreated {
		t.Fatalf("resolve after failed build: expected %q, got %q", StatusCreated, status)
	}
}

func TestChromemSearchOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	store, _, err := Resolve(ctx, t.TempDir(), "key", "sentences", buildTestDocs)
	if err != nil {
		t.Fatal(err)
	}

	hits, err := store.Search(ctx, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].Content != "alpha" {
		t.Errorf("expected closest hit alpha, got %s", hits[0].Content)
	}
	if hits[0].Distance > hits[1].Distance {
		t.Errorf("hits not ordered by ascending distance: %v", hits)
	}
	if hits[0].Distance > 0.001 {
		t.Errorf("identical vector should have near-zero distance, got %f", hits[0].Distance)
	}
	if hits[0].Category != "a" {
		t.Errorf("expected category metadata a, got %q", hits[0].Category)
	}
}

func TestChromemSearchClampsK(t *testing.T) {
	ctx := context.Background()
	store, _, err := Resolve(ctx, t.TempDir(), "key", "sentences", buildTestDocs)
	if err != nil {
		t.Fatal(err)
	}
	hits, err := store.Search(ctx, []float32{1, 0, 0}, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected k clamped to corpus size 3, got %d hits", len(hits))
	}
}

func TestChromemSearchEmptyCorpus(t *testing.T) {
	ctx := context.Background()
	store, err := OpenChromem(t.TempDir(), "sentences")
	if err != nil {
		t.Fatal(err)
	}
	hits, err := store.Search(ctx, []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("empty corpus must not be an error, got %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}

func TestChromemSearchRejectsBadK(t *testing.T) {
	ctx := context.Background()
	store, _, err := Resolve(ctx, t.TempDir(), "key", "sentences", buildTestDocs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Search(ctx, []float32{1, 0, 0}, 0); err == nil {
		t.Fatal("expected error for k < 1")
	}
}

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float32{1, -0.5, 0})
	want := "[1,-0.5,0]"
	if got != want {
		t.Errorf("vectorLiteral = %q, want %q", got, want)
	}
}

func TestResolveDistinctKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	_, status1, err := Resolve(ctx, root, "key-one", "sentences", buildTestDocs)
	if err != nil {
		t.Fatal(err)
	}
	_, status2, err := Resolve(ctx, root, "key-two", "sentences", func(ctx context.Context, add func(context.Context, []Document) error) error {
		return add(ctx, []Document{{ID: "x", Content: "delta", Category: "d", Embedding: []float32{1, 0, 0}}})
	})
	if err != nil {
		t.Fatal(err)
	}
	if status1 != StatusCreated || status2 != StatusCreated {
		t.Fatalf("distinct keys should both build: %q, %q", status1, status2)
	}
}
