package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Resolve loads the persisted index addressed by key under root, or builds
// one when none exists. The first call for a key reports StatusCreated,
// later calls StatusLoaded. A failed build removes the key's directory so
// nothing partial stays addressable.
func Resolve(ctx context.Context, root, key, collection string, build BuildFunc) (*ChromemStore, Status, error) {
	dir := filepath.Join(root, key)

	if _, err := os.Stat(dir); err == nil {
		store, err := OpenChromem(dir, collection)
		if err != nil {
			return nil, "", fmt.Errorf("load index %s: %w", key, err)
		}
		log.Info().Str("key", key).Int("documents", store.Count()).Msg("Loaded persisted index")
		return store, StatusLoaded, nil
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, "", fmt.Errorf("create cache root: %w", err)
	}

	store, err := OpenChromem(dir, collection)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, "", fmt.Errorf("create index %s: %w", key, err)
	}

	if err := build(ctx, store.Add); err != nil {
		// Either a fully built index is persisted or nothing is.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Warn().Err(rmErr).Str("dir", dir).Msg("Failed to clean up partial index")
		}
		return nil, "", err
	}

	log.Info().Str("key", key).Int("documents", store.Count()).Msg("Created persisted index")
	return store, StatusCreated, nil
}
