// Package cachekey derives stable digests from the settings that determine
// what gets embedded and indexed. Two option sets that differ only in the
// order of their preprocessing flags map to the same key, so a persisted
// index can be reused across runs with identical settings.
package cachekey

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Options is the full set of user-chosen settings addressing one index.
type Options struct {
	Source       string   // data source identity: "sample" or an uploaded file name
	Model        string   // embedding model, e.g. "ollama/nomic-embed-text"
	Preprocess   []string // preprocessing flags, any order
	UseChunking  bool
	ChunkSize    int
	ChunkOverlap int
	Metric       string // distance metric label, normally "cosine"
}

// DeriveKey serializes opts into a canonical form and hashes it.
// Variable-order fields are sorted first so ordering never affects the
// result. Pure function, no side effects.
func DeriveKey(opts Options) string {
	flags := make([]string, len(opts.Preprocess))
	copy(flags, opts.Preprocess)
	sort.Strings(flags)

	// encoding/json writes map keys in sorted order, which makes the
	// serialization canonical.
	canonical := map[string]any{
		"source":     opts.Source,
		"model":      opts.Model,
		"preprocess": flags,
		"chunking": map[string]any{
			"use":     opts.UseChunking,
			"size":    opts.ChunkSize,
			"overlap": opts.ChunkOverlap,
		},
		"distance_metric": opts.Metric,
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		// Marshalling a map of strings, bools and ints cannot fail.
		panic(err)
	}

	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
