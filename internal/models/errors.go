package models

import "errors"

// Error classes for the routing boundary. Packages wrap these with %w so
// the CLI can classify failures without knowing their origin.
var (
	// ErrConfiguration covers missing or invalid user selections
	// (no file for an upload source, unknown model or backend).
	ErrConfiguration = errors.New("configuration error")

	// ErrDependency covers unreachable or unauthorized embedding backends.
	ErrDependency = errors.New("dependency error")

	// ErrData covers unsupported file types and empty parsed corpora.
	ErrData = errors.New("data error")
)
