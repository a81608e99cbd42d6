package models

// Preprocessing flags, applied in a fixed order regardless of selection order.
const (
	PreprocessLowercase    = "lowercase"
	PreprocessStripSymbols = "strip-symbols"
	PreprocessTrimSpaces   = "trim-spaces"
)

// PreprocessFlags lists every supported flag.
var PreprocessFlags = []string{
	PreprocessLowercase,
	PreprocessStripSymbols,
	PreprocessTrimSpaces,
}

// Data source identifiers.
const (
	SourceSample = "sample"
	SourceFile   = "file"
)

// Search backends.
const (
	BackendDirect   = "direct"
	BackendChromem  = "chromem"
	BackendPostgres = "postgres"
)

// MetricCosine is the only distance metric the indexed backends are
// configured with. Converting a native distance to a similarity score
// via 1 - distance is only valid for this metric.
const MetricCosine = "cosine"
