package models

// Sentence is a single corpus entry: the text to embed plus its category label.
type Sentence struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// ResultRow is one row of the ranked similarity output.
type ResultRow struct {
	Rank     int     `json:"rank"`
	Score    float64 `json:"score"`
	Text     string  `json:"text"`
	Category string  `json:"category"`
}

// Chunk represents a split piece of text with optional metadata
// (e.g. the markdown headers a section was found under).
type Chunk struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
