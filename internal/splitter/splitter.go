// Package splitter wraps off-the-shelf text-splitting strategies behind a
// single registry. The splitting algorithms themselves are imported; this
// package only routes a strategy name plus parameters to the right library
// call and normalizes the output into chunks.
package splitter

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"embedlab/internal/models"
)

// Strategy names.
const (
	Character = "character"
	Recursive = "recursive"
	Token     = "token"
	Markdown  = "markdown"
	Code      = "code"
)

// Config holds the user-chosen splitting parameters.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	Language     string // only used by the code strategy
}

// Splitter turns a text into chunks.
type Splitter interface {
	Split(text string) ([]models.Chunk, error)
}

var descriptions = map[string]string{
	Character: "Simplest strategy. Splits on a single separator (blank lines).",
	Recursive: "Tries a list of separators recursively to keep related text together. Recommended default.",
	Token:     "Splits by model tokens rather than characters.",
	Markdown:  "Splits on markdown headers (#, ##, ###), keeping the document structure as chunk metadata.",
	Code:      "Splits source code along language-specific syntax boundaries.",
}

// Names returns the registered strategy names in a stable order.
func Names() []string {
	return []string{Character, Recursive, Token, Markdown, Code}
}

// Describe returns the one-line description for a strategy.
func Describe(name string) string {
	return descriptions[name]
}

// New builds the named strategy with the given parameters.
func New(name string, cfg Config) (Splitter, error) {
	switch name {
	case Character:
		s := textsplitter.NewRecursiveCharacter(
			textsplitter.WithSeparators([]string{"\n\n"}),
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		)
		return plainSplitter{s}, nil
	case Recursive:
		s := textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		)
		return plainSplitter{s}, nil
	case Token:
		s := textsplitter.NewTokenSplitter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		)
		return plainSplitter{s}, nil
	case Markdown:
		return markdownSplitter{}, nil
	case Code:
		seps, ok := codeSeparators[cfg.Language]
		if !ok {
			return nil, fmt.Errorf("%w: code splitting needs a supported language, got %q", models.ErrConfiguration, cfg.Language)
		}
		s := textsplitter.NewRecursiveCharacter(
			textsplitter.WithSeparators(seps),
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		)
		return plainSplitter{s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown splitter %q", models.ErrConfiguration, name)
	}
}

// plainSplitter adapts a langchaingo splitter to the chunk model.
type plainSplitter struct {
	inner textsplitter.TextSplitter
}

func (p plainSplitter) Split(text string) ([]models.Chunk, error) {
	parts, err := p.inner.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}
	chunks := make([]models.Chunk, 0, len(parts))
	for _, part := range parts {
		chunks = append(chunks, models.Chunk{Text: part})
	}
	return chunks, nil
}
