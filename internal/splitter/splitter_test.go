package splitter

import (
	"errors"
	"strings"
	"testing"

	"embedlab/internal/models"
)

func TestNamesHaveDescriptions(t *testing.T) {
	for _, name := range Names() {
		if Describe(name) == "" {
			t.Errorf("strategy %s has no description", name)
		}
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New("telepathy", Config{ChunkSize: 100})
	if !errors.Is(err, models.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRecursiveSplitRespectsChunkSize(t *testing.T) {
	s, err := New(Recursive, Config{ChunkSize: 50, ChunkOverlap: 0})
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("one two three four five. ", 20)
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Text) > 60 {
			t.Errorf("chunk %d longer than expected: %d chars", i, len(c.Text))
		}
	}
}

func TestCharacterSplitOnBlankLines(t *testing.T) {
	s, err := New(Character, Config{ChunkSize: 20, ChunkOverlap: 0})
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := s.Split("first paragraph\n\nsecond paragraph")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "first") || !strings.Contains(chunks[1].Text, "second") {
		t.Errorf("unexpected chunk contents: %q, %q", chunks[0].Text, chunks[1].Text)
	}
}

func TestCodeSplitNeedsLanguage(t *testing.T) {
	_, err := New(Code, Config{ChunkSize: 100})
	if !errors.Is(err, models.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := New(Code, Config{ChunkSize: 100, Language: "go"}); err != nil {
		t.Fatalf("go should be a supported language: %v", err)
	}
}

func TestMarkdownSplitKeepsHeaderMetadata(t *testing.T) {
	s, err := New(Markdown, Config{})
	if err != nil {
		t.Fatal(err)
	}
	text := "intro text\n\n# Title\n\nbody one\n\n## Section\n\nbody two\n"
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Metadata != nil {
		t.Errorf("preamble chunk should have no metadata, got %v", chunks[0].Metadata)
	}
	if chunks[1].Metadata["Header 1"] != "Title" {
		t.Errorf("expected Header 1 = Title, got %v", chunks[1].Metadata)
	}
	if chunks[2].Metadata["Header 1"] != "Title" || chunks[2].Metadata["Header 2"] != "Section" {
		t.Errorf("expected nested header metadata, got %v", chunks[2].Metadata)
	}
	if !strings.Contains(chunks[2].Text, "body two") {
		t.Errorf("unexpected section body: %q", chunks[2].Text)
	}
}

func TestMarkdownSplitNoHeaders(t *testing.T) {
	s, _ := New(Markdown, Config{})
	chunks, err := s.Split("just plain text with no headings")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata != nil {
		t.Errorf("expected no metadata, got %v", chunks[0].Metadata)
	}
}

func TestMarkdownSiblingHeadersReplaceEachOther(t *testing.T) {
	s, _ := New(Markdown, Config{})
	text := "## A\n\nalpha\n\n## B\n\nbeta\n"
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[1].Metadata["Header 2"] != "B" {
		t.Errorf("sibling header should replace previous one, got %v", chunks[1].Metadata)
	}
	if _, ok := chunks[1].Metadata["Header 1"]; ok {
		t.Errorf("unexpected Header 1 in %v", chunks[1].Metadata)
	}
}
