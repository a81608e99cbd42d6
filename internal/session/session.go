// Package session captures a splitter-playground run (the input text and
// the resulting chunks) so it can be exported and reloaded later.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"embedlab/internal/models"
)

// Session is the exported state of one splitting run.
type Session struct {
	Splitter     string         `json:"splitter,omitempty"`
	ChunkSize    int            `json:"chunk_size,omitempty"`
	ChunkOverlap int            `json:"chunk_overlap,omitempty"`
	Input        string         `json:"input"`
	Output       []models.Chunk `json:"output"`
}

// SaveJSON writes the session to path as indented JSON.
func SaveJSON(path string, s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadJSON reads a previously saved session from path.
func LoadJSON(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("%w: parse session: %v", models.ErrData, err)
	}
	return s, nil
}

// WriteMarkdown exports the session as a human-readable markdown report
// with the settings, the input text and every chunk.
func WriteMarkdown(path string, s Session) error {
	if err := os.WriteFile(path, []byte(renderMarkdown(s)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteHTML exports the markdown report rendered to HTML.
func WriteHTML(path string, s Session) error {
	var out bytes.Buffer
	if err := goldmark.Convert([]byte(renderMarkdown(s)), &out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func renderMarkdown(s Session) string {
	var b strings.Builder

	b.WriteString("# Settings\n\n")
	if s.Splitter != "" {
		fmt.Fprintf(&b, "- **Splitter:** `%s`\n", s.Splitter)
	}
	fmt.Fprintf(&b, "- **Chunk Size:** `%d`\n", s.ChunkSize)
	fmt.Fprintf(&b, "- **Chunk Overlap:** `%d`\n\n", s.ChunkOverlap)
	b.WriteString("---\n\n")

	b.WriteString("## Input\n\n")
	b.WriteString("```\n")
	b.WriteString(s.Input)
	b.WriteString("\n```\n\n")
	b.WriteString("---\n\n")

	b.WriteString("## Chunks\n\n")
	for i, chunk := range s.Output {
		fmt.Fprintf(&b, "### Chunk %d\n\n", i+1)
		if len(chunk.Metadata) > 0 {
			fmt.Fprintf(&b, "**Metadata:** `%v`\n\n", chunk.Metadata)
		}
		b.WriteString("```\n")
		b.WriteString(chunk.Text)
		b.WriteString("\n```\n\n")
		b.WriteString("---\n")
	}

	return b.String()
}
