package splitter

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"embedlab/internal/models"
)

// Headers deeper than this do not start a new chunk.
const maxHeaderLevel = 3

// markdownSplitter splits on markdown headers, carrying the header path of
// each section as chunk metadata.
type markdownSplitter struct{}

type headerBound struct {
	level int
	title string
	start int // byte offset of the heading line
	end   int // byte offset just past the heading line
}

func (markdownSplitter) Split(text string) ([]models.Chunk, error) {
	src := []byte(text)
	root := goldmark.New().Parser().Parse(gtext.NewReader(src))

	var bounds []headerBound
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		h, ok := node.(*ast.Heading)
		if !ok || h.Level > maxHeaderLevel || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := seg.Start
		for start > 0 && src[start-1] != '\n' {
			start--
		}
		end := seg.Stop
		for end < len(src) && src[end] != '\n' {
			end++
		}
		if end < len(src) {
			end++
		}
		title := strings.TrimSpace(strings.TrimLeft(string(src[seg.Start:seg.Stop]), "# "))
		bounds = append(bounds, headerBound{level: h.Level, title: title, start: start, end: end})
	}

	var chunks []models.Chunk
	addChunk := func(body string, headers map[string]string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		chunks = append(chunks, models.Chunk{Text: body, Metadata: headers})
	}

	if len(bounds) == 0 {
		addChunk(text, nil)
		return chunks, nil
	}

	// Text before the first header has no header metadata.
	addChunk(string(src[:bounds[0].start]), nil)

	stack := make([]headerBound, 0, maxHeaderLevel)
	for i, b := range bounds {
		for len(stack) > 0 && stack[len(stack)-1].level >= b.level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, b)

		headers := make(map[string]string, len(stack))
		for _, s := range stack {
			headers[fmt.Sprintf("Header %d", s.level)] = s.title
		}

		bodyEnd := len(src)
		if i+1 < len(bounds) {
			bodyEnd = bounds[i+1].start
		}
		addChunk(string(src[b.end:bodyEnd]), headers)
	}

	return chunks, nil
}
