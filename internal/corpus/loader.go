package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"embedlab/internal/models"
	"embedlab/internal/splitter"
)

// LoadOptions controls how an uploaded document becomes sentences.
type LoadOptions struct {
	UseChunking  bool
	ChunkSize    int
	ChunkOverlap int
}

// Load returns the corpus for the given source. Source "sample" ignores
// the path; source "file" reads and parses the file at path.
func Load(source, path string, opts LoadOptions) ([]models.Sentence, error) {
	switch source {
	case models.SourceSample:
		return SampleSentences(), nil
	case models.SourceFile:
		if path == "" {
			return nil, fmt.Errorf("%w: source %q needs a file", models.ErrConfiguration, source)
		}
		return LoadFile(path, opts)
	default:
		return nil, fmt.Errorf("%w: unknown data source %q", models.ErrConfiguration, source)
	}
}

// LoadFile parses a document into sentences. Text-bearing formats are
// either chunked or split by line; tabular formats become one sentence
// per row.
func LoadFile(path string, opts LoadOptions) ([]models.Sentence, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		text, err := parsePDF(path)
		if err != nil {
			return nil, err
		}
		return textToSentences(text, "pdf", opts)
	case ".csv":
		return parseCSV(path)
	case ".docx":
		text, err := parseDOCX(path)
		if err != nil {
			return nil, err
		}
		return textToSentences(text, "docx", opts)
	case ".xlsx":
		return parseXLSX(path)
	case ".ods":
		return parseODS(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return textToSentences(string(data), "text", opts)
	default:
		return nil, fmt.Errorf("%w: unsupported file format %q", models.ErrData, ext)
	}
}

// textToSentences turns raw document text into corpus sentences, chunked
// when requested or line-split otherwise.
func textToSentences(text, category string, opts LoadOptions) ([]models.Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document contains no text", models.ErrData)
	}

	if opts.UseChunking {
		s, err := splitter.New(splitter.Recursive, splitter.Config{
			ChunkSize:    opts.ChunkSize,
			ChunkOverlap: opts.ChunkOverlap,
		})
		if err != nil {
			return nil, err
		}
		chunks, err := s.Split(text)
		if err != nil {
			return nil, err
		}
		var sentences []models.Sentence
		for _, c := range chunks {
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			sentences = append(sentences, models.Sentence{Category: category + "-chunked", Text: c.Text})
		}
		return sentences, nil
	}

	var sentences []models.Sentence
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sentences = append(sentences, models.Sentence{Category: category, Text: line})
	}
	return sentences, nil
}

func parsePDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", models.ErrData, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Err(err).Int("page", i).Msg("Skipping unreadable page")
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// parseCSV expects a header row; rows become sentences from the "text"
// column (or text_en/text_kr columns) with an optional "category" column.
func parseCSV(path string) ([]models.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv header: %v", models.ErrData, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var sentences []models.Sentence
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv row: %v", models.ErrData, err)
		}
		category := "csv"
		if i, ok := col["category"]; ok && i < len(record) && record[i] != "" {
			category = record[i]
		}
		for _, name := range []string{"text", "text_kr", "text_en"} {
			i, ok := col[name]
			if !ok || i >= len(record) {
				continue
			}
			text := strings.TrimSpace(record[i])
			if text != "" {
				sentences = append(sentences, models.Sentence{Category: category, Text: text})
			}
		}
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: csv contains no text rows", models.ErrData)
	}
	return sentences, nil
}

func parseDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read docx: %v", models.ErrData, err)
	}
	defer r.Close()

	return r.Editable().GetContent(), nil
}

func parseXLSX(path string) ([]models.Sentence, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read xlsx: %v", models.ErrData, err)
	}

	var sentences []models.Sentence
	for _, sheet := range f.Sheets {
		for _, row := range sheet.Rows {
			var cells []string
			for _, cell := range row.Cells {
				if s := strings.TrimSpace(cell.String()); s != "" {
					cells = append(cells, s)
				}
			}
			if len(cells) > 0 {
				sentences = append(sentences, models.Sentence{Category: sheet.Name, Text: strings.Join(cells, " ")})
			}
		}
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: workbook contains no text rows", models.ErrData)
	}
	return sentences, nil
}

func parseODS(path string) ([]models.Sentence, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read ods: %v", models.ErrData, err)
	}
	defer f.Close()

	var sentences []models.Sentence
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				if s := strings.TrimSpace(cell); s != "" {
					cells = append(cells, s)
				}
			}
			if len(cells) > 0 {
				sentences = append(sentences, models.Sentence{Category: sheetName, Text: strings.Join(cells, " ")})
			}
		}
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet contains no text rows", models.ErrData)
	}
	return sentences, nil
}
