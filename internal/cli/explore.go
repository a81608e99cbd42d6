package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"embedlab/internal/corpus"
	"embedlab/internal/embedding"
	"embedlab/internal/models"
	"embedlab/internal/search"
	"embedlab/internal/tui"
	"embedlab/internal/vectorstore"
)

var (
	exploreFlags     corpusFlags
	exploreBackend   string
	exploreThreshold float64
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactive similarity explorer",
	Long: `Opens a terminal UI where each entered query is ranked against the
corpus. Indexed backends resolve their persisted index once at startup,
so repeated queries reuse the same embeddings.`,
	RunE: runExplore,
}

func init() {
	exploreFlags.register(exploreCmd)
	exploreCmd.Flags().StringVarP(&exploreBackend, "backend", "b", "", "search backend: direct, chromem or postgres (defaults to config)")
	exploreCmd.Flags().Float64VarP(&exploreThreshold, "threshold", "t", -1, "minimum similarity, direct backend only (defaults to config)")
	rootCmd.AddCommand(exploreCmd)
}

// searchService adapts the router to the TUI's port. The index and corpus
// are resolved once; only the query changes per call.
type searchService struct {
	ctx       context.Context
	router    *search.Router
	backend   string
	threshold float64
	flags     corpusFlags
	index     vectorstore.Index
	rawData   []models.Sentence
}

func (s *searchService) Search(query string, topK int) ([]models.ResultRow, error) {
	return s.router.Route(s.ctx, s.backend, search.Request{
		Query:      query,
		TopK:       topK,
		Threshold:  s.threshold,
		Preprocess: s.flags.preprocess,
	}, s.index, s.rawData)
}

func runExplore(cmd *cobra.Command, args []string) error {
	backend := exploreBackend
	if backend == "" {
		backend = cfg.Search.Backend
	}
	threshold := exploreThreshold
	if threshold < 0 {
		threshold = cfg.Search.Threshold
	}

	if unknown := corpus.ValidateFlags(exploreFlags.preprocess); len(unknown) > 0 {
		return fmt.Errorf("%w: unknown preprocess flags: %s", models.ErrConfiguration, strings.Join(unknown, ", "))
	}

	ctx := cmd.Context()
	svc := &searchService{
		ctx:       ctx,
		backend:   backend,
		threshold: threshold,
		flags:     exploreFlags,
	}

	switch backend {
	case models.BackendDirect:
		rawData, err := corpus.Load(exploreFlags.source, exploreFlags.file, corpus.LoadOptions{
			UseChunking:  exploreFlags.chunk,
			ChunkSize:    exploreFlags.chunkSize,
			ChunkOverlap: exploreFlags.overlap,
		})
		if err != nil {
			return err
		}
		svc.rawData = rawData
	case models.BackendChromem, models.BackendPostgres:
		index, _, _, err := resolveIndex(ctx, backend, exploreFlags)
		if err != nil {
			return err
		}
		svc.index = index
	default:
		return fmt.Errorf("%w: unknown backend %q", models.ErrConfiguration, backend)
	}

	llm := exploreFlags.effectiveLLM()
	embedder, err := embedding.NewEmbedder(llm)
	if err != nil {
		return err
	}
	svc.router = search.NewRouter(embedder, llm)

	model := tui.New(svc, embedding.ModelName(llm), cfg.Search.TopK)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
