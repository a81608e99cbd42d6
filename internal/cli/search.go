package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"embedlab/internal/corpus"
	"embedlab/internal/embedding"
	"embedlab/internal/models"
	"embedlab/internal/report"
	"embedlab/internal/search"
	"embedlab/internal/vectorstore"
)

var (
	searchFlags     corpusFlags
	searchBackend   string
	searchQuery     string
	searchTopK      int
	searchThreshold float64
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank the corpus by similarity to a query",
	Long: `Embeds the query and ranks the corpus by cosine similarity. The
direct backend embeds every sentence fresh on each run; chromem and
postgres resolve a persisted index first and search inside it.`,
	RunE: runSearch,
}

func init() {
	searchFlags.register(searchCmd)
	searchCmd.Flags().StringVarP(&searchBackend, "backend", "b", "", "search backend: direct, chromem or postgres (defaults to config)")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "query text")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (defaults to config)")
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", -1, "minimum similarity, direct backend only (defaults to config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	backend := searchBackend
	if backend == "" {
		backend = cfg.Search.Backend
	}
	topK := searchTopK
	if topK == 0 {
		topK = cfg.Search.TopK
	}
	threshold := searchThreshold
	if threshold < 0 {
		threshold = cfg.Search.Threshold
	}

	if unknown := corpus.ValidateFlags(searchFlags.preprocess); len(unknown) > 0 {
		return fmt.Errorf("%w: unknown preprocess flags: %s", models.ErrConfiguration, strings.Join(unknown, ", "))
	}

	ctx := cmd.Context()
	req := search.Request{
		Query:      searchQuery,
		TopK:       topK,
		Threshold:  threshold,
		Preprocess: searchFlags.preprocess,
	}

	var (
		index   vectorstore.Index
		rawData []models.Sentence
	)
	switch backend {
	case models.BackendDirect:
		var err error
		rawData, err = corpus.Load(searchFlags.source, searchFlags.file, corpus.LoadOptions{
			UseChunking:  searchFlags.chunk,
			ChunkSize:    searchFlags.chunkSize,
			ChunkOverlap: searchFlags.overlap,
		})
		if err != nil {
			return err
		}
	case models.BackendChromem, models.BackendPostgres:
		var err error
		index, _, _, err = resolveIndex(ctx, backend, searchFlags)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", models.ErrConfiguration, backend)
	}

	llm := searchFlags.effectiveLLM()
	embedder, err := embedding.NewEmbedder(llm)
	if err != nil {
		return err
	}
	router := search.NewRouter(embedder, llm)

	rows, err := router.Route(ctx, backend, req, index, rawData)
	if err != nil {
		// Known failure classes end the run with a message and an empty
		// result set rather than a stack trace.
		if errors.Is(err, models.ErrConfiguration) ||
			errors.Is(err, models.ErrDependency) ||
			errors.Is(err, models.ErrData) {
			fmt.Fprintln(cmd.ErrOrStderr(), errorMessage(err))
			fmt.Fprintln(cmd.OutOrStdout(), "no results")
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "no results")
		return nil
	}
	fmt.Fprintln(out, report.Table(rows))
	fmt.Fprintln(out, report.Bars(rows))
	fmt.Fprintln(out, report.Summary(rows, embedding.ModelName(llm)))
	return nil
}
