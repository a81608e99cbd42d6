package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"embedlab/internal/models"
)

var (
	indexFlags   corpusFlags
	indexBackend string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or load the persisted vector index for an option set",
	Long: `Derives the cache key for the chosen options, then loads the
matching persisted index or builds it by embedding the corpus. A repeat
run with the same options reuses the index without re-embedding.`,
	RunE: runIndex,
}

func init() {
	indexFlags.register(indexCmd)
	indexCmd.Flags().StringVarP(&indexBackend, "backend", "b", "", "index backend: chromem or postgres (defaults to config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	backend := indexBackend
	if backend == "" {
		backend = cfg.Search.Backend
	}
	if backend == models.BackendDirect {
		return fmt.Errorf("%w: the direct backend keeps no index; pick chromem or postgres", models.ErrConfiguration)
	}

	_, key, status, err := resolveIndex(cmd.Context(), backend, indexFlags)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "index %s (%s, backend=%s)\n", key, status, backend)
	return nil
}
