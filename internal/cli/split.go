package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"embedlab/internal/models"
	"embedlab/internal/session"
	"embedlab/internal/splitter"
)

var (
	splitStrategy   string
	splitChunkSize  int
	splitOverlap    int
	splitLanguage   string
	splitInputFile  string
	splitSessionIn  string
	splitSessionOut string
	splitReportOut  string
	splitHTMLOut    string
	splitJSON       bool
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split text into chunks with a chosen strategy",
	Long: `Splits input text (from --file, --load-session or stdin) into chunks
using one of the registered strategies and prints each chunk with its
metadata. The run can be saved as a JSON session or a Markdown report.`,
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitStrategy, "splitter", "s", splitter.Recursive, "splitting strategy (see 'embedlab splitters')")
	splitCmd.Flags().IntVar(&splitChunkSize, "chunk-size", 0, "chunk size in characters (0 uses config)")
	splitCmd.Flags().IntVar(&splitOverlap, "chunk-overlap", -1, "chunk overlap in characters (-1 uses config)")
	splitCmd.Flags().StringVarP(&splitLanguage, "language", "l", "", "source language for the code strategy")
	splitCmd.Flags().StringVarP(&splitInputFile, "file", "f", "", "input text file (stdin when omitted)")
	splitCmd.Flags().StringVar(&splitSessionIn, "load-session", "", "load input and settings from a saved session")
	splitCmd.Flags().StringVar(&splitSessionOut, "session-out", "", "save the run as a JSON session file")
	splitCmd.Flags().StringVar(&splitReportOut, "report-out", "", "save the run as a Markdown report")
	splitCmd.Flags().StringVar(&splitHTMLOut, "report-html", "", "save the run as an HTML report")
	splitCmd.Flags().BoolVar(&splitJSON, "json", false, "print chunks as JSON instead of plain text")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	size := splitChunkSize
	if size == 0 {
		size = cfg.Chunking.Size
	}
	overlap := splitOverlap
	if overlap < 0 {
		overlap = cfg.Chunking.Overlap
	}

	var input string
	switch {
	case splitSessionIn != "":
		sess, err := session.LoadJSON(splitSessionIn)
		if err != nil {
			return err
		}
		input = sess.Input
		splitStrategy = sess.Splitter
		size = sess.ChunkSize
		overlap = sess.ChunkOverlap
	case splitInputFile != "":
		data, err := os.ReadFile(splitInputFile)
		if err != nil {
			return fmt.Errorf("%w: read input: %v", models.ErrData, err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("%w: read stdin: %v", models.ErrData, err)
		}
		input = string(data)
	}

	sp, err := splitter.New(splitStrategy, splitter.Config{
		ChunkSize:    size,
		ChunkOverlap: overlap,
		Language:     splitLanguage,
	})
	if err != nil {
		return err
	}

	chunks, err := sp.Split(input)
	if err != nil {
		return err
	}
	log.Debug().Str("splitter", splitStrategy).Int("chunks", len(chunks)).Msg("split complete")

	out := cmd.OutOrStdout()
	if splitJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(chunks); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%d chunks (%s, size=%d overlap=%d)\n", len(chunks), splitStrategy, size, overlap)
		for i, ch := range chunks {
			fmt.Fprintf(out, "\n--- chunk %d (%d chars) ---\n", i+1, len(ch.Text))
			for k, v := range ch.Metadata {
				fmt.Fprintf(out, "[%s: %s]\n", k, v)
			}
			fmt.Fprintln(out, ch.Text)
		}
	}

	sess := session.Session{
		Splitter:     splitStrategy,
		ChunkSize:    size,
		ChunkOverlap: overlap,
		Input:        input,
		Output:       chunks,
	}
	if splitSessionOut != "" {
		if err := session.SaveJSON(splitSessionOut, sess); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nsession saved to %s\n", splitSessionOut)
	}
	if splitReportOut != "" {
		if err := session.WriteMarkdown(splitReportOut, sess); err != nil {
			return err
		}
		fmt.Fprintf(out, "report saved to %s\n", splitReportOut)
	}
	if splitHTMLOut != "" {
		if err := session.WriteHTML(splitHTMLOut, sess); err != nil {
			return err
		}
		fmt.Fprintf(out, "report saved to %s\n", splitHTMLOut)
	}
	return nil
}
