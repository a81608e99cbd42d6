package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"embedlab/internal/splitter"
)

var splittersCmd = &cobra.Command{
	Use:   "splitters",
	Short: "List the available splitting strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range splitter.Names() {
			fmt.Fprintf(out, "%-10s %s\n", name, splitter.Describe(name))
		}
		fmt.Fprintf(out, "\ncode languages: %s\n", strings.Join(splitter.CodeLanguages(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splittersCmd)
}
