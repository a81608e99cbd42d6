package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"embedlab/internal/config"
	"embedlab/internal/models"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "embedlab",
	Short: "embedlab — text-splitter playground and embedding-similarity explorer",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; API keys may come from the environment.
		_ = godotenv.Load()

		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "./configs/config.yaml", "config file path")
}

// errorMessage turns an error into a user-facing message, prefixed with
// its class when it is one of the known sentinel kinds.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrConfiguration):
		return "Configuration error: " + err.Error()
	case errors.Is(err, models.ErrDependency):
		return "Dependency error: " + err.Error()
	case errors.Is(err, models.ErrData):
		return "Data error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
