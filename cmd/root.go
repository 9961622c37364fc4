package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "imagediffer INPUT OUTPUT",
	Short: "Score how different the image pairs listed in a TSV file are",
	Long: `ImageDiffer reads a tab-separated file with the columns Image_1 and Image_2,
compares each pair of images with ORB features and writes a tab-separated
report with the columns IMAGE1, IMAGE2, SIMILAR and ELAPSE.

SIMILAR is 0.0 for a full match, 1.0 for a full non-match and the share of
similar feature matches otherwise. ELAPSE is the comparison time in seconds.
Rows that cannot be compared are left out and logged with their line number.`,
	Example: `  imagediffer pairs.tsv scores.tsv
  imagediffer pairs.tsv scores.tsv --workers 4 --progress
  imagediffer pairs.tsv scores.tsv --db history.db --log-file run.log`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompare,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().String("log-file", "", "Log file, overwritten on every run (default app.log)")
	rootCmd.Flags().Int("workers", 1, "Number of rows compared concurrently")
	rootCmd.Flags().Int("cache-size", 0, "Maximum number of images kept in the descriptor cache (0 = unbounded)")
	rootCmd.Flags().String("db", "", "SQLite database to record the run history in")
	rootCmd.Flags().Bool("progress", false, "Show a progress bar on stderr")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
