package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"imagediffer/batch"
	"imagediffer/config"
	"imagediffer/database"
	"imagediffer/imageprocessor"
	"imagediffer/logging"
	"imagediffer/signalhandler"
	"imagediffer/tsvio"
	"imagediffer/types"

	"github.com/spf13/cobra"
)

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) != 2 {
		fmt.Fprintln(out, "missing arguments")
		fmt.Fprintln(out, "valid arguments: [input].tsv, [output].tsv")
		fmt.Fprintln(out)
		return cmd.Usage()
	}
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	applyFlags(cmd, cfg)

	if err := logging.SetupLogger(cfg.LogFile); err != nil {
		fmt.Printf("Warning: Failed to setup logging: %v\n", err)
	}
	defer logging.CloseLogger()
	signalhandler.SetupHandler(logging.CloseLogger)

	startTime := time.Now()

	pairs, err := tsvio.ReadPairs(inputPath)
	if err != nil {
		if errors.Is(err, tsvio.ErrInvalidHeader) {
			fmt.Println("Input file has invalid header")
			fmt.Println("Correct headers for a file are Image_1 and Image_2")
		}
		logging.LogError("Failed to process input file %s: %v", inputPath, err)
		return fmt.Errorf("failed to process input file %s: %w", inputPath, err)
	}

	engine, err := imageprocessor.NewSimilarityEngine(cfg.CacheSize)
	if err != nil {
		return err
	}
	defer engine.Close()

	workers := signalhandler.ClampWorkers(cfg.Workers)
	logging.LogInfo("Comparing %d image pairs from %s with %d worker(s), cache size %d",
		len(pairs), inputPath, workers, cfg.CacheSize)

	runner := batch.NewRunner(engine, batch.RunOptions{
		Workers:      workers,
		ShowProgress: cfg.Progress,
	})
	records, stats := runner.Run(pairs)

	if err := tsvio.WriteResults(outputPath, records); err != nil {
		logging.LogError("Failed to store results in output file %s: %v", outputPath, err)
		return fmt.Errorf("failed to store results in output file %s: %w", outputPath, err)
	}

	if cfg.Database != "" {
		recordHistory(out, cfg.Database, database.RunInfo{
			InputPath:  inputPath,
			OutputPath: outputPath,
			StartedAt:  startTime,
			FinishedAt: time.Now(),
			Total:      stats.Total,
			Failed:     stats.Failed,
		}, records)
	}

	fmt.Fprintf(out, "Compared %d of %d image pairs in %v.\n",
		stats.Processed, stats.Total, time.Since(startTime).Round(time.Millisecond))
	fmt.Fprintf(out, "Distinct images described: %d\n", engine.CachedImages())
	if stats.Failed > 0 {
		fmt.Fprintf(out, "Skipped %d rows with errors. Check %s for details.\n", stats.Failed, cfg.LogFile)
	}
	fmt.Fprintf(out, "Results: %s\n", outputPath)

	return nil
}

// recordHistory stores the run in the history database and prints the
// stored totals. The report is already written at this point, so
// failures are only warnings.
func recordHistory(out io.Writer, dbPath string, run database.RunInfo, records []types.ResultRecord) {
	db, err := database.InitDatabase(dbPath)
	if err != nil {
		fmt.Fprintf(out, "Warning: cannot open history database %s: %v\n", dbPath, err)
		logging.LogWarning("Cannot open history database %s: %v", dbPath, err)
		return
	}
	defer db.Close()

	runID, err := database.StoreRun(db, run, records)
	if err != nil {
		fmt.Fprintf(out, "Warning: cannot record run history: %v\n", err)
		logging.LogWarning("Cannot record run history: %v", err)
		return
	}
	logging.LogInfo("Recorded run %d in %s", runID, dbPath)

	stats, err := database.GetRunStats(db, runID)
	if err != nil {
		fmt.Fprintf(out, "Warning: cannot read back run %d: %v\n", runID, err)
		logging.LogWarning("Cannot read back run %d: %v", runID, err)
		return
	}
	fmt.Fprintf(out, "History run %d: %d results, %d full matches, %d no matches, %d failed, mean %.3fs per pair\n",
		stats.RunID, stats.Results, stats.FullMatches, stats.NoMatches, stats.Failed, stats.MeanElapsed)
}
