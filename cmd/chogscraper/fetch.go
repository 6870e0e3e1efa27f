package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chogscraper/pkg/config"
	"chogscraper/pkg/logger"
	"chogscraper/pkg/scraper"
	"chogscraper/pkg/ui"
)

var (
	// Fetch command flags
	query      string
	limit      int
	outputDir  string
	outputFile string
	delay      time.Duration
	endpoint   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search, download images, and write the catalog",
	Long: `Run the full pipeline once:

  1. Query the search service and collect one record per photo
  2. Download each photo into the output directory (existing files are kept)
  3. Write the records of saved images to the output JSON file

A search failure aborts the run without writing the catalog. Individual
download failures are reported and left out of the catalog.`,
	Example: `  # Run with defaults (300 results, ./assets, ./chog_dynamic.json)
  chogscraper fetch

  # Smaller run against a custom search endpoint
  chogscraper fetch --endpoint http://localhost:9000 --limit 20

  # Custom query and output locations
  chogscraper fetch --query "#chog" --output-dir ./images --output-file ./chog.json`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	for _, cmd := range []*cobra.Command{rootCmd, fetchCmd} {
		cmd.Flags().StringVar(&query, "query", "", "search expression (default from config)")
		cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of search results to examine")
		cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory to save images in")
		cmd.Flags().StringVar(&outputFile, "output-file", "", "path of the JSON catalog")
		cmd.Flags().DurationVar(&delay, "delay", 0, "fixed pause after each result and each download")
		cmd.Flags().StringVar(&endpoint, "endpoint", "", "base URL of the search service")
	}
}

func fetchFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	if cmd.Flags().Changed("query") {
		flags["query"] = query
	}
	if cmd.Flags().Changed("limit") {
		flags["limit"] = limit
	}
	if cmd.Flags().Changed("output-dir") {
		flags["output-dir"] = outputDir
	}
	if cmd.Flags().Changed("output-file") {
		flags["output-file"] = outputFile
	}
	if cmd.Flags().Changed("delay") {
		flags["delay"] = delay
	}
	if cmd.Flags().Changed("endpoint") {
		flags["endpoint"] = endpoint
	}
	// --verbose only raises the level when nothing more specific was given
	if cmd.Flags().Changed("log-level") {
		flags["log-level"] = logLevel
	} else if verbose {
		flags["log-level"] = "info"
	}
	return flags
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, fetchFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("chogscraper starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintHighlight("[SEARCHING]")

	s := scraper.New(cfg, log)
	summary, err := s.Run(ctx)
	if err != nil {
		log.WithError(err).Error("Run failed")
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("\nDone! Downloaded %d / %d images.", summary.Saved, summary.Found))
	ui.PrintInfo("Run", summary.RunID)
	ui.PrintInfo("Catalog", summary.OutputFile)
	if summary.Failed > 0 {
		ui.PrintWarning(fmt.Sprintf("%d downloads failed", summary.Failed))
	}

	log.WithFields(map[string]interface{}{
		"run_id":     summary.RunID,
		"saved":      summary.Saved,
		"found":      summary.Found,
		"duration":   summary.Duration,
		"output":     summary.OutputFile,
		"failed":     summary.Failed,
		"downloaded": summary.Downloaded,
	}).Info("chogscraper finished")

	return nil
}
