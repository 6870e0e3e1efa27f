package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chogscraper/pkg/config"
	"chogscraper/pkg/metadata"
	"chogscraper/pkg/ui"
)

var topArtists int

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog [file]",
	Short: "Summarize a saved image catalog",
	Long: `Read a JSON catalog written by 'chogscraper fetch' and print how many
images it holds, how they are tagged, and who posted them. Without an
argument the configured output file is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().IntVar(&topArtists, "top", 10, "number of artists to list")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load(configFile, nil)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		path = cfg.Output.File
	}

	records, err := metadata.LoadCatalog(path)
	if err != nil {
		return err
	}

	stats := metadata.Summarize(records)

	ui.PrintHighlight("Catalog " + path)
	ui.PrintInfo("Images", fmt.Sprintf("%d", stats.Total))
	ui.PrintInfo("Tagged #chog", fmt.Sprintf("%d", stats.ChogTagged))
	ui.PrintInfo("Tagged #monad", fmt.Sprintf("%d", stats.MonadTagged))
	ui.PrintInfo("Tagged both", fmt.Sprintf("%d", stats.BothTagged))
	if stats.MissingFiles > 0 {
		ui.PrintWarning(fmt.Sprintf("%d images are missing on disk", stats.MissingFiles))
	}

	if len(stats.Artists) > 0 {
		ui.PrintHighlight("\nTop artists")
		for i, a := range stats.Artists {
			if i >= topArtists {
				break
			}
			ui.PrintInfo(a.Artist, fmt.Sprintf("%d", a.Count))
		}
	}
	return nil
}
