package scraper

import (
	"context"
	"fmt"
	"time"

	"chogscraper/internal/downloader"
	"chogscraper/pkg/config"
	"chogscraper/pkg/logger"
	"chogscraper/pkg/metadata"
	"chogscraper/pkg/models"
	"chogscraper/pkg/ratelimit"
	"chogscraper/pkg/search"
	"chogscraper/pkg/storage"
	"chogscraper/pkg/ui"

	"github.com/google/uuid"
)

// Summary describes a finished run
type Summary struct {
	RunID      string
	Query      string
	Found      int
	Attempted  int
	Downloaded int
	Skipped    int
	Failed     int
	Saved      int
	OutputFile string
	Duration   time.Duration
}

// Scraper runs search, download, and catalog persistence in sequence
type Scraper struct {
	config       *config.Config
	service      search.Service
	fetcher      Fetcher
	resultPause  Pauser
	requestPause Pauser
	logger       logger.Logger
}

// New creates a Scraper backed by the HTTP search client and downloader
func New(cfg *config.Config, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Scraper{
		config:       cfg,
		service:      search.NewClient(&cfg.Search, cfg.Download.UserAgent, log),
		fetcher:      downloader.New(&cfg.Download, log),
		resultPause:  ratelimit.NewFixedDelay(cfg.Search.ResultDelay),
		requestPause: ratelimit.NewFixedDelay(cfg.Download.Delay),
		logger:       log,
	}
}

// SetSearchService replaces the search backend
func (s *Scraper) SetSearchService(service search.Service) {
	s.service = service
}

// SetFetcher replaces the image downloader
func (s *Scraper) SetFetcher(fetcher Fetcher) {
	s.fetcher = fetcher
}

// Query builds the search query from configuration
func (s *Scraper) Query() models.SearchQuery {
	return models.SearchQuery{
		Expression: s.config.Search.Query,
		ImagesOnly: s.config.Search.ImagesOnly,
		MinFaves:   s.config.Search.MinFaves,
	}
}

// Run collects every record, downloads each one, and writes the catalog of
// successful downloads. A search fault or cancellation aborts the run before
// anything is persisted.
func (s *Scraper) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	query := s.Query()
	summary := &Summary{
		RunID:      uuid.NewString(),
		Query:      query.String(),
		OutputFile: s.config.Output.File,
	}
	log := s.logger.WithField("run_id", summary.RunID)

	storageManager, err := storage.NewManager(s.config.Download.Directory)
	if err != nil {
		log.WithError(err).Error("Failed to create storage manager")
		return nil, fmt.Errorf("failed to create storage manager: %w", err)
	}

	ui.PrintInfo("Query", summary.Query)
	ui.PrintInfo("Output", storageManager.GetOutputDir())

	logger.LogComponentStart(log, "collector", map[string]interface{}{
		"query": summary.Query,
		"limit": s.config.Search.Limit,
	})

	collector := NewCollector(s.service, s.resultPause, s.config.Record, log)
	var records []models.MediaRecord
	for record, err := range collector.Collect(ctx, query, s.config.Search.Limit) {
		if err != nil {
			log.WithError(err).Error("Search failed")
			return nil, fmt.Errorf("failed to collect media: %w", err)
		}
		records = append(records, record)
	}
	summary.Found = len(records)
	logger.LogComponentStop(log, "collector", fmt.Sprintf("found %d images", summary.Found))

	progress := ui.NewProgress(len(records))
	progress.Found(summary.Found)

	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record := &records[i]
		path := storageManager.Path(record.FileName())
		progress.Next()

		result := s.fetcher.Fetch(ctx, downloader.Job{URL: record.URL, Path: path})
		summary.Attempted++

		switch result.Outcome {
		case downloader.OutcomeDownloaded:
			summary.Downloaded++
			record.LocalPath = path
			progress.Downloaded(path, result.Size)
		case downloader.OutcomeSkipped:
			summary.Skipped++
			record.LocalPath = path
			progress.Skipped(path)
		default:
			summary.Failed++
			progress.Failed(record.URL, result.Error)
		}

		if err := s.requestPause.Wait(ctx); err != nil {
			return nil, err
		}
	}

	saved, err := metadata.WriteCatalog(s.config.Output.File, records)
	if err != nil {
		log.WithError(err).Error("Failed to write catalog")
		return nil, fmt.Errorf("failed to write catalog: %w", err)
	}
	summary.Saved = saved
	summary.Duration = time.Since(start)
	progress.Saved(saved, s.config.Output.File)

	logger.LogMetrics(log, "run", map[string]interface{}{
		"found":      summary.Found,
		"attempted":  summary.Attempted,
		"downloaded": summary.Downloaded,
		"skipped":    summary.Skipped,
		"failed":     summary.Failed,
		"saved":      summary.Saved,
		"duration":   summary.Duration,
	})

	return summary, nil
}
