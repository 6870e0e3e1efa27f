package scraper

import (
	"context"

	"chogscraper/internal/downloader"
)

// Fetcher downloads a single image and reports how the attempt ended
type Fetcher interface {
	Fetch(ctx context.Context, job downloader.Job) downloader.Result
}

// Pauser blocks between pipeline steps
type Pauser interface {
	Wait(ctx context.Context) error
}
