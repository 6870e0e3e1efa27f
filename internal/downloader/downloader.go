package downloader

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chogscraper/pkg/config"
	"chogscraper/pkg/errors"
	"chogscraper/pkg/logger"
	"chogscraper/pkg/storage"
)

// Outcome describes how a single download attempt ended
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
)

// Job is a single image to fetch
type Job struct {
	URL  string
	Path string
}

// Result represents the result of a download job
type Result struct {
	Job      Job
	Outcome  Outcome
	Error    error
	Duration time.Duration
	Size     int64
}

// Success reports whether the target file is in place after the attempt
func (r Result) Success() bool {
	return r.Outcome == OutcomeDownloaded || r.Outcome == OutcomeSkipped
}

// Downloader fetches images one at a time and writes them atomically
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	chunkSize  int
	logger     logger.Logger
}

// New creates a downloader from the download section of the configuration
func New(cfg *config.DownloadConfig, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = storage.DefaultChunkSize
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	return &Downloader{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  userAgent,
		chunkSize:  chunkSize,
		logger:     log,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (d *Downloader) SetHTTPClient(httpClient *http.Client) {
	d.httpClient = httpClient
}

// Download fetches url into path and reports whether path now holds the image.
// An existing path counts as success and no request is made.
func (d *Downloader) Download(ctx context.Context, url, path string) bool {
	return d.Fetch(ctx, Job{URL: url, Path: path}).Success()
}

// Fetch performs a download job and describes how it ended
func (d *Downloader) Fetch(ctx context.Context, job Job) Result {
	start := time.Now()
	result := Result{Job: job}

	if storage.Exists(job.Path) {
		result.Outcome = OutcomeSkipped
		result.Duration = time.Since(start)
		logger.LogDownload(d.logger, job.URL, job.Path, string(result.Outcome), nil)
		return result
	}

	size, err := d.fetch(ctx, job)
	result.Size = size
	result.Duration = time.Since(start)

	if err != nil {
		result.Outcome = OutcomeFailed
		result.Error = err
		logger.LogDownload(d.logger, job.URL, job.Path, string(result.Outcome), err)
		return result
	}

	result.Outcome = OutcomeDownloaded
	d.logger.DebugWithFields("download finished", map[string]interface{}{
		"url":      job.URL,
		"size":     size,
		"duration": result.Duration,
	})
	logger.LogDownload(d.logger, job.URL, job.Path, string(result.Outcome), nil)
	return result
}

func (d *Downloader) fetch(ctx context.Context, job Job) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if !errors.IsSuccessStatus(resp.StatusCode) {
		return 0, errors.NewStatusError(resp.StatusCode, job.URL)
	}

	size, err := storage.WriteFileAtomic(job.Path, resp.Body, make([]byte, d.chunkSize))
	if err != nil {
		return size, errors.NewFilesystemError(job.Path, err)
	}
	return size, nil
}
