package scraper

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"chogscraper/pkg/config"
	"chogscraper/pkg/logger"
	"chogscraper/pkg/models"
	"chogscraper/pkg/search"
)

// ErrInvalidLimit is returned when a collection is requested with limit <= 0
var ErrInvalidLimit = errors.New("limit must be positive")

// Collector turns search results into media records
type Collector struct {
	service search.Service
	pause   Pauser
	record  config.RecordConfig
	logger  logger.Logger
}

// NewCollector creates a collector over service. pause runs after every
// result that produced at least one record.
func NewCollector(service search.Service, pause Pauser, record config.RecordConfig, log logger.Logger) *Collector {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Collector{
		service: service,
		pause:   pause,
		record:  record,
		logger:  log,
	}
}

// Collect examines at most limit search results and yields one record per
// photo, in result order then media order. Results without photos are
// skipped. A search fault is yielded once and ends the sequence.
func (c *Collector) Collect(ctx context.Context, query models.SearchQuery, limit int) iter.Seq2[models.MediaRecord, error] {
	return func(yield func(models.MediaRecord, error) bool) {
		if limit <= 0 {
			yield(models.MediaRecord{}, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit))
			return
		}

		examined := 0
		for post, err := range c.service.Search(ctx, query.String()) {
			if err != nil {
				yield(models.MediaRecord{}, err)
				return
			}

			index := examined
			examined++

			photos := post.Photos()
			if len(photos) == 0 {
				c.logger.DebugWithFields("result has no photos", map[string]interface{}{
					"index":   index,
					"post_id": string(post.ID),
				})
			} else {
				for _, m := range photos {
					if !yield(c.buildRecord(index, &post, m), nil) {
						return
					}
				}

				if err := c.pause.Wait(ctx); err != nil {
					yield(models.MediaRecord{}, err)
					return
				}
			}

			if examined >= limit {
				return
			}
		}
	}
}

func (c *Collector) buildRecord(index int, post *search.Post, media search.Media) models.MediaRecord {
	return models.MediaRecord{
		ID:           models.RecordID(index, media.URL),
		URL:          media.URL,
		Artist:       post.Username,
		Style:        c.record.Style,
		HashtagChog:  models.ContainsTag(post.RawContent, c.record.ChogTag),
		HashtagMonad: models.ContainsTag(post.RawContent, c.record.MonadTag),
		SourcePostID: post.ID,
		Content:      models.Snippet(post.RawContent, c.record.ContentLength),
	}
}
