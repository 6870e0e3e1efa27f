// Package scraper runs the collection pipeline.
//
// A run has three stages with no feedback between them:
//
//  1. Collect: the Collector walks search results up to the configured limit
//     and builds one MediaRecord per photo.
//  2. Download: every record is fetched in discovery order, one at a time,
//     with a fixed pause after each attempt. Existing files are kept.
//  3. Persist: the records whose image is on disk are written to the catalog.
//
// Usage:
//
//	cfg := config.DefaultConfig()
//	s := scraper.New(cfg, logger.GetLogger())
//	summary, err := s.Run(ctx)
package scraper
