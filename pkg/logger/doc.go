// Package logger provides the structured logging interface used across chogscraper.
//
// It wraps zerolog with a small Logger interface supporting leveled messages,
// inherited fields and error attachment. Console output is colorized and goes
// to stderr; an optional log file receives the same events.
//
// Basic Usage:
//
//	err := logger.Initialize(&cfg.Logging)
//
//	log := logger.GetLogger()
//	log.Info("Run started")
//	log.WithField("url", url).Warn("Unexpected content type")
//
// Tests use NewTestLogger to capture messages, or NewNopLogger to drop them.
package logger
