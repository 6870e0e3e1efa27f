// Package downloader fetches remote images into local files, one at a time.
package downloader
