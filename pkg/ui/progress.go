package ui

import (
	"fmt"
	"time"
)

// Progress prints one line per download attempt
type Progress struct {
	total     int
	current   int
	startTime time.Time
}

// NewProgress creates a progress printer for total items
func NewProgress(total int) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
	}
}

// Found announces how many images the search produced
func (p *Progress) Found(n int) {
	printf(false, "%s %d images\n", Magenta("[FOUND]"), n)
}

// Next advances to the next item
func (p *Progress) Next() {
	p.current++
}

func (p *Progress) counter() string {
	return Dim(fmt.Sprintf("[%d/%d]", p.current, p.total))
}

// Downloaded reports a file written to path
func (p *Progress) Downloaded(path string, size int64) {
	printf(false, "%s %s Downloaded: %s %s\n", p.counter(), Green("✓"), path, Dim(formatBytes(size)))
}

// Skipped reports a file that was already present
func (p *Progress) Skipped(path string) {
	printf(false, "%s %s Skip: %s exists\n", p.counter(), Yellow("•"), path)
}

// Failed reports a download that did not produce a file
func (p *Progress) Failed(url string, err error) {
	printf(true, "%s %s Error %s: %v\n", p.counter(), Red("✗"), url, err)
}

// Saved reports the catalog write
func (p *Progress) Saved(n int, file string) {
	printf(false, "%s Saved %d to %s %s\n", Green("[DONE]"), n, file, Dim(formatDuration(time.Since(p.startTime))))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
