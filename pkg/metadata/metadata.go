package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"chogscraper/pkg/models"
	"chogscraper/pkg/storage"
)

// Persistable returns the records whose image is on disk and non-empty,
// preserving discovery order
func Persistable(records []models.MediaRecord) []models.MediaRecord {
	kept := make([]models.MediaRecord, 0, len(records))
	for _, r := range records {
		if r.LocalPath == "" {
			continue
		}
		if !storage.NonEmptyFile(r.LocalPath) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Encode renders records as a 2-space indented JSON array without HTML escaping
func Encode(records []models.MediaRecord) ([]byte, error) {
	if records == nil {
		records = []models.MediaRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCatalog writes the persistable subset of records to path, replacing
// any previous content, and returns how many records were written
func WriteCatalog(path string, records []models.MediaRecord) (int, error) {
	kept := Persistable(records)

	data, err := Encode(kept)
	if err != nil {
		return 0, err
	}

	if _, err := storage.WriteFileAtomic(path, bytes.NewReader(data), nil); err != nil {
		return 0, fmt.Errorf("failed to write catalog file: %w", err)
	}

	return len(kept), nil
}

// LoadCatalog reads a catalog written by WriteCatalog
func LoadCatalog(path string) ([]models.MediaRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []models.MediaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	return records, nil
}

// ArtistCount is the number of records attributed to one artist
type ArtistCount struct {
	Artist string
	Count  int
}

// Stats summarizes a catalog for display
type Stats struct {
	Total        int
	ChogTagged   int
	MonadTagged  int
	BothTagged   int
	MissingFiles int
	Artists      []ArtistCount
}

// Summarize computes display statistics. Artists are ordered by count, then name.
func Summarize(records []models.MediaRecord) Stats {
	stats := Stats{Total: len(records)}
	counts := make(map[string]int)

	for _, r := range records {
		counts[r.Artist]++
		if r.HashtagChog {
			stats.ChogTagged++
		}
		if r.HashtagMonad {
			stats.MonadTagged++
		}
		if r.HashtagChog && r.HashtagMonad {
			stats.BothTagged++
		}
		if !storage.NonEmptyFile(r.LocalPath) {
			stats.MissingFiles++
		}
	}

	for artist, n := range counts {
		stats.Artists = append(stats.Artists, ArtistCount{Artist: artist, Count: n})
	}
	sort.Slice(stats.Artists, func(i, j int) bool {
		if stats.Artists[i].Count != stats.Artists[j].Count {
			return stats.Artists[i].Count > stats.Artists[j].Count
		}
		return stats.Artists[i].Artist < stats.Artists[j].Artist
	})

	return stats
}
