package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chogscraper/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

func TestWriteCatalogFiltersToDownloaded(t *testing.T) {
	dir := t.TempDir()

	records := []models.MediaRecord{
		{ID: "post-dynamic-0-a.jpg", Artist: "alice", LocalPath: writeImage(t, dir, "a.jpg", 10)},
		{ID: "post-dynamic-0-b.jpg", Artist: "alice"},
		{ID: "post-dynamic-1-c.jpg", Artist: "bob", LocalPath: filepath.Join(dir, "gone.jpg")},
		{ID: "post-dynamic-2-d.jpg", Artist: "carol", LocalPath: writeImage(t, dir, "empty.jpg", 0)},
		{ID: "post-dynamic-3-e.jpg", Artist: "dave", LocalPath: writeImage(t, dir, "e.jpg", 5)},
	}

	out := filepath.Join(dir, "chog_dynamic.json")
	n, err := WriteCatalog(out, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := LoadCatalog(out)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "post-dynamic-0-a.jpg", loaded[0].ID)
	assert.Equal(t, "post-dynamic-3-e.jpg", loaded[1].ID)
}

func TestWriteCatalogEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")

	n, err := WriteCatalog(out, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteCatalogOverwrites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(out, []byte(strings.Repeat("x", 4096)), 0644))

	rec := models.MediaRecord{ID: "only", LocalPath: writeImage(t, dir, "only.jpg", 3)}
	_, err := WriteCatalog(out, []models.MediaRecord{rec})
	require.NoError(t, err)

	loaded, err := LoadCatalog(out)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "only", loaded[0].ID)
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode([]models.MediaRecord{{
		ID:           "post-dynamic-0-a.jpg",
		URL:          "https://img/a.jpg?x=1&y=<2>",
		Artist:       "ålice",
		Style:        "chog-nft-art",
		HashtagChog:  true,
		HashtagMonad: true,
		SourcePostID: "123",
		Content:      "gm 🐸 #chog...",
		LocalPath:    "assets/post-dynamic-0-a.jpg",
	}})
	require.NoError(t, err)

	want := `[
  {
    "id": "post-dynamic-0-a.jpg",
    "url": "https://img/a.jpg?x=1&y=<2>",
    "artist": "ålice",
    "style": "chog-nft-art",
    "hashtag_chog": true,
    "hashtag_monad": true,
    "source_post_id": 123,
    "content": "gm 🐸 #chog...",
    "local_path": "assets/post-dynamic-0-a.jpg"
  }
]
`
	assert.Equal(t, want, string(data))
}

func TestLoadCatalogErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = LoadCatalog(bad)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	dir := t.TempDir()

	stats := Summarize([]models.MediaRecord{
		{Artist: "bob", HashtagChog: true, LocalPath: writeImage(t, dir, "1.jpg", 1)},
		{Artist: "alice", HashtagChog: true, HashtagMonad: true, LocalPath: writeImage(t, dir, "2.jpg", 1)},
		{Artist: "bob", HashtagMonad: true, LocalPath: filepath.Join(dir, "missing.jpg")},
	})

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ChogTagged)
	assert.Equal(t, 2, stats.MonadTagged)
	assert.Equal(t, 1, stats.BothTagged)
	assert.Equal(t, 1, stats.MissingFiles)
	assert.Equal(t, []ArtistCount{{"bob", 2}, {"alice", 1}}, stats.Artists)
}
