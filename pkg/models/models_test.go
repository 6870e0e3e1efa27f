package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQueryString(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  string
	}{
		{
			name:  "all filters",
			query: SearchQuery{Expression: "(#monad #chog nft) OR #chog", ImagesOnly: true, MinFaves: 1},
			want:  "(#monad #chog nft) OR #chog filter:images min_faves:1",
		},
		{
			name:  "expression only",
			query: SearchQuery{Expression: "  #chog  "},
			want:  "#chog",
		},
		{
			name:  "min faves without images",
			query: SearchQuery{Expression: "#monad", MinFaves: 10},
			want:  "#monad min_faves:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.String())
		})
	}
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "post-dynamic-3-ABC.jpg", RecordID(3, "https://pbs.example.com/media/ABC.jpg"))
	assert.Equal(t, "post-dynamic-0-ABC", RecordID(0, "https://pbs.example.com/media/ABC?format=jpg&name=large"))
	assert.Equal(t, "post-dynamic-1-", RecordID(1, "https://pbs.example.com/"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "post-dynamic-3-ABC.jpg.jpg", (&MediaRecord{ID: "post-dynamic-3-ABC.jpg"}).FileName())
	assert.Equal(t, "post-dynamic-3-ABC.PNG.jpg", (&MediaRecord{ID: "post-dynamic-3-ABC.PNG"}).FileName())
	assert.Equal(t, "post-dynamic-0-ABC.jpg", (&MediaRecord{ID: "post-dynamic-0-ABC"}).FileName())

	// ids that differ only by an image extension stay distinct on disk
	a := (&MediaRecord{ID: "post-dynamic-0-A.jpg"}).FileName()
	b := (&MediaRecord{ID: "post-dynamic-0-A"}).FileName()
	assert.NotEqual(t, a, b)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short...", Snippet("short", 100))
	assert.Equal(t, "abc...", Snippet("abcdef", 3))

	// multi-byte runes are never split
	got := Snippet(strings.Repeat("ä", 5), 2)
	assert.Equal(t, "ää...", got)
}

func TestContainsTag(t *testing.T) {
	assert.True(t, ContainsTag("Love my #CHOG today", "#chog"))
	assert.True(t, ContainsTag("#Monad", "#monad"))
	assert.False(t, ContainsTag("chog without hash", "#chog"))
}

func TestMediaRecordJSONKeyOrder(t *testing.T) {
	rec := MediaRecord{
		ID:           "post-dynamic-0-a.jpg",
		URL:          "https://img/a.jpg",
		Artist:       "alice",
		Style:        "chog-nft-art",
		HashtagChog:  true,
		SourcePostID: "1790000000000000000",
		Content:      "gm #chog...",
		LocalPath:    "assets/post-dynamic-0-a.jpg",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"post-dynamic-0-a.jpg","url":"https://img/a.jpg","artist":"alice","style":"chog-nft-art",`+
			`"hashtag_chog":true,"hashtag_monad":false,"source_post_id":1790000000000000000,`+
			`"content":"gm #chog...","local_path":"assets/post-dynamic-0-a.jpg"}`,
		string(data))

	rec.LocalPath = ""
	data, err = json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "local_path")
}

func TestPostIDJSON(t *testing.T) {
	tests := []struct {
		id   PostID
		want string
	}{
		{"42", `42`},
		{"0", `0`},
		{"007", `"007"`},
		{"abc-1", `"abc-1"`},
		{"", `""`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))
	}

	var id PostID
	require.NoError(t, json.Unmarshal([]byte(`1790000000000000001`), &id))
	assert.Equal(t, PostID("1790000000000000001"), id)
	require.NoError(t, json.Unmarshal([]byte(`"x9"`), &id))
	assert.Equal(t, PostID("x9"), id)
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}
