package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// SearchQuery is a free-text expression plus the platform filter tokens appended to it
type SearchQuery struct {
	Expression string
	ImagesOnly bool
	MinFaves   int
}

// String renders the query in the platform's search syntax
func (q SearchQuery) String() string {
	parts := []string{strings.TrimSpace(q.Expression)}
	if q.ImagesOnly {
		parts = append(parts, "filter:images")
	}
	if q.MinFaves > 0 {
		parts = append(parts, fmt.Sprintf("min_faves:%d", q.MinFaves))
	}
	return strings.Join(parts, " ")
}

// PostID is a search result identifier. Numeric ids are written as JSON numbers.
type PostID string

func (id PostID) MarshalJSON() ([]byte, error) {
	if isJSONInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id must be a string or number: %w", err)
	}
	*id = PostID(n.String())
	return nil
}

func isJSONInteger(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MediaRecord is a single image discovered in a search result.
// Field order is the persisted key order.
type MediaRecord struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Artist       string `json:"artist"`
	Style        string `json:"style"`
	HashtagChog  bool   `json:"hashtag_chog"`
	HashtagMonad bool   `json:"hashtag_monad"`
	SourcePostID PostID `json:"source_post_id"`
	Content      string `json:"content"`
	LocalPath    string `json:"local_path,omitempty"`
}

// FileName is the on-disk name for the record's image. The suffix is always
// appended so distinct ids never share a file.
func (r *MediaRecord) FileName() string {
	name := r.ID
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name + ".jpg"
}

// RecordID builds "post-dynamic-{index}-{last path segment of rawURL}"
func RecordID(index int, rawURL string) string {
	segment := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		segment = u.Path
	}
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	return fmt.Sprintf("post-dynamic-%d-%s", index, segment)
}

// Snippet returns the first n runes of text followed by "..."
func Snippet(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text + "..."
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// ContainsTag reports whether tag occurs in text, ignoring case
func ContainsTag(text, tag string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(tag))
}
