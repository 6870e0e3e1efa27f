package search

import "chogscraper/pkg/models"

// Media types reported by the search service
const (
	MediaTypePhoto       = "photo"
	MediaTypeVideo       = "video"
	MediaTypeAnimatedGIF = "animated_gif"
)

// Media is one attachment on a post
type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Post is a single search result
type Post struct {
	ID         models.PostID `json:"id"`
	RawContent string        `json:"raw_content"`
	Username   string        `json:"username"`
	Media      []Media       `json:"media"`
}

// Photos returns the photo attachments in their original order
func (p *Post) Photos() []Media {
	var photos []Media
	for _, m := range p.Media {
		if m.Type == MediaTypePhoto && m.URL != "" {
			photos = append(photos, m)
		}
	}
	return photos
}

// searchResponse is one page of results
type searchResponse struct {
	Posts      []Post `json:"posts"`
	NextCursor string `json:"next_cursor"`
}
